package docpack

import (
	"path/filepath"
	"strings"
)

// CorrectedName reconciles a requested destination name with the extension
// expected for the resulting variant. If the name's extension already matches
// (case-insensitively), the name is returned unchanged. Otherwise only the
// extension is replaced; the base name and any directory components are
// preserved. A name with no extension gets the expected one appended.
//
// The function is total and pure: it never fails, and
// CorrectedName(CorrectedName(n, v), v) == CorrectedName(n, v).
func (vp VariantPair) CorrectedName(requested string, resulting Variant) (string, bool) {
	want := vp.ExtensionOf(resulting)
	ext := filepath.Ext(requested)

	if strings.EqualFold(strings.TrimPrefix(ext, "."), want) && ext != "" {
		return requested, false
	}

	base := strings.TrimSuffix(requested, ext)
	return base + "." + want, true
}
