package docpack

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// ContentTypesName is the part name of the content type manifest within an
// OPC container.
const ContentTypesName = "[Content_Types].xml"

const contentTypesNamespace = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps a specific part name to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypesXML represents the [Content_Types].xml manifest
type ContentTypesXML struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// ContentTypeRegistry resolves part names to content types. A part resolves
// through an exact-name override first, then through the default registered
// for its extension. The registry is constructed once per package load; it is
// not shared process-wide state.
type ContentTypeRegistry struct {
	defaults  map[string]string // lowercase extension (no dot) -> content type
	overrides map[string]string // part name -> content type
}

// NewContentTypeRegistry creates an empty registry
func NewContentTypeRegistry() *ContentTypeRegistry {
	return &ContentTypeRegistry{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
}

// RegisterDefault registers the content type for a file extension. The
// extension is matched case-insensitively and without a leading dot.
// Re-registering the same extension with the same content type is a no-op;
// re-registering with a different content type is a conflict error.
func (r *ContentTypeRegistry) RegisterDefault(extension, contentType string) error {
	ext := normalizeExtension(extension)
	if ext == "" {
		return fmt.Errorf("empty extension")
	}
	if existing, ok := r.defaults[ext]; ok {
		if existing == contentType {
			return nil
		}
		return NewContentTypeConflictError(ext, existing, contentType)
	}
	r.defaults[ext] = contentType
	return nil
}

// SetOverride assigns a content type to a specific part name, replacing any
// prior override for that name.
func (r *ContentTypeRegistry) SetOverride(partName, contentType string) {
	r.overrides[partName] = contentType
}

// RemoveOverride deletes the override for a part name. Removing an absent
// override is a no-op.
func (r *ContentTypeRegistry) RemoveOverride(partName string) {
	delete(r.overrides, partName)
}

// Override returns the override content type for a part name, if any.
func (r *ContentTypeRegistry) Override(partName string) (string, bool) {
	ct, ok := r.overrides[partName]
	return ct, ok
}

// Default returns the default content type for an extension, if any.
func (r *ContentTypeRegistry) Default(extension string) (string, bool) {
	ct, ok := r.defaults[normalizeExtension(extension)]
	return ct, ok
}

// Resolve returns the content type for a part name. Overrides take precedence
// over extension defaults.
func (r *ContentTypeRegistry) Resolve(partName string) (string, error) {
	if ct, ok := r.overrides[partName]; ok {
		return ct, nil
	}

	if idx := strings.LastIndex(partName, "."); idx != -1 {
		if ct, ok := r.defaults[normalizeExtension(partName[idx+1:])]; ok {
			return ct, nil
		}
	}

	return "", NewUnknownContentTypeError(partName)
}

// Clone returns an independent copy of the registry
func (r *ContentTypeRegistry) Clone() *ContentTypeRegistry {
	clone := NewContentTypeRegistry()
	for ext, ct := range r.defaults {
		clone.defaults[ext] = ct
	}
	for name, ct := range r.overrides {
		clone.overrides[name] = ct
	}
	return clone
}

// ParseContentTypes builds a registry from the [Content_Types].xml manifest
func ParseContentTypes(data []byte) (*ContentTypeRegistry, error) {
	var manifest ContentTypesXML
	if err := xml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}

	registry := NewContentTypeRegistry()
	for _, def := range manifest.Defaults {
		if err := registry.RegisterDefault(def.Extension, def.ContentType); err != nil {
			return nil, err
		}
	}
	for _, ovr := range manifest.Overrides {
		// Manifest part names carry a leading slash; the registry keys on
		// zip-style names without it.
		registry.SetOverride(strings.TrimPrefix(ovr.PartName, "/"), ovr.ContentType)
	}

	return registry, nil
}

// MarshalContentTypes serializes the registry back to manifest form. Entries
// are sorted so output is deterministic.
func (r *ContentTypeRegistry) MarshalContentTypes() ([]byte, error) {
	manifest := ContentTypesXML{
		Namespace: contentTypesNamespace,
	}

	exts := make([]string, 0, len(r.defaults))
	for ext := range r.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		manifest.Defaults = append(manifest.Defaults, ContentTypeDefault{
			Extension:   ext,
			ContentType: r.defaults[ext],
		})
	}

	names := make([]string, 0, len(r.overrides))
	for name := range r.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		manifest.Overrides = append(manifest.Overrides, ContentTypeOverride{
			PartName:    "/" + name,
			ContentType: r.overrides[name],
		})
	}

	output, err := xml.Marshal(&manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content types: %w", err)
	}

	return append([]byte(xml.Header), output...), nil
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(extension, "."))
}
