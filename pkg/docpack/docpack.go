package docpack

import (
	"bytes"
	"io"
	"os"
)

// Document is a loaded compound document package ready for inspection,
// reclassification, and saving. Use Open, OpenReader, or OpenFile to create
// an instance.
//
// A Document owns its package graph exclusively for its lifetime. It is not
// safe for concurrent use; one load/save cycle owns one instance.
type Document struct {
	pkg      *Package
	mainPart string
	pair     VariantPair
	config   *Config
	logger   *Logger
}

// Open loads a document from an io.ReaderAt with a known size
func Open(r io.ReaderAt, size int64) (*Document, error) {
	pkg, err := ReadPackage(r, size)
	if err != nil {
		return nil, err
	}
	return newDocument(pkg)
}

// OpenReader loads a document from an io.Reader, buffering it in memory
func OpenReader(r io.Reader) (*Document, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, NewPackageError("read", "", err)
	}
	return Open(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
}

// OpenFile loads a document from a file path
func OpenFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	return Open(bytes.NewReader(content), int64(len(content)))
}

func newDocument(pkg *Package) (*Document, error) {
	doc := &Document{
		pkg:    pkg,
		pair:   WordprocessingML,
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}

	doc.mainPart = findMainPart(pkg)
	if doc.mainPart == "" {
		return nil, NewPackageError("open", "", NewPartNotFoundError("word/document.xml"))
	}

	if violations := pkg.CheckInvariants(); len(violations) > 0 {
		if doc.config.StrictMode {
			return nil, NewInconsistentPackageError(violations)
		}
		doc.logger.Warn("package loaded with %d invariant violations", len(violations))
	}

	return doc, nil
}

// findMainPart resolves the main structural part through the root
// officeDocument relationship, falling back to the conventional name.
func findMainPart(pkg *Package) string {
	for _, rel := range pkg.RelationshipsFrom(RootScope) {
		if rel.Type == RelTypeOfficeDocument && !rel.IsExternal() {
			target := pkg.ResolveTarget(RootScope, rel)
			if pkg.HasPart(target) {
				return target
			}
		}
	}
	if pkg.HasPart("word/document.xml") {
		return "word/document.xml"
	}
	return ""
}

// Package returns the underlying package graph
func (d *Document) Package() *Package {
	return d.pkg
}

// Registry returns the content type registry
func (d *Document) Registry() *ContentTypeRegistry {
	return d.pkg.Registry()
}

// MainPartName returns the name of the main structural part
func (d *Document) MainPartName() string {
	return d.mainPart
}

// Variant reports whether the document is currently plain or macro-enabled
func (d *Document) Variant() Variant {
	ct, err := d.pkg.Registry().Resolve(d.mainPart)
	if err != nil {
		return VariantUnknown
	}
	return d.pair.VariantOf(ct)
}

// Save writes the document to the named file and returns the name actually
// written, which may differ from the requested one when the extension is
// corrected to match the resulting content type.
//
// preserve controls macro handling: nil infers the intent from the requested
// name's extension and the current content type, a non-nil value overrides
// inference. Stripping converts a macro-enabled document to the plain
// variant, removing the macro payload parts, their relationships, and the
// embedded control fragments.
//
// A failed save leaves both the in-memory document and the destination
// untouched.
func (d *Document) Save(name string, preserve *bool) (string, error) {
	reclassifier := NewReclassifier(d.pair)
	decision := reclassifier.Decide(d.Variant(), name, preserve)

	result, _, err := reclassifier.Apply(d.pkg, d.mainPart, decision)
	if err != nil {
		return "", err
	}

	buf := new(bytes.Buffer)
	if err := WritePackage(buf, result); err != nil {
		return "", err
	}

	if err := os.WriteFile(decision.FinalName, buf.Bytes(), 0644); err != nil {
		return "", NewPackageError("save", decision.FinalName, err)
	}

	d.pkg = result
	return decision.FinalName, nil
}

// SaveTo writes the document to a stream. With a nil preserve flag there is
// no destination name to infer from, so the configured stream default
// applies; out of the box that strips macros.
func (d *Document) SaveTo(w io.Writer, preserve *bool) error {
	if preserve == nil {
		preserve = Bool(d.config.PreserveOnStream)
	}

	reclassifier := NewReclassifier(d.pair)
	decision := reclassifier.Decide(d.Variant(), "", preserve)

	result, _, err := reclassifier.Apply(d.pkg, d.mainPart, decision)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := WritePackage(buf, result); err != nil {
		return err
	}

	if _, err := io.Copy(w, buf); err != nil {
		return NewPackageError("save", "", err)
	}

	d.pkg = result
	return nil
}

// Bool returns a pointer to v, for use as an explicit preserve flag
func Bool(v bool) *bool {
	return &v
}
