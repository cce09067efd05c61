package docpack

import (
	"archive/zip"
	"bytes"
	"testing"
)

const testDocumentMarkup = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
	`<w:body>` +
	`<w:p><w:r><w:object><w:control r:id="rId3" w:name="CommandButton1"/></w:object></w:r></w:p>` +
	`<w:p><w:r><w:t>Hello, world</w:t></w:r></w:p>` +
	`</w:body>` +
	`</w:document>`

const testPlainDocumentMarkup = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:body><w:p><w:r><w:t>Hello, world</w:t></w:r></w:p></w:body>` +
	`</w:document>`

// newTestRegistry builds a registry covering the parts the test packages use
func newTestRegistry(t *testing.T) *ContentTypeRegistry {
	t.Helper()

	registry := NewContentTypeRegistry()
	defaults := map[string]string{
		"rels": "application/vnd.openxmlformats-package.relationships+xml",
		"xml":  "application/xml",
		"bin":  ContentTypeVBAProject,
	}
	for ext, ct := range defaults {
		if err := registry.RegisterDefault(ext, ct); err != nil {
			t.Fatalf("RegisterDefault(%s) failed: %v", ext, err)
		}
	}
	return registry
}

// newMacroPackage builds an in-memory macro-enabled package: a main document
// part with an embedded control fragment, a VBA binary, VBA data, an ActiveX
// part, and a styles part that must survive stripping.
func newMacroPackage(t *testing.T) *Package {
	t.Helper()

	pkg := NewPackage(newTestRegistry(t))

	parts := []struct {
		name        string
		contentType string
		blob        []byte
	}{
		{"word/document.xml", ContentTypeWMLDocumentMacroEnabledMain, []byte(testDocumentMarkup)},
		{"word/vbaProject.bin", ContentTypeVBAProject, []byte{0x01, 0x02, 0x03}},
		{"word/vbaData.xml", ContentTypeVBAData, []byte(`<wne:vbaSuppData xmlns:wne="http://schemas.microsoft.com/office/word/2006/wordml"/>`)},
		{"word/activeX/activeX1.xml", ContentTypeActiveXXML, []byte(`<ax:ocx xmlns:ax="http://schemas.microsoft.com/office/2006/activeX"/>`)},
		{"word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml", []byte(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`)},
	}
	for _, p := range parts {
		if err := pkg.AddPart(p.name, p.contentType, p.blob); err != nil {
			t.Fatalf("AddPart(%s) failed: %v", p.name, err)
		}
	}

	rels := []struct {
		scope string
		rel   Relationship
	}{
		{RootScope, Relationship{ID: "rId1", Type: RelTypeOfficeDocument, Target: "word/document.xml"}},
		{"word/document.xml", Relationship{ID: "rId1", Type: RelTypeVBAProject, Target: "vbaProject.bin"}},
		{"word/document.xml", Relationship{ID: "rId2", Type: RelTypeWordVBAData, Target: "vbaData.xml"}},
		{"word/document.xml", Relationship{ID: "rId3", Type: RelTypeControl, Target: "activeX/activeX1.xml"}},
		{"word/document.xml", Relationship{ID: "rId4", Type: "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles", Target: "styles.xml"}},
	}
	for _, r := range rels {
		if err := pkg.AddRelationship(r.scope, r.rel); err != nil {
			t.Fatalf("AddRelationship(%s, %s) failed: %v", r.scope, r.rel.ID, err)
		}
	}

	return pkg
}

// newPlainPackage builds an in-memory plain package with no payload
func newPlainPackage(t *testing.T) *Package {
	t.Helper()

	pkg := NewPackage(newTestRegistry(t))
	if err := pkg.AddPart("word/document.xml", ContentTypeWMLDocumentMain, []byte(testPlainDocumentMarkup)); err != nil {
		t.Fatalf("AddPart failed: %v", err)
	}
	if err := pkg.AddRelationship(RootScope, Relationship{ID: "rId1", Type: RelTypeOfficeDocument, Target: "word/document.xml"}); err != nil {
		t.Fatalf("AddRelationship failed: %v", err)
	}
	return pkg
}

// buildMacroZip serializes newMacroPackage to container form for tests that
// exercise the zip plumbing.
func buildMacroZip(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	if err := WritePackage(buf, newMacroPackage(t)); err != nil {
		t.Fatalf("WritePackage failed: %v", err)
	}
	return buf.Bytes()
}

// zipEntryNames lists the entry names of a serialized container
func zipEntryNames(t *testing.T, data []byte) []string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to reopen zip: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}
