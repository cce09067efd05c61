package docpack

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadPackage parses an OPC zip container into a package graph: the
// [Content_Types].xml manifest becomes the registry, every .rels entry
// becomes a relationship scope, and every remaining entry becomes a part
// typed through the registry.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, NewPackageError("open", "", fmt.Errorf("failed to read zip file: %w", err))
	}

	manifest, ok := findZipEntry(zipReader, ContentTypesName)
	if !ok {
		return nil, NewPackageError("open", ContentTypesName, fmt.Errorf("missing content type manifest"))
	}

	manifestData, err := readZipEntry(manifest)
	if err != nil {
		return nil, err
	}

	registry, err := ParseContentTypes(manifestData)
	if err != nil {
		return nil, NewPackageError("parse", ContentTypesName, err)
	}

	pkg := NewPackage(registry)

	for _, file := range zipReader.File {
		if file.Name == ContentTypesName {
			continue
		}
		// Directory entries carry no content and are not parts.
		if strings.HasSuffix(file.Name, "/") {
			continue
		}

		content, err := readZipEntry(file)
		if err != nil {
			return nil, err
		}

		if scope, ok := scopeForRelsName(file.Name); ok {
			var rels Relationships
			if err := xml.Unmarshal(content, &rels); err != nil {
				return nil, NewPackageError("parse", file.Name, err)
			}
			for _, rel := range rels.Relationship {
				if err := pkg.AddRelationship(scope, rel); err != nil {
					return nil, NewPackageError("parse", file.Name, err)
				}
			}
			continue
		}

		contentType, err := registry.Resolve(file.Name)
		if err != nil {
			return nil, NewPackageError("parse", file.Name, err)
		}

		if err := pkg.AddPart(file.Name, contentType, content); err != nil {
			return nil, NewPackageError("parse", file.Name, err)
		}
	}

	return pkg, nil
}

// ReadPackageFile reads an OPC container from a file path
func ReadPackageFile(path string) (*Package, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewPackageError("open", path, err)
	}
	return ReadPackage(bytes.NewReader(content), int64(len(content)))
}

// WritePackage serializes a package graph back to OPC container form:
// manifest first, then each relationship scope's .rels entry, then the parts
// in insertion order.
func WritePackage(w io.Writer, pkg *Package) error {
	zw := zip.NewWriter(w)

	manifest, err := pkg.Registry().MarshalContentTypes()
	if err != nil {
		return NewPackageError("write", ContentTypesName, err)
	}
	if err := writeZipEntry(zw, ContentTypesName, manifest); err != nil {
		return err
	}

	for _, scope := range pkg.Scopes() {
		rels := pkg.RelationshipsFrom(scope)
		if len(rels) == 0 {
			continue
		}

		// Compact marshaling, matching what producing applications emit.
		output, err := xml.Marshal(&Relationships{
			Namespace:    relationshipsNamespace,
			Relationship: rels,
		})
		if err != nil {
			return NewPackageError("write", scope, fmt.Errorf("failed to marshal relationships: %w", err))
		}

		data := append([]byte(xml.Header), output...)
		if err := writeZipEntry(zw, relsNameForScope(scope), data); err != nil {
			return err
		}
	}

	for _, part := range pkg.Parts() {
		if err := writeZipEntry(zw, part.Name, part.Blob); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return NewPackageError("write", "", err)
	}
	return nil
}

// scopeForRelsName maps a .rels entry name to the scope that owns it:
// "_rels/.rels" belongs to the root, "word/_rels/document.xml.rels" to
// "word/document.xml".
func scopeForRelsName(name string) (string, bool) {
	dir, base := splitPartName(name)
	if dir != "_rels" && !strings.HasSuffix(dir, "/_rels") {
		return "", false
	}
	if !strings.HasSuffix(base, ".rels") {
		return "", false
	}

	owner := strings.TrimSuffix(base, ".rels")
	parent := strings.TrimSuffix(strings.TrimSuffix(dir, "_rels"), "/")

	if owner == "" {
		return RootScope, parent == ""
	}
	if parent == "" {
		return owner, true
	}
	return parent + "/" + owner, true
}

// relsNameForScope is the inverse of scopeForRelsName
func relsNameForScope(scope string) string {
	if scope == RootScope {
		return "_rels/.rels"
	}
	dir, base := splitPartName(scope)
	if dir == "" {
		return "_rels/" + base + ".rels"
	}
	return dir + "/_rels/" + base + ".rels"
}

func splitPartName(name string) (dir, base string) {
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

func findZipEntry(zr *zip.Reader, name string) (*zip.File, bool) {
	for _, file := range zr.File {
		if file.Name == name {
			return file, true
		}
	}
	return nil, false
}

func readZipEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, NewPackageError("read", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, NewPackageError("read", file.Name, err)
	}
	return content, nil
}

func writeZipEntry(zw *zip.Writer, name string, content []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return NewPackageError("write", name, err)
	}
	if _, err := fw.Write(content); err != nil {
		return NewPackageError("write", name, err)
	}
	return nil
}
