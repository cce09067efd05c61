package docpack

import (
	"strings"
	"testing"
)

func TestParseXMLTree_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "prefixed elements and attributes",
			input: `<w:document xmlns:w="http://w" xmlns:r="http://r"><w:body><w:p><w:r><w:t>Hi</w:t></w:r></w:p></w:body></w:document>`,
		},
		{
			name:  "self-closing elements",
			input: `<w:document><w:body><w:control r:id="rId3"/></w:body></w:document>`,
		},
		{
			name:  "declaration and comment preserved",
			input: `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><root><!--note--><a>text</a></root>`,
		},
		{
			name:  "whitespace between elements preserved",
			input: "<root>\n  <a/>\n  <b/>\n</root>",
		},
		{
			name:  "escaped characters in text and attributes",
			input: `<root attr="a&amp;b"><t>1 &lt; 2 &amp; 3 &gt; 2</t></root>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseXMLTree([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseXMLTree failed: %v", err)
			}
			if got := string(tree.Serialize()); got != tt.input {
				t.Errorf("round trip changed markup:\n got: %s\nwant: %s", got, tt.input)
			}
		})
	}
}

func TestParseXMLTree_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed element", `<root><a></root>`},
		{"stray closing element", `</root>`},
		{"truncated markup", `<root><a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseXMLTree([]byte(tt.input)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestXMLNode_FindAll(t *testing.T) {
	input := `<w:document><w:body>` +
		`<w:p><w:control w:name="a"/></w:p>` +
		`<w:p><w:object><w:control w:name="b"/></w:object></w:p>` +
		`<w:p><w:t>text</w:t></w:p>` +
		`</w:body></w:document>`

	tree, err := ParseXMLTree([]byte(input))
	if err != nil {
		t.Fatalf("ParseXMLTree failed: %v", err)
	}

	found := tree.FindAll("w:control")
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	// Document order.
	if v := attrValue(found[0], "w:name"); v != "a" {
		t.Errorf("first match name = %s, want a", v)
	}
	if v := attrValue(found[1], "w:name"); v != "b" {
		t.Errorf("second match name = %s, want b", v)
	}

	// Prefix is part of the kind; an unprefixed name does not match.
	if got := tree.FindAll("control"); len(got) != 0 {
		t.Errorf("unprefixed kind matched %d nodes", len(got))
	}
}

func TestXMLNode_RemoveAll(t *testing.T) {
	input := `<w:body><w:p><w:control/><w:t>keep</w:t><w:control/></w:p></w:body>`

	tree, err := ParseXMLTree([]byte(input))
	if err != nil {
		t.Fatalf("ParseXMLTree failed: %v", err)
	}

	if removed := tree.RemoveAll("w:control"); removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	got := string(tree.Serialize())
	want := `<w:body><w:p><w:t>keep</w:t></w:p></w:body>`
	if got != want {
		t.Errorf("after removal:\n got: %s\nwant: %s", got, want)
	}

	// Second pass finds nothing.
	if removed := tree.RemoveAll("w:control"); removed != 0 {
		t.Errorf("second removal = %d, want 0", removed)
	}
}

func TestXMLNode_RemoveAll_PreservesSiblingOrder(t *testing.T) {
	input := `<root><a/><x/><b/><x/><c/></root>`

	tree, err := ParseXMLTree([]byte(input))
	if err != nil {
		t.Fatalf("ParseXMLTree failed: %v", err)
	}
	tree.RemoveAll("x")

	got := string(tree.Serialize())
	if got != `<root><a/><b/><c/></root>` {
		t.Errorf("sibling order disturbed: %s", got)
	}
}

func attrValue(n *XMLNode, qname string) string {
	for _, attr := range n.Attrs {
		if qualifiedName(attr.Name) == qname {
			return attr.Value
		}
	}
	return ""
}

func TestStripFragments(t *testing.T) {
	t.Run("removes every control fragment", func(t *testing.T) {
		pkg := newMacroPackage(t)
		part, _ := pkg.Part("word/document.xml")

		count, err := StripFragments(part, "w:control")
		if err != nil {
			t.Fatalf("StripFragments failed: %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1", count)
		}

		content := string(part.Blob)
		if strings.Contains(content, "w:control") {
			t.Error("control fragment still present")
		}
		if !strings.Contains(content, "Hello, world") {
			t.Error("unrelated content lost")
		}
		if !strings.Contains(content, "<w:object>") {
			t.Error("enclosing structure lost")
		}
	})

	t.Run("zero matches is not an error", func(t *testing.T) {
		pkg := newPlainPackage(t)
		part, _ := pkg.Part("word/document.xml")
		before := string(part.Blob)

		count, err := StripFragments(part, "w:control")
		if err != nil {
			t.Fatalf("StripFragments failed: %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
		if string(part.Blob) != before {
			t.Error("blob rewritten despite no matches")
		}
	})

	t.Run("unparseable markup is an error", func(t *testing.T) {
		part := &Part{Name: "word/document.xml", Blob: []byte("<w:document><unclosed")}
		if _, err := StripFragments(part, "w:control"); err == nil {
			t.Error("expected error for unparseable markup")
		}
	})

	t.Run("nil and empty parts strip nothing", func(t *testing.T) {
		if count, err := StripFragments(nil, "w:control"); err != nil || count != 0 {
			t.Errorf("nil part: %d, %v", count, err)
		}
		if count, err := StripFragments(&Part{Name: "x"}, "w:control"); err != nil || count != 0 {
			t.Errorf("empty part: %d, %v", count, err)
		}
	})
}
