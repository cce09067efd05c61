package docpack

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// XMLNode is one node in a generic markup tree. Element nodes carry a name,
// attributes, and children; character data nodes carry Text; declarations,
// comments, and processing instructions are kept as preformatted raw nodes so
// a parse/serialize round trip does not disturb them.
//
// Names are kept exactly as written in the source (prefix in Name.Space, no
// namespace resolution), so serialization preserves the original prefixes.
// encoding/xml's cooked token stream rewrites prefixes, which corrupts
// WordprocessingML; the raw token stream does not.
type XMLNode struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*XMLNode
	Text     string
	raw      string
}

// IsElement reports whether the node is an element (as opposed to character
// data or preformatted markup).
func (n *XMLNode) IsElement() bool {
	return n.Name.Local != ""
}

// QName returns the node's qualified name as written in the source, e.g.
// "w:control".
func (n *XMLNode) QName() string {
	if n.Name.Space != "" {
		return n.Name.Space + ":" + n.Name.Local
	}
	return n.Name.Local
}

// ParseXMLTree parses markup into a tree rooted at a synthetic document node
// whose children are the top-level nodes (declaration, root element).
func ParseXMLTree(data []byte) (*XMLNode, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	root := &XMLNode{}
	stack := []*XMLNode{root}

	for {
		token, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse markup: %w", err)
		}

		parent := stack[len(stack)-1]
		switch t := token.(type) {
		case xml.StartElement:
			attrs := make([]xml.Attr, len(t.Attr))
			copy(attrs, t.Attr)
			node := &XMLNode{Name: t.Name, Attrs: attrs}
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected closing element </%s>", qualifiedName(t.Name))
			}
			open := stack[len(stack)-1]
			if open.Name != t.Name {
				return nil, fmt.Errorf("mismatched closing element </%s>, expected </%s>",
					qualifiedName(t.Name), open.QName())
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			parent.Children = append(parent.Children, &XMLNode{Text: string(t)})
		case xml.Comment:
			parent.Children = append(parent.Children, &XMLNode{raw: "<!--" + string(t) + "-->"})
		case xml.ProcInst:
			parent.Children = append(parent.Children, &XMLNode{
				raw: "<?" + t.Target + " " + string(t.Inst) + "?>",
			})
		case xml.Directive:
			parent.Children = append(parent.Children, &XMLNode{raw: "<!" + string(t) + ">"})
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].QName())
	}

	return root, nil
}

// Serialize writes the tree back to markup
func (n *XMLNode) Serialize() []byte {
	var buf bytes.Buffer
	n.write(&buf)
	return buf.Bytes()
}

func (n *XMLNode) write(buf *bytes.Buffer) {
	if n.raw != "" {
		buf.WriteString(n.raw)
		return
	}

	if !n.IsElement() {
		// Document node has no name; its children are the top-level nodes.
		if n.Text == "" && len(n.Children) > 0 {
			for _, child := range n.Children {
				child.write(buf)
			}
			return
		}
		buf.WriteString(escapeText(n.Text))
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.QName())
	for _, attr := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(qualifiedName(attr.Name))
		buf.WriteString(`="`)
		buf.WriteString(escapeAttr(attr.Value))
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	for _, child := range n.Children {
		child.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(n.QName())
	buf.WriteByte('>')
}

// FindAll returns every element in the tree whose qualified name matches
// kind, in document order.
func (n *XMLNode) FindAll(kind string) []*XMLNode {
	var found []*XMLNode
	for _, child := range n.Children {
		if child.IsElement() && child.QName() == kind {
			found = append(found, child)
		}
		found = append(found, child.FindAll(kind)...)
	}
	return found
}

// RemoveAll removes every element matching kind from the tree, preserving
// sibling order and all non-matching structure. Subtrees of removed elements
// are not searched further. Returns the number of elements removed.
func (n *XMLNode) RemoveAll(kind string) int {
	removed := 0
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child.IsElement() && child.QName() == kind {
			removed++
			continue
		}
		removed += child.RemoveAll(kind)
		kept = append(kept, child)
	}
	n.Children = kept
	return removed
}

func qualifiedName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func escapeText(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}

func escapeAttr(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
