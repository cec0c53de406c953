// Package xmltree provides a small ordered element tree for reading and
// writing KML markup.
//
// The tree keeps element order, attribute order and text exactly as they
// appear in the input. Element and attribute names are matched ignoring
// case, since KML producers are inconsistent about capitalization
// ("Placemark" vs "PlaceMark").
package xmltree

import "strings"

// Attr is a single attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// Node is either an element or a run of character data.
type Node struct {
	name     string
	attrs    []Attr
	children []*Node
	text     string
	isText   bool
}

// NewElement creates a detached element node.
func NewElement(name string) *Node {
	return &Node{name: name}
}

// NewText creates a detached character data node.
func NewText(text string) *Node {
	return &Node{isText: true, text: text}
}

// Name returns the element's local name. Text nodes have no name.
func (n *Node) Name() string {
	return n.name
}

// IsText reports whether n holds character data.
func (n *Node) IsText() bool {
	return n.isText
}

// Is reports whether n is an element named name, ignoring case.
func (n *Node) Is(name string) bool {
	return !n.isText && strings.EqualFold(n.name, name)
}

// Children returns the element children of n in document order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if !c.isText {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first element child named name, ignoring case, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Is(name) {
			return c
		}
	}
	return nil
}

// Attrs returns the attributes of n in the order they were set.
func (n *Node) Attrs() []Attr {
	return n.attrs
}

// Attr returns the value of the attribute named key, ignoring case.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if strings.EqualFold(a.Name, key) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrValue is Attr without the presence flag.
func (n *Node) AttrValue(key string) string {
	v, _ := n.Attr(key)
	return v
}

// Text returns the concatenated character data of n and all its
// descendants in document order.
func (n *Node) Text() string {
	if n.isText {
		return n.text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.children {
		if c.isText {
			sb.WriteString(c.text)
		} else {
			c.writeText(sb)
		}
	}
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	n.children = append(n.children, c)
}

// SetAttr sets an attribute, replacing an existing one with the same name.
func (n *Node) SetAttr(key, value string) {
	for i, a := range n.attrs {
		if a.Name == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: key, Value: value})
}

// SetText replaces all children of n with a single text node.
func (n *Node) SetText(text string) {
	n.children = []*Node{NewText(text)}
}

// AddElement creates an element named name, appends it to n and returns it.
func (n *Node) AddElement(name string) *Node {
	c := NewElement(name)
	n.AppendChild(c)
	return c
}

// AddTextElement appends an element named name whose only content is text.
func (n *Node) AddTextElement(name, text string) *Node {
	c := n.AddElement(name)
	c.SetText(text)
	return c
}
