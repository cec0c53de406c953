package model

import "github.com/tsawler/kmlnorm/xmltree"

// DefaultFill is the PolyStyle fill used when none is given.
const DefaultFill = "0"

// PolyStyle controls polygon rendering.
type PolyStyle struct {
	Fill string
}

// NewPolyStyle returns a PolyStyle with the default fill.
func NewPolyStyle() *PolyStyle {
	return &PolyStyle{Fill: DefaultFill}
}

// ParsePolyStyle reads a <PolyStyle> element. A missing <fill> falls back
// to DefaultFill.
func ParsePolyStyle(n *xmltree.Node) *PolyStyle {
	ps := NewPolyStyle()
	if f := n.Child("fill"); f != nil {
		ps.Fill = f.Text()
	}
	return ps
}

// Clone returns a deep copy of ps.
func (ps *PolyStyle) Clone() *PolyStyle {
	if ps == nil {
		return nil
	}
	return &PolyStyle{Fill: ps.Fill}
}

// Save appends ps to parent.
func (ps *PolyStyle) Save(parent *xmltree.Node) {
	parent.AddElement("PolyStyle").AddTextElement("fill", ps.Fill)
}

// SimpleField declares one field of a Schema.
type SimpleField struct {
	Name string
	Type string
}

// ParseSimpleField reads a <SimpleField name=".." type=".."> element.
func ParseSimpleField(n *xmltree.Node) SimpleField {
	return SimpleField{
		Name: n.AttrValue("name"),
		Type: n.AttrValue("type"),
	}
}

// Save appends f to parent.
func (f SimpleField) Save(parent *xmltree.Node) {
	el := parent.AddElement("SimpleField")
	el.SetAttr("name", f.Name)
	el.SetAttr("type", f.Type)
}

// SimpleData is one key/value entry of a SchemaData block.
type SimpleData struct {
	Name  string
	Value string
}

// ParseSimpleData reads a <SimpleData name="..">value</SimpleData> element.
func ParseSimpleData(n *xmltree.Node) SimpleData {
	return SimpleData{
		Name:  n.AttrValue("name"),
		Value: n.Text(),
	}
}

// Save appends d to parent.
func (d SimpleData) Save(parent *xmltree.Node) {
	el := parent.AddTextElement("SimpleData", d.Value)
	el.SetAttr("name", d.Name)
}
