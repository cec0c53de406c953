package source

import (
	"io"

	"github.com/tsawler/kmlnorm/model"
	"github.com/tsawler/kmlnorm/xmltree"
)

// Tree renders the file back into an element tree in input order: a
// placemark's name comes first and a folder's name leads its contents.
func (f *File) Tree() *xmltree.Node {
	root := xmltree.NewElement("kml")
	if f.Namespace != "" {
		root.SetAttr("xmlns", f.Namespace)
	}
	if f.Document != nil {
		f.Document.save(root)
	}
	return root
}

// Encode writes the file as indented KML.
func (f *File) Encode(w io.Writer) error {
	return xmltree.Encode(w, f.Tree())
}

// Marshal returns the file as indented KML.
func (f *File) Marshal() ([]byte, error) {
	return xmltree.Marshal(f.Tree())
}

func (d *Document) save(parent *xmltree.Node) {
	el := parent.AddElement("Document")
	el.SetAttr("id", d.ID)

	if d.Schema != nil {
		d.Schema.save(el)
	}
	if d.Folder != nil {
		d.Folder.save(el)
	}
}

func (f *Folder) save(parent *xmltree.Node) {
	el := parent.AddElement("Folder")
	el.AddTextElement("name", f.Name)

	if f.Schema != nil {
		f.Schema.save(el)
	}
	for _, pm := range f.Placemarks {
		pm.save(el)
	}
}

func (s *Schema) save(parent *xmltree.Node) {
	el := parent.AddElement("Schema")
	el.SetAttr("name", s.Name)
	el.SetAttr("id", s.ID)

	for _, field := range s.Fields {
		field.Save(el)
	}
}

func (p *Placemark) save(parent *xmltree.Node) {
	el := parent.AddElement("Placemark")
	el.AddTextElement("name", p.Name)

	if p.Time != "" {
		el.AddElement("TimeStamp").AddTextElement("when", p.Time)
	}
	if p.Style != nil {
		p.Style.save(el)
	}
	if p.ExtendedData != nil {
		p.ExtendedData.save(el)
	}
	model.SavePolygons(el, p.Polygons)
	if p.LineString != nil {
		p.LineString.Save(el)
	}
}

func (s *Style) save(parent *xmltree.Node) {
	el := parent.AddElement("Style")
	if s.LineStyle != nil {
		ls := el.AddElement("LineStyle")
		ls.AddTextElement("color", s.LineStyle.Color)
		if s.LineStyle.Width != "" {
			ls.AddTextElement("width", s.LineStyle.Width)
		}
	}
	if s.PolyStyle != nil {
		s.PolyStyle.Save(el)
	}
}

func (e *ExtendedData) save(parent *xmltree.Node) {
	el := parent.AddElement("ExtendedData")
	if e.SchemaData != nil {
		e.SchemaData.save(el)
	}
}

func (sd *SchemaData) save(parent *xmltree.Node) {
	el := parent.AddElement("SchemaData")
	if sd.SchemaURL != "" {
		el.SetAttr("schemaUrl", sd.SchemaURL)
	}
	for _, d := range sd.SimpleData {
		d.Save(el)
	}
}
