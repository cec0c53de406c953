package source

import (
	"strings"

	"github.com/tsawler/kmlnorm/model"
	"github.com/tsawler/kmlnorm/xmltree"
)

// buildDocument reads a <Document>. The first Schema and the first Folder (or
// nested Document) win. Placemarks sitting directly in the document are
// gathered into a folder named after the last <name> seen before the first
// of them.
func buildDocument(n *xmltree.Node, defaultFolderName string) *Document {
	doc := &Document{ID: n.AttrValue("id")}
	localName := defaultFolderName

	for _, c := range n.Children() {
		switch {
		case c.Is("Schema"):
			if doc.Schema == nil {
				doc.Schema = buildSchema(c)
			}
		case c.Is("Folder"), c.Is("Document"):
			if doc.Folder == nil {
				doc.Folder = buildFolder(c)
			}
		case c.Is("Placemark"):
			if doc.Folder == nil {
				doc.Folder = &Folder{Name: localName}
			}
			doc.Folder.Placemarks = append(doc.Folder.Placemarks, buildPlacemark(c))
		case c.Is("name"):
			localName = c.Text()
		case c.Is("NetworkLink"):
			if doc.Link == "" {
				doc.Link = networkLinkHref(c)
			}
		}
	}

	return doc
}

// networkLinkHref returns the trimmed href of a NetworkLink. KML 2.0 files
// use <Url> where 2.1+ use <Link>.
func networkLinkHref(n *xmltree.Node) string {
	link := n.Child("Link")
	if link == nil {
		link = n.Child("Url")
	}
	if link == nil {
		return ""
	}
	href := link.Child("href")
	if href == nil {
		return ""
	}
	return strings.TrimSpace(href.Text())
}

func buildFolder(n *xmltree.Node) *Folder {
	f := &Folder{}
	for _, c := range n.Children() {
		switch {
		case c.Is("name"):
			if f.Name == "" {
				f.Name = c.Text()
			}
		case c.Is("Schema"):
			if f.Schema == nil {
				f.Schema = buildSchema(c)
			}
		case c.Is("Placemark"):
			f.Placemarks = append(f.Placemarks, buildPlacemark(c))
		}
	}
	return f
}

func buildSchema(n *xmltree.Node) *Schema {
	s := &Schema{
		ID:   n.AttrValue("id"),
		Name: n.AttrValue("name"),
	}
	for _, c := range n.Children() {
		if c.Is("SimpleField") {
			s.Fields = append(s.Fields, model.ParseSimpleField(c))
		}
	}
	return s
}

func buildPlacemark(n *xmltree.Node) *Placemark {
	pm := &Placemark{}
	seenName := false

	for _, c := range n.Children() {
		switch {
		case c.Is("name"):
			if !seenName {
				pm.Name = c.Text()
				seenName = true
			}
		case c.Is("Style"):
			if pm.Style == nil {
				pm.Style = buildStyle(c)
			}
		case c.Is("ExtendedData"):
			if pm.ExtendedData == nil {
				pm.ExtendedData = buildExtendedData(c)
			}
		case c.Is("Polygon"):
			pm.Polygons = append(pm.Polygons, model.ParsePolygon(c))
		case c.Is("MultiGeometry"):
			for _, g := range c.Children() {
				if g.Is("Polygon") {
					pm.Polygons = append(pm.Polygons, model.ParsePolygon(g))
				}
			}
		case c.Is("LineString"):
			if pm.LineString == nil {
				pm.LineString = model.ParseLineString(c)
			}
		case c.Is("TimeStamp"):
			if when := c.Child("when"); when != nil && pm.Time == "" {
				pm.Time = when.Text()
			}
		case c.Is("TimeSpan"):
			if begin := c.Child("begin"); begin != nil && pm.Begin == "" {
				pm.Begin = begin.Text()
			}
		}
	}

	return pm
}

func buildStyle(n *xmltree.Node) *Style {
	s := &Style{}
	for _, c := range n.Children() {
		switch {
		case c.Is("LineStyle"):
			if s.LineStyle == nil {
				s.LineStyle = buildLineStyle(c)
			}
		case c.Is("PolyStyle"):
			if s.PolyStyle == nil {
				s.PolyStyle = model.ParsePolyStyle(c)
			}
		}
	}
	return s
}

func buildLineStyle(n *xmltree.Node) *LineStyle {
	ls := &LineStyle{}
	if c := n.Child("color"); c != nil {
		ls.Color = c.Text()
	}
	if w := n.Child("width"); w != nil {
		ls.Width = strings.TrimSpace(w.Text())
	}
	return ls
}

func buildExtendedData(n *xmltree.Node) *ExtendedData {
	ed := &ExtendedData{}
	if sd := n.Child("SchemaData"); sd != nil {
		ed.SchemaData = buildSchemaData(sd)
	}
	return ed
}

func buildSchemaData(n *xmltree.Node) *SchemaData {
	sd := &SchemaData{SchemaURL: n.AttrValue("schemaUrl")}
	for _, c := range n.Children() {
		if c.Is("SimpleData") {
			sd.SimpleData = append(sd.SimpleData, model.ParseSimpleData(c))
		}
	}
	return sd
}
