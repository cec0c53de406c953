// Package source builds a typed model of an input KML document.
//
// The model is read in a single descent over an [xmltree.Node] tree and is
// not modified afterwards. Only the elements the normalizer understands are
// kept; everything else is dropped.
package source

import (
	"strings"

	"github.com/tsawler/kmlnorm/model"
	"github.com/tsawler/kmlnorm/resolver"
)

// Reserved SimpleData keys. They are matched ignoring case.
const (
	KeyTimestamp = "TIMESTAMP"
	KeyWidth     = "WIDTH"
	KeyColor     = "COLOR"
)

// File is a parsed KML file.
type File struct {
	// Namespace is the xmlns attribute of the kml root element.
	Namespace string
	Document  *Document
}

// Document is the top-level <Document>.
type Document struct {
	ID     string
	Schema *Schema
	Folder *Folder
	// Link is the href of the first NetworkLink. A document with a link is
	// a redirect and is never transformed itself.
	Link string
}

// Folder is an ordered, named group of placemarks. A placemark's successors
// are the placemarks after it in Placemarks.
type Folder struct {
	Name       string
	Schema     *Schema
	Placemarks []*Placemark
}

// Stamps returns the timestamp of every placemark in order.
func (f *Folder) Stamps() []resolver.Stamp {
	stamps := make([]resolver.Stamp, len(f.Placemarks))
	for i, pm := range f.Placemarks {
		stamps[i] = pm.Stamp()
	}
	return stamps
}

// Schema declares the fields used by SchemaData blocks.
type Schema struct {
	ID     string
	Name   string
	Fields []model.SimpleField
}

// Placemark is a single labelled shape.
type Placemark struct {
	Name string
	// Time is the text of <TimeStamp><when>, empty when absent.
	Time string
	// Begin is the text of <TimeSpan><begin>, empty when absent.
	Begin        string
	Style        *Style
	ExtendedData *ExtendedData
	Polygons     []*model.Polygon
	LineString   *model.LineString
}

// Lookup returns the value of the first SimpleData entry named key,
// ignoring case.
func (p *Placemark) Lookup(key string) (string, bool) {
	if p.ExtendedData == nil || p.ExtendedData.SchemaData == nil {
		return "", false
	}
	for _, d := range p.ExtendedData.SchemaData.SimpleData {
		if strings.EqualFold(d.Name, key) {
			return d.Value, true
		}
	}
	return "", false
}

// Stamp returns the placemark's timestamp. The placemark's own TimeStamp
// wins; otherwise its TIMESTAMP data entry is used, and finally the begin of
// an existing TimeSpan.
func (p *Placemark) Stamp() resolver.Stamp {
	if p.Time != "" {
		return resolver.Stamp{Value: p.Time, Kind: resolver.ISO8601}
	}
	if v, ok := p.Lookup(KeyTimestamp); ok && v != "" {
		return resolver.Stamp{Value: v, Kind: resolver.Composite}
	}
	if p.Begin != "" {
		return resolver.Stamp{Value: p.Begin, Kind: resolver.ISO8601}
	}
	return resolver.Stamp{}
}

// Style is a placemark's inline style.
type Style struct {
	LineStyle *LineStyle
	PolyStyle *model.PolyStyle
}

// LineStyle holds the line color and, when given, the raw width text.
type LineStyle struct {
	Color string
	Width string
}

// ExtendedData wraps the placemark's SchemaData.
type ExtendedData struct {
	SchemaData *SchemaData
}

// SchemaData is a list of typed key/value entries.
type SchemaData struct {
	SchemaURL  string
	SimpleData []model.SimpleData
}

// IsReserved reports whether name is one of the keys consumed by the
// normalizer rather than copied through.
func IsReserved(name string) bool {
	return strings.EqualFold(name, KeyTimestamp) ||
		strings.EqualFold(name, KeyWidth) ||
		strings.EqualFold(name, KeyColor)
}
