package model

import "github.com/tsawler/kmlnorm/xmltree"

// Coordinates holds the raw text of a <coordinates> element. The tuples are
// never parsed; the string is carried through byte for byte.
type Coordinates struct {
	Value string
}

// ParseCoordinates reads a <coordinates> element.
func ParseCoordinates(n *xmltree.Node) *Coordinates {
	return &Coordinates{Value: n.Text()}
}

// Clone returns a deep copy of c.
func (c *Coordinates) Clone() *Coordinates {
	if c == nil {
		return nil
	}
	return &Coordinates{Value: c.Value}
}

// Save appends c to parent.
func (c *Coordinates) Save(parent *xmltree.Node) {
	parent.AddTextElement("coordinates", c.Value)
}

// LinearRing is a closed ring of coordinates.
type LinearRing struct {
	Coordinates *Coordinates
}

// ParseLinearRing reads a <LinearRing> element. Only the first coordinates
// child is kept.
func ParseLinearRing(n *xmltree.Node) *LinearRing {
	lr := &LinearRing{}
	if c := n.Child("coordinates"); c != nil {
		lr.Coordinates = ParseCoordinates(c)
	}
	return lr
}

// Clone returns a deep copy of lr.
func (lr *LinearRing) Clone() *LinearRing {
	if lr == nil {
		return nil
	}
	return &LinearRing{Coordinates: lr.Coordinates.Clone()}
}

// Save appends lr to parent.
func (lr *LinearRing) Save(parent *xmltree.Node) {
	el := parent.AddElement("LinearRing")
	if lr.Coordinates != nil {
		lr.Coordinates.Save(el)
	}
}

// OuterBoundaryIs wraps the exterior ring of a polygon.
type OuterBoundaryIs struct {
	LinearRing *LinearRing
}

// ParseOuterBoundaryIs reads an <outerBoundaryIs> element.
func ParseOuterBoundaryIs(n *xmltree.Node) *OuterBoundaryIs {
	ob := &OuterBoundaryIs{}
	if lr := n.Child("LinearRing"); lr != nil {
		ob.LinearRing = ParseLinearRing(lr)
	}
	return ob
}

// Clone returns a deep copy of ob.
func (ob *OuterBoundaryIs) Clone() *OuterBoundaryIs {
	if ob == nil {
		return nil
	}
	return &OuterBoundaryIs{LinearRing: ob.LinearRing.Clone()}
}

// Save appends ob to parent.
func (ob *OuterBoundaryIs) Save(parent *xmltree.Node) {
	el := parent.AddElement("outerBoundaryIs")
	if ob.LinearRing != nil {
		ob.LinearRing.Save(el)
	}
}

// Polygon is an area bounded by an outer ring. Inner rings are not
// modelled and are dropped on input.
type Polygon struct {
	OuterBoundaryIs *OuterBoundaryIs
}

// ParsePolygon reads a <Polygon> element.
func ParsePolygon(n *xmltree.Node) *Polygon {
	p := &Polygon{}
	if ob := n.Child("outerBoundaryIs"); ob != nil {
		p.OuterBoundaryIs = ParseOuterBoundaryIs(ob)
	}
	return p
}

// Clone returns a deep copy of p.
func (p *Polygon) Clone() *Polygon {
	if p == nil {
		return nil
	}
	return &Polygon{OuterBoundaryIs: p.OuterBoundaryIs.Clone()}
}

// Save appends p to parent.
func (p *Polygon) Save(parent *xmltree.Node) {
	el := parent.AddElement("Polygon")
	if p.OuterBoundaryIs != nil {
		p.OuterBoundaryIs.Save(el)
	}
}

// LineString is an open path of coordinates.
type LineString struct {
	Coordinates *Coordinates
}

// ParseLineString reads a <LineString> element.
func ParseLineString(n *xmltree.Node) *LineString {
	ls := &LineString{}
	if c := n.Child("coordinates"); c != nil {
		ls.Coordinates = ParseCoordinates(c)
	}
	return ls
}

// Clone returns a deep copy of ls.
func (ls *LineString) Clone() *LineString {
	if ls == nil {
		return nil
	}
	return &LineString{Coordinates: ls.Coordinates.Clone()}
}

// Save appends ls to parent.
func (ls *LineString) Save(parent *xmltree.Node) {
	el := parent.AddElement("LineString")
	if ls.Coordinates != nil {
		ls.Coordinates.Save(el)
	}
}

// ClonePolygons deep-copies a polygon slice.
func ClonePolygons(polygons []*Polygon) []*Polygon {
	if len(polygons) == 0 {
		return nil
	}
	out := make([]*Polygon, len(polygons))
	for i, p := range polygons {
		out[i] = p.Clone()
	}
	return out
}

// SavePolygons appends polygons to parent: a single polygon directly, two or
// more wrapped in a <MultiGeometry>.
func SavePolygons(parent *xmltree.Node, polygons []*Polygon) {
	switch len(polygons) {
	case 0:
		return
	case 1:
		polygons[0].Save(parent)
	default:
		multi := parent.AddElement("MultiGeometry")
		for _, p := range polygons {
			p.Save(multi)
		}
	}
}
