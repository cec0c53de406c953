// Package model provides the value types shared by the source and target
// KML models.
//
// Geometry and a few leaf elements pass through the transform unchanged, so
// both sides use the same types here. Every type can read itself from an
// [xmltree.Node], append itself to a parent node, and make a deep copy:
//
//   - [Polygon] owns an [OuterBoundaryIs], which owns a [LinearRing],
//     which owns [Coordinates]
//   - [LineString] owns [Coordinates] directly
//   - [PolyStyle], [SimpleField] and [SimpleData] are flat leaves
//
// Target models always clone what they take from a source model, so the two
// never share mutable state.
package model
