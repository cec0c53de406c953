// Package resolver derives display intervals from point-in-time records.
//
// A folder of placemarks is an ordered series of observations. Each
// observation becomes an interval that starts at its own timestamp and ends
// one second before the next observation that is strictly later:
//
//	r := resolver.NewResolver(-6 * time.Hour)
//	iv := r.Resolve(stamps, i)
//	// iv.Begin, iv.End are ISO-8601 strings, either may be empty
//
// # Stamp kinds
//
// ISO8601 stamps (from <TimeStamp><when>) are parsed as ISO-8601 and keep
// their own zone; zone-less values are read as UTC. Composite stamps (from a
// TIMESTAMP data entry such as "2024-07-01 13:45:00") are read in the zone
// given to NewResolver.
//
// # Skipping
//
// Successors whose stamps are missing, unparseable, equal to or earlier than
// the start are skipped, so duplicate and out-of-order records never produce
// zero-length or negative intervals.
package resolver
