// Package schema describes resolver message types as data and walks plain
// configuration objects against them.
//
// A Registry is loaded from a YAML descriptor listing each type's fields.
// Every field has one of four kinds:
//
//   - Scalar: a string, number or bool checked against its declared type name
//   - Message: a nested type from the same registry
//   - Map: a string-keyed map, carried on the wire as a "<name>Map" pair list
//   - Value: a dynamic value, carried on the wire in its tagged form
//
// PreMarshal converts the editor form of an object into its wire form and
// PostUnmarshal does the reverse. Keys a type does not declare are dropped
// and reported as warnings.
package schema
