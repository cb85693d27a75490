// Package pairs converts between the wire encoding of protobuf map fields,
// an ordered list of [key, value] pairs, and plain string-keyed maps.
//
// The wire list may repeat a key. Converting to a map keeps the last
// occurrence; converting back emits keys in sorted order, so the reverse
// round trip is only exact for lists without duplicates.
package pairs
