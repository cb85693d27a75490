// Package dynvalue converts google.protobuf.Value trees to and from the plain
// values a YAML editor works with, and to and from the console wire form in
// which every tag of the union is a separate optional field:
//
//	{"stringValue": "x"}
//	{"listValue": {"valuesList": [...]}}
//	{"structValue": {"fieldsMap": [["key", {...}], ...]}}
//
// The value itself is a *structpb.Value, whose oneof keeps the tag explicit,
// so Decode and Encode are exact for every tree, including false, 0 and null.
//
// Older servers send every scalar tag at once with zero values for the unset
// ones. Such a value cannot say whether 0 was meant or merely unset; FromWire
// recognises that shape and applies the legacy "first truthy tag wins" rule
// (see legacy.go), defaulting to 0.
package dynvalue
