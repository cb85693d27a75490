// Package resolver converts GraphQL field resolvers between the objects the
// control plane stores and the YAML text an operator edits.
//
// The Assembler turns edited YAML plus the wizard's selections (resolver
// kind, target field, upstream) into an Item ready to be attached to a
// schema. Disassemble goes the other way and renders an existing
// Resolution as YAML, falling back to a per-kind template when there is
// nothing to show.
//
// Three resolver kinds exist: REST, gRPC and Mock. The upstream reference
// of REST and gRPC resolvers is never part of the YAML text; it travels as
// a "name::namespace" id chosen separately.
package resolver
