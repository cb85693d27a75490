// Package diagnostic provides structured errors and warnings for resolver
// configuration conversion.
//
// Errors block a submit (a value of the wrong shape, an upstream reference
// typed into the editor). Warnings do not: they report keys that were dropped
// because the resolver type does not define them, with the closest valid
// property names as suggestions.
package diagnostic
