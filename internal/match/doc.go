// Package match ranks property names by similarity so that a mistyped key in
// a resolver configuration can be answered with "did you mean ...".
//
// Names are compared after normalisation (case folded, separators removed),
// so "result_root", "ResultRoot" and "resultRoot" are equivalent.
package match
