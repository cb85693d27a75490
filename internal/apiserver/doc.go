// Package apiserver is a client for the console API server.
//
// Requests and responses travel as google.protobuf.Struct messages holding
// the JSON form of the types in this package and in graphqlapi, so the
// client needs no generated stubs. The method names are the console's, but
// the console server itself expects its generated messages in the protobuf
// binary encoding, so this client only talks to a server, gateway or test
// double that accepts Struct payloads on those methods.
//
// A rejected call surfaces as a
// *RemoteError carrying the server's message verbatim.
package apiserver
