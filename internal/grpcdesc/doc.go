// Package grpcdesc reads the proto descriptor uploaded for gRPC resolvers
// and answers which services and methods it defines.
package grpcdesc
