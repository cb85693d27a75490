// Package wizard drives the add/edit/remove flow for a single field
// resolver.
//
// Navigation is a pure function of State: Reduce looks the (step, kind,
// action) triple up in a fixed transition table and refuses to move forward
// from an incomplete step. The proto upload step only exists for gRPC
// resolvers.
//
// A Session wraps that state with the side effects: it assembles the
// configuration, asks the API server to validate it, then stores it. A
// rejected submit leaves the session open with the server's message as its
// warning and every edit intact.
package wizard
