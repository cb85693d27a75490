// Package graphqlapi models the GraphQL API objects a resolver is attached
// to, and edits their schema definition and resolution map.
package graphqlapi
