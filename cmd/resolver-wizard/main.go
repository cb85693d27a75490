// Package main provides the CLI entrypoint for resolver-wizard.
//
// resolver-wizard edits the field resolvers of a GraphQL API through the
// console API server:
//   - render shows a field's resolver as editable YAML
//   - assemble checks a YAML configuration offline
//   - submit validates and stores a resolver, remove detaches one
//   - fields and upstreams list what can be configured
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
