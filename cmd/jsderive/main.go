// Package main provides the CLI entrypoint for jsderive.
//
// jsderive generates TryToJS conversions for Go structs:
//   - gen writes a <file>_jsgen.go next to every file with selected types
//   - check reports generated files that are missing or out of date
//   - inspect prints the shapes jsderive derives, as YAML
//   - config prints the resolved configuration and where each setting came from
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "jsderive:", err)
		}

		os.Exit(1)
	}
}
