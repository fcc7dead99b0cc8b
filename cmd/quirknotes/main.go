// Command quirknotes is a terminal note-taking client with a bundled
// development backend.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		newRootCommand(wiring),
		fang.WithVersion(wiring.version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}
