// Command fozzie is an interactive fuzzy-selection filter for the
// terminal: it reads candidates from stdin, lets the user narrow them
// down against a live-scored query, and prints the chosen line to
// stdout.
package main

import (
	"os"

	"github.com/npezza93/fozzie-go/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
