// Command duel compares two heroes from a catalog file or URL without
// starting the HTTP service.
package main

import "github.com/okian/herodex/cmd/duel/cmd"

func main() {
	cmd.Execute()
}
