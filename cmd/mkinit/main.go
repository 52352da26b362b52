package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pvandyken/mkinit/cmd/mkinit/commands"
)

const (
	cmdName = "mkinit"

	shortDesc = "Autogenerate __init__.py files."
	longDesc  = `Autogenerate __init__.py declarations for Python packages.

mkinit statically analyzes the submodules of a package and rewrites the
generated region of its __init__.py with deterministic inclusion statements
and an __all__ manifest. Hand-written code outside the generated region is
preserved. Generation can be eager (conventional imports) or lazy (deferred
resolution on first attribute access).
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
