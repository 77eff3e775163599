package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/moopad/internal/cli"
)

var generators = map[string]func(*cobra.Command, io.Writer) error{
	"bash": func(c *cobra.Command, w io.Writer) error { return c.GenBashCompletionV2(w, true) },
	"zsh":  func(c *cobra.Command, w io.Writer) error { return c.GenZshCompletion(w) },
	"fish": func(c *cobra.Command, w io.Writer) error { return c.GenFishCompletion(w, true) },
	"powershell": func(c *cobra.Command, w io.Writer) error {
		return c.GenPowerShellCompletionWithDesc(w)
	},
}

func supportedShells() string {
	shells := make([]string, 0, len(generators))
	for name := range generators {
		shells = append(shells, name)
	}
	sort.Strings(shells)
	return strings.Join(shells, "|")
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%s>\n", os.Args[0], supportedShells())
		os.Exit(1)
	}

	shell := os.Args[1]
	generate, ok := generators[shell]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown shell %q, expected one of %s\n", shell, supportedShells())
		os.Exit(1)
	}

	if err := generate(cli.NewRootCmd(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s completion: %v\n", shell, err)
		os.Exit(1)
	}
}
