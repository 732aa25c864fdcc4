package main

import (
	"io"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	cfgFile string
	verbose bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "perfhar",
		Short: "Build HAR files from Chrome performance logs",
		Long: `perfhar turns the Network.* events of a WebDriver performance log into a
HAR 1.2 document. Each test step becomes a HAR page and every request or
WebSocket session is attached to the step that was running when it started.

Sensitive data is stripped on the way:
  - Authorization request headers and any header named like "token"
  - response bodies (replaced by a marker)
  - WebSocket payloads (only the first and last 10 characters are kept)`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", "", "config file path (YAML)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newConvertCmd(g))
	root.AddCommand(newVersionCmd())
	return root
}
