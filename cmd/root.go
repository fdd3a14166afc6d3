// Package cmd implements the CLI surface (spec §6): a cobra command tree
// around the configuration loader and server lifecycle.
package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	configPath   string
	listenAddrs  []string
	port         uint16
	queryLogging bool
)

// NewRootCommand builds the slaacns command tree; running it with no
// subcommand is equivalent to "serve".
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "slaacns",
		Short: "slaacns synthesizes IPv6 PTR/AAAA answers from configured network templates",
		Run: func(cmd *cobra.Command, args []string) {
			newServeCommand().Run(cmd, args)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "configfile", "c", "./slaacns.conf", "path to configuration file")
	root.PersistentFlags().StringArrayVar(&listenAddrs, "listen", nil, "bind address (repeatable, augments file)")
	root.PersistentFlags().Uint16Var(&port, "port", 53, "UDP port to listen on")
	root.PersistentFlags().BoolVar(&queryLogging, "querylog", false, "log one line per query through the application logger (stderr)")

	root.AddCommand(newServeCommand(), newValidateCommand(), newVersionCommand())

	return root
}
