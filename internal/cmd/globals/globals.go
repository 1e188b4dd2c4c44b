// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import "github.com/spf13/cobra"

// Flags holds the persistent flags shared by every command.
type Flags struct {
	ConfigFile        string
	Format            string
	LogLevel          string
	Quiet             bool
	Verbose           bool
	NoColor           bool
	Registry          string
	LocalRegistryPath string
}

// AddFlags adds the persistent flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}
	pf := cmd.PersistentFlags()

	pf.StringVar(&flags.ConfigFile, "config", "",
		"Config file (default is $HOME/.registermodel.yaml)")
	pf.StringVarP(&flags.Format, "format", "o", "",
		"Output format: table, json, yaml, wide")
	pf.StringVar(&flags.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error (overrides -v/-q)")
	pf.BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output (shortcut for --log-level=warn)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output (shortcut for --log-level=debug)")
	pf.BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	pf.StringVar(&flags.Registry, "registry", "",
		"Registry backend: azureml, local")
	pf.StringVar(&flags.LocalRegistryPath, "local_registry_path", "",
		"Root directory of the local registry backend")

	return flags
}
