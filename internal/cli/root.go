package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

// NewRootCmd creates the top-level `ghtree` command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ghtree",
		Short: "Browse GitHub repositories without cloning them",
		Long: `ghtree reads the file tree of a GitHub repository through the REST API.
Directories are listed on demand, files are fetched only when printed or
exported, and whole-repository archives can be located or downloaded.

Repositories are addressed as org/repo or org/repo@ref.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.out = cmd.OutOrStdout()
			a.errOut = cmd.ErrOrStderr()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", config.DefaultSettingsFile, "Path to the settings file")
	flags.StringP("connection", "c", "", "Named connection from the settings file")
	flags.BoolP("verbose", "v", false, "Log HTTP requests and responses")

	a.v.SetEnvPrefix("GHTREE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, name := range []string{"config", "connection", "verbose"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newLsCmd(a))
	root.AddCommand(newCatCmd(a))
	root.AddCommand(newTreeCmd(a))
	root.AddCommand(newArchiveCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newConnectionsCmd(a))

	return root
}

// Execute runs the root command.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
