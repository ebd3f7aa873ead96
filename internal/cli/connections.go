package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbout22/ghtree/internal/auth"
	"github.com/cbout22/ghtree/internal/config"
)

// newConnectionsCmd creates the `connections` command.
// Usage: ghtree connections [--init]
func newConnectionsCmd(a *app) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "connections",
		Short: "List the connections of the settings file",
		Long: `Lists every named connection with its API endpoint and where its token
comes from. The default connection is marked with *.

With --init, writes a settings file holding the default connection when
none exists yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.v.GetString("config")
			if initFile {
				return runConnectionsInit(a.out, path)
			}
			settings, err := config.LoadSettings(path)
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}
			return runConnections(a.out, settings)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Create the settings file if missing")

	return cmd
}

func runConnections(w io.Writer, settings *config.Settings) error {
	for _, name := range settings.ConnectionNames() {
		conn, err := settings.Connection(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == settings.DefaultConnection {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-12s %-32s %s\n", marker, name, conn.BaseURL, tokenSource(name, conn))
	}
	return nil
}

// tokenSource describes where a connection's token is read from.
func tokenSource(name string, conn config.Connection) string {
	switch {
	case conn.Anonymous:
		return "anonymous"
	case conn.TokenEnv != "":
		return "$" + conn.TokenEnv
	default:
		return fmt.Sprintf("$%s, $GITHUB_TOKEN or $GH_TOKEN", auth.ConnectionEnvVar(name))
	}
}

func runConnectionsInit(w io.Writer, path string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "⚠️  %s already exists\n", path)
		return nil
	}
	if err := config.NewSettings().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Created %s\n", path)
	return nil
}
