package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cbout22/ghtree/internal/config"
	"github.com/cbout22/ghtree/internal/export"
	"github.com/cbout22/ghtree/internal/github"
	"github.com/cbout22/ghtree/internal/log"
	"github.com/cbout22/ghtree/internal/reader"
)

// app carries what every command needs. connector and writer are replaced
// in tests.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	connector reader.Connector
	writer    export.FileWriter
	logger    *zap.SugaredLogger
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		out:    os.Stdout,
		errOut: os.Stderr,
		writer: &export.OSFileWriter{},
	}
}

// setup loads the settings and returns a Reader on the selected connection.
func (a *app) setup() (*reader.Reader, error) {
	if a.logger == nil {
		a.logger = log.NewLogger(a.errOut, a.v.GetBool("verbose"))
	}

	connection := a.v.GetString("connection")
	if a.connector == nil {
		settings, err := config.LoadSettings(a.v.GetString("config"))
		if err != nil {
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		if connection == "" {
			connection = settings.DefaultConnection
		}
		a.connector = github.NewManager(settings, a.logger,
			github.WithUserAgent("ghtree/"+version),
			github.WithVerbose(a.v.GetBool("verbose")),
		)
	}

	rd := reader.New(a.connector, reader.WithLogger(a.logger))
	rd.SetConnection(connection)
	return rd, nil
}

// openRef points rd at a raw "org/repo[@ref]" and returns the root directory.
func openRef(rd *reader.Reader, raw string) (*reader.Directory, error) {
	ref, err := config.ParseRepoRef(raw)
	if err != nil {
		return nil, err
	}
	rd.SetRef(ref.Ref)
	return rd.Read(ref.Org, ref.Repo, "")
}
