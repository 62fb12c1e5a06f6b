package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mchmarny/scorekit/pkg/config"
	"github.com/mchmarny/scorekit/pkg/data"
	"github.com/mchmarny/scorekit/pkg/logging"
	"github.com/mchmarny/scorekit/pkg/score"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "scorectl"
	appConfigKey = "app-config"
	homeDirName  = ".scorekit"
	setPrefix    = "set:"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""
)

// Flag names. Commands are built fresh by newApp so flag state never leaks
// between runs.
const (
	flagDebug  = "debug"
	flagDB     = "db"
	flagConfig = "config"
	flagFormat = "format"
	flagSource = "source"

	sourceUsage = "Score source: file path, http(s) URL or set:<name> for a saved set"
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	*config.Config
	Debug bool

	dbOnce sync.Once
	db     *sql.DB
	dbErr  error
}

// DB opens the score set store on first use.
func (a *appConfig) DB() (*sql.DB, error) {
	a.dbOnce.Do(func() {
		if err := data.Init(a.DBPath); err != nil {
			a.dbErr = fmt.Errorf("initializing database: %w", err)
			return
		}
		a.db, a.dbErr = data.GetDB(a.DBPath)
	})
	return a.db, a.dbErr
}

func (a *appConfig) close() {
	if a.db != nil {
		a.db.Close()
	}
}

func getConfig(cmd *urfave.Command) (*appConfig, error) {
	cfg, ok := cmd.Root().Metadata[appConfigKey].(*appConfig)
	if !ok {
		return nil, errors.New("app config not initialized")
	}
	return cfg, nil
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Rank, combine and store numeric score sets",
		Metadata:              map[string]any{},
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  flagDebug,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&urfave.StringFlag{
				Name:  flagDB,
				Usage: "Path to the Sqlite database file holding saved score sets",
			},
			&urfave.StringFlag{
				Name:  flagConfig,
				Usage: "Directory holding config.yaml (default: $HOME/.scorekit)",
			},
			&urfave.StringFlag{
				Name:  flagFormat,
				Usage: "Output format [json, yaml]",
			},
		},
		Commands: []*urfave.Command{
			newRankCmd(),
			newCombineCmd(),
			newStoreCmd(),
			newServerCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			initLogging(cfg.LogLevel, cfg.Debug)
			cmd.Root().Metadata[appConfigKey] = cfg
			return ctx, nil
		},
		After: func(_ context.Context, cmd *urfave.Command) error {
			if cfg, ok := cmd.Root().Metadata[appConfigKey].(*appConfig); ok {
				cfg.close()
			}
			return nil
		},
	}
}

// loadConfig reads config.yaml and applies global flags on top of it.
func loadConfig(cmd *urfave.Command) (*appConfig, error) {
	dir := cmd.String(flagConfig)
	if dir == "" {
		dir = getHomeDir()
	}

	c, err := config.ReadOrCreate(dir)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if f := cmd.String(flagFormat); f != "" {
		c.Format = f
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if p := cmd.String(flagDB); p != "" {
		c.DBPath = p
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(dir, data.DataFileName)
	}

	return &appConfig{
		Config: c,
		Debug:  cmd.Bool(flagDebug),
	}, nil
}

func initLogging(level string, debug bool) {
	if debug {
		level = "debug"
	}
	logging.SetDefaultCLILogger(level)
}

func getHomeDir() string {
	dir, _, err := config.GetOrCreateHomeDir(homeDirName)
	if err != nil {
		slog.Debug("error getting home dir, using current dir instead", "error", err)
		return "."
	}
	return dir
}

// loadSource resolves a --source value: set:<name> reads a saved set,
// anything else is a file path or URL.
func loadSource(ctx context.Context, cfg *appConfig, src string) (*score.Scorer[string], error) {
	if name, ok := strings.CutPrefix(src, setPrefix); ok {
		db, err := cfg.DB()
		if err != nil {
			return nil, err
		}
		return data.GetSet(db, name)
	}
	return data.Load(ctx, src)
}

func output(cmd *urfave.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func encode(cmd *urfave.Command, v any) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	w := output(cmd)
	if cfg.Format == config.FormatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
