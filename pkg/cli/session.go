package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/devicelab-dev/flowdigest/pkg/ai"
	"github.com/devicelab-dev/flowdigest/pkg/config"
	"github.com/devicelab-dev/flowdigest/pkg/logger"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// session carries what every command needs: the resolved configuration, a
// run-scoped logger and the output writer.
type session struct {
	cfg   *config.Config
	log   *zap.Logger
	out   io.Writer
	runID string
}

// lookupString returns a flag from the command or, when unset there, from
// the global flags.
func lookupString(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx != nil && ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return c.String(name)
}

func lookupBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx != nil && ctx.IsSet(name) {
			return ctx.Bool(name)
		}
	}
	return c.Bool(name)
}

// newSession loads .env and the workspace config and opens the log file.
// The caller must call close.
func newSession(c *cli.Context) (*session, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if path := lookupString(c, "config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logOpts := logger.Options{
		Path:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if path := lookupString(c, "log-file"); path != "" {
		logOpts.Path = path
	}
	if lookupBool(c, "verbose") {
		logOpts.Level = "debug"
	}
	// An empty path leaves the no-op logger in place.
	if logOpts.Path != "" {
		if err := logger.Init(logOpts); err != nil {
			fmt.Fprintf(c.App.ErrWriter, "Warning: Failed to initialize logger: %v\n", err)
		}
	}

	s := &session{
		cfg:   cfg,
		out:   c.App.Writer,
		runID: uuid.NewString(),
	}
	s.log = logger.L().With(
		zap.String("runId", s.runID),
		zap.String("command", c.Command.Name),
	)
	logger.Info("=== flowdigest %s %s started (run %s) ===", Version, c.Command.Name, s.runID)
	logger.Debug("config: input=%s interactions=%s summary=%s image=%s",
		cfg.Input, cfg.Output.Interactions, cfg.Output.Summary, cfg.Output.Image)
	return s, nil
}

func (s *session) close() {
	logger.Info("=== run %s finished ===", s.runID)
	logger.Close()
}

// wrote prints the absolute path of a written artifact.
func (s *session) wrote(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(s.out, "Wrote %s\n", path)
	s.log.Info("artifact written", zap.String("path", path))
}

// aiClient builds the service client. It fails with core.ErrMissingAPIKey
// when no credentials are configured.
func (s *session) aiClient() (*ai.Client, error) {
	key, err := config.APIKey()
	if err != nil {
		return nil, err
	}
	return ai.NewClient(key, ai.Config{
		CompletionModel:   s.cfg.AI.CompletionModel,
		Temperature:       s.cfg.AI.Temperature,
		CompletionTimeout: s.cfg.AI.CompletionTimeout,
		ImageModel:        s.cfg.AI.ImageModel,
		ImageSize:         s.cfg.AI.ImageSize,
		ImageTimeout:      s.cfg.AI.ImageTimeout,
	}, ai.WithBaseURL(s.cfg.AI.BaseURL))
}
