package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mcjob/internal/config"
	"mcjob/internal/logging"
	"mcjob/internal/preflight"
	"mcjob/internal/services"
	"mcjob/internal/services/awsclient"
	"mcjob/internal/services/mediaconvert"
	"mcjob/internal/submission"
)

// clientFactory builds the MediaConvert and S3 collaborators for a command.
type clientFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (submission.JobService, submission.InputVerifier, error)

// newClients is replaced in tests.
var newClients clientFactory = awsClients

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger

	newClients clientFactory
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		newClients: newClients,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "ensure directories", "", err)
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger from config. Logger construction failures
// fall back to stderr console output rather than failing the command.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "info"})
			logger.Warn("logger configuration rejected; using defaults",
				logging.String(logging.FieldEventType, "logger_fallback"),
				logging.Error(err),
			)
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) submitter(ctx context.Context) (*submission.Submitter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.ensureLogger()
	jobs, verifier, err := c.newClients(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	opts := []submission.Option{submission.WithLogger(logger)}
	if verifier != nil {
		opts = append(opts, submission.WithVerifier(verifier))
	}
	return submission.New(cfg, jobs, opts...), nil
}

// commandTimeout bounds ctx by service.timeout_seconds.
func (c *commandContext) commandTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := c.ensureConfig()
	if err != nil || cfg.Timeout() <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout())
}

func awsClients(ctx context.Context, cfg *config.Config, logger *slog.Logger) (submission.JobService, submission.InputVerifier, error) {
	awsCfg, err := awsclient.Load(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	jobs := mediaconvert.NewFromConfig(awsCfg,
		mediaconvert.WithLogger(logger),
		mediaconvert.WithMaxEndpoints(cfg.Service.MaxEndpoints),
	)
	return jobs, preflight.NewFromConfig(awsCfg, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
