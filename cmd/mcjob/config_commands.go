package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mcjob/internal/config"
	"mcjob/internal/services"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return services.Wrap(services.ErrUsage, "config", "init",
						fmt.Sprintf("config file already exists at %s (use --overwrite to replace it)", target), nil)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set service.role_arn (or export MCJOB_ROLE_ARN) to omit the role argument of `mcjob create`.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return expanded, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			if ctx.configExists {
				fmt.Fprintln(out, renderStatusLine("Config", statusOK, ctx.configPath, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Config", statusWarn, "no file found; defaults in use", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Region", statusInfo, cfg.Service.Region, colorize))

			endpoint := cfg.Service.EndpointURL
			if endpoint == "" {
				endpoint = "discovered at submit time"
			}
			fmt.Fprintln(out, renderStatusLine("Endpoint", statusInfo, endpoint, colorize))

			if cfg.Service.RoleARN != "" {
				fmt.Fprintln(out, renderStatusLine("Role", statusOK, cfg.Service.RoleARN, colorize))
			} else {
				fmt.Fprintln(out, renderStatusLine("Role", statusWarn, "not set; pass it to `mcjob create`", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Credentials", statusInfo, cfg.Credentials.Source, colorize))
			fmt.Fprintln(out, renderStatusLine("Source", statusInfo, fmt.Sprintf("%dx%d", cfg.Source.Width, cfg.Source.Height), colorize))
			fmt.Fprintln(out, renderStatusLine("Verify input", statusInfo, yesNo(cfg.Preflight.VerifyInput), colorize))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
