package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mcjob/internal/jobspec"
	"mcjob/internal/rendition"
	"mcjob/internal/services"
	"mcjob/internal/submission"
)

const createUsage = `Usage:
  mcjob create <role-arn> <input-file>

Where:
  role-arn    the IAM role MediaConvert assumes to read the input and write outputs
  input-file  the s3://bucket/key locator of the source video

The role may be omitted when service.role_arn (or MCJOB_ROLE_ARN) is set.`

type dryRunOutput struct {
	DryRun     bool                         `json:"dryRun"`
	Layout     jobspec.Layout               `json:"layout"`
	Renditions []rendition.OutputDescriptor `json:"renditions"`
	Request    jobspec.JobRequest           `json:"request"`
}

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "create <role-arn> <input-file>",
		Short: "Create a MediaConvert job for an S3 input",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return services.Wrap(services.ErrUsage, "cli", "create", createUsage, nil)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := createRequest(ctx, args)
			if err != nil {
				return err
			}

			runCtx, cancel := ctx.commandTimeout(cmd)
			defer cancel()

			if dryRun {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				s := submission.New(cfg, nil, submission.WithLogger(ctx.ensureLogger()))
				job, ladder, layout, err := s.Prepare(runCtx, req)
				if err != nil {
					return err
				}
				return writeJSON(cmd, dryRunOutput{DryRun: true, Layout: layout, Renditions: ladder, Request: job})
			}

			s, err := ctx.submitter(runCtx)
			if err != nil {
				return err
			}
			result, err := s.Submit(runCtx, req)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printCreateResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the assembled job request without contacting AWS")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the created job as JSON")
	return cmd
}

// createRequest maps positional arguments: two arguments are role and
// input, a single argument is the input with the configured role.
func createRequest(ctx *commandContext, args []string) (submission.Request, error) {
	if len(args) == 2 {
		return submission.Request{Role: strings.TrimSpace(args[0]), Input: strings.TrimSpace(args[1])}, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return submission.Request{}, err
	}
	if strings.TrimSpace(cfg.Service.RoleARN) == "" {
		return submission.Request{}, services.Wrap(services.ErrUsage, "cli", "create", createUsage, nil)
	}
	return submission.Request{Input: strings.TrimSpace(args[0])}, nil
}

func printCreateResult(cmd *cobra.Command, result submission.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Service URL", statusInfo, result.Endpoint, colorize))
	fmt.Fprintln(out, renderStatusLine("Role ARN", statusInfo, result.Role, colorize))
	fmt.Fprintln(out, renderStatusLine("Input file", statusInfo, result.Input, colorize))
	fmt.Fprintln(out, renderStatusLine("Output path", statusInfo, result.Layout.Prefix, colorize))
	fmt.Fprintf(out, "MediaConvert job created. Job Id = %s\n", result.JobID)
}
