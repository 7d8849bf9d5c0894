package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEndpointsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "List the account's MediaConvert endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runCtx, cancel := ctx.commandTimeout(cmd)
			defer cancel()

			jobs, _, err := ctx.newClients(runCtx, cfg, ctx.ensureLogger())
			if err != nil {
				return err
			}
			urls, err := jobs.DescribeEndpoints(runCtx)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, urls)
			}
			out := cmd.OutOrStdout()
			for _, u := range urls {
				fmt.Fprintln(out, u)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output endpoints as JSON")
	return cmd
}
