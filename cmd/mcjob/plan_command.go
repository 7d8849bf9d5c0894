package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mcjob/internal/rendition"
	"mcjob/internal/services"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var width int
	var height int
	var jsonOutput bool
	var tierNames []string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the rendition ladder for a source resolution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source := rendition.SourceProfile{Width: cfg.Source.Width, Height: cfg.Source.Height}
			if cmd.Flags().Changed("width") {
				source.Width = width
			}
			if cmd.Flags().Changed("height") {
				source.Height = height
			}

			tiers, err := selectTiers(tierNames)
			if err != nil {
				return err
			}
			ladder, err := rendition.PlanLadder(source, tiers)
			if err != nil {
				return services.Wrap(services.ErrUsage, "cli", "plan", fmt.Sprintf("source %s", source), err)
			}
			if jsonOutput {
				return writeJSON(cmd, ladder)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source %s\n", source)
			fmt.Fprintln(out, renderTable(
				[]string{"Tier", "Modifier", "Resolution", "Max Bitrate", "QVBR", "Profile"},
				ladderRows(ladder),
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Source width in pixels (defaults to source.width)")
	cmd.Flags().IntVar(&height, "height", 0, "Source height in pixels (defaults to source.height)")
	cmd.Flags().StringSliceVar(&tierNames, "tier", nil, "Limit the ladder to these tiers (low, medium, high)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the ladder as JSON")
	return cmd
}

// selectTiers resolves --tier values, keeping ladder order for an empty list.
func selectTiers(names []string) ([]rendition.Tier, error) {
	if len(names) == 0 {
		return rendition.DefaultTiers(), nil
	}
	tiers := make([]rendition.Tier, 0, len(names))
	for _, name := range names {
		tier, ok := rendition.TierByName(strings.ToLower(strings.TrimSpace(name)))
		if !ok {
			return nil, services.Wrap(services.ErrUsage, "cli", "plan", fmt.Sprintf("unknown tier %q (use low, medium or high)", name), nil)
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

func ladderRows(ladder []rendition.OutputDescriptor) [][]string {
	title := cases.Title(language.English)
	rows := make([][]string, 0, len(ladder))
	for _, d := range ladder {
		name := strings.TrimPrefix(d.Name, "hls_")
		rows = append(rows, []string{
			title.String(name),
			d.NameModifier,
			d.Resolution(),
			formatBitrate(d.MaxBitrate),
			strconv.Itoa(d.QualityLevel),
			string(d.Profile),
		})
	}
	return rows
}

func formatBitrate(bps int) string {
	switch {
	case bps >= 1_000_000:
		return strconv.FormatFloat(float64(bps)/1_000_000, 'f', -1, 64) + " Mbps"
	case bps >= 1_000:
		return strconv.FormatFloat(float64(bps)/1_000, 'f', -1, 64) + " kbps"
	default:
		return strconv.Itoa(bps) + " bps"
	}
}
