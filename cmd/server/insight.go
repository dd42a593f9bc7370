package main

import (
	"bizdash-backend/internal/config"
	"bizdash-backend/internal/projection"
	"fmt"

	"github.com/spf13/cobra"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate AI insights for a projection scenario",
	Long: `Run the projection for the given rates and ask the insight provider
for a short analysis. Requires GEMINI_API_KEY; without it the fallback
message is printed.

Example:
  bizdash insight --revenue-growth 10 --cost-increase 5 --inflation 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger := newLogger(cfg)

		p, err := projection.Project(projectInput())
		if err != nil {
			return err
		}
		renderProjection(cmd.OutOrStdout(), p)

		ctx := cmd.Context()
		result := newInsightService(ctx, cfg, logger).Generate(ctx, p.Summary())
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s (attempts: %d)\n\n%s\n", result.State, result.Attempts, result.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightCmd)
	addProjectionFlags(insightCmd)
	insightCmd.Flags().Float64Var(&projectInflation, "inflation", 0, "Annual inflation rate in percent (0 to 15)")
}
