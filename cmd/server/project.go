package main

import (
	"bizdash-backend/internal/projection"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	projectRevenueGrowth float64
	projectCostIncrease  float64
	projectInflation     float64
	projectBaseRevenue   float64
	projectBaseCost      float64
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print a 12 month financial projection",
	Long: `Compute the 12 month projection for the given rates and print it as a table.

Examples:
  bizdash project --revenue-growth 10 --cost-increase 5 --inflation 3
  bizdash project --revenue-growth -5 --base-revenue 250000 --base-cost 180000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := projection.Project(projectInput())
		if err != nil {
			return err
		}
		renderProjection(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	addProjectionFlags(projectCmd)
	projectCmd.Flags().Float64Var(&projectInflation, "inflation", 0, "Annual inflation rate in percent (0 to 15)")
}

func addProjectionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&projectRevenueGrowth, "revenue-growth", 0, "Annual revenue growth in percent (-20 to 50)")
	cmd.Flags().Float64Var(&projectCostIncrease, "cost-increase", 0, "Annual operational cost increase in percent (-10 to 30)")
	cmd.Flags().Float64Var(&projectBaseRevenue, "base-revenue", projection.DefaultBaseRevenue, "Current monthly revenue")
	cmd.Flags().Float64Var(&projectBaseCost, "base-cost", projection.DefaultBaseCost, "Current monthly operational cost")
}

func projectInput() projection.Input {
	return projection.Input{
		RevenueGrowthPct: projectRevenueGrowth,
		CostIncreasePct:  projectCostIncrease,
		InflationRatePct: projectInflation,
		BaseRevenue:      projectBaseRevenue,
		BaseCost:         projectBaseCost,
	}
}

func renderProjection(w io.Writer, p *projection.Projection) {
	rows := make([][]string, 0, len(p.Periods))
	for _, period := range p.Periods {
		rows = append(rows, []string{
			period.Month,
			strconv.FormatInt(period.Revenue, 10),
			strconv.FormatInt(period.Cost, 10),
			strconv.FormatInt(period.Profit, 10),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Month", "Revenue", "Cost", "Profit").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, summaryStyle.Render(p.Summary().Describe()))
}
