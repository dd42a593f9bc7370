package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bizdash",
	Short: "Business dashboard backend",
	Long: `bizdash serves the business dashboard API: the streaming chat
assistant, the financial projection simulator with AI insights and the
static dashboard datasets.

Examples:
  bizdash                                  # run the HTTP server
  bizdash project --revenue-growth 10 --cost-increase 5 --inflation 3
  bizdash insight --revenue-growth 10 --cost-increase 5
  bizdash token --subject analyst          # mint a dev access token`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	RunE:              runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
