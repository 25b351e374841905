package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"seoforge/internal/service/llm/tokens"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported models and their token limits",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	printHeader(cmd, "Supported models")
	for _, p := range tokens.Profiles() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-18s provider=%-7s context=%-8d output=%d\n",
			p.ID, p.Provider, p.MaxContextTokens, p.MaxOutputTokens)
	}
	return nil
}
