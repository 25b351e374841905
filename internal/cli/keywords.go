package cli

import (
	"github.com/spf13/cobra"

	"seoforge/internal/seo"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Generate an SEO keyword set",
	Long: `Generate SEO keywords for a topic, grouped into the five fixed
categories, and write them as a JSON file.

Examples:
  seoforge keywords -t "home coffee roasting"
  seoforge keywords -t "home coffee roasting" -c 25
  seoforge keywords -t "home coffee roasting" -y primary_keywords -y question_keywords`,
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().StringP("topic", "t", "", "topic to generate keywords for (required)")
	keywordsCmd.Flags().IntP("count", "c", 15, "total number of keywords to generate")
	keywordsCmd.Flags().StringArrayP("category", "y", nil, "keyword category to include (repeatable; default: all five)")
	_ = keywordsCmd.MarkFlagRequired("topic")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")
	categories, _ := cmd.Flags().GetStringArray("category")

	gen, out, _, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	req := &seo.KeywordRequest{Topic: topic, Count: count}
	for _, cat := range categories {
		req.Categories = append(req.Categories, seo.KeywordCategory(cat))
	}

	result, err := gen.GenerateKeywords(cmd.Context(), req)
	if err != nil {
		return err
	}
	printWarnings(cmd, result.Warnings)
	printKeywords(cmd, result.Record)

	path, err := out.WriteKeywords(topic, result.Record)
	if err != nil {
		return err
	}
	printSuccess(cmd, "%d keywords saved to %s", result.Record.TotalKeywords, path)
	return nil
}
