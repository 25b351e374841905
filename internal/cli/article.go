package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"seoforge/internal/seo"
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Generate an SEO-optimized article",
	Long: `Generate an SEO-optimized article for a topic and write it as JSON,
Markdown and HTML files.

Examples:
  seoforge article -k "home coffee roasting"
  seoforge article -k "home coffee roasting" -t professional -w 1500 -a how-to
  seoforge article -k "home coffee roasting" --with-keywords`,
	RunE: runArticle,
}

func init() {
	rootCmd.AddCommand(articleCmd)

	articleCmd.Flags().StringP("topic", "k", "", "target topic or keyword (required)")
	articleCmd.Flags().StringP("tone", "t", "informal", "tone: formal, informal, conversational, professional")
	articleCmd.Flags().IntP("word-count", "w", 1200, "target word count")
	articleCmd.Flags().StringP("article-type", "a", "guide", "article type: guide, review, how-to, list, comparison")
	articleCmd.Flags().StringP("model", "m", "", "pin a specific model id instead of automatic selection")
	articleCmd.Flags().Bool("with-keywords", false, "generate a keyword set first and weave it into the article")
	articleCmd.Flags().Int("keyword-count", 15, "keyword count used with --with-keywords")
	_ = articleCmd.MarkFlagRequired("topic")
}

func runArticle(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")
	tone, _ := cmd.Flags().GetString("tone")
	wordCount, _ := cmd.Flags().GetInt("word-count")
	articleType, _ := cmd.Flags().GetString("article-type")
	model, _ := cmd.Flags().GetString("model")
	withKeywords, _ := cmd.Flags().GetBool("with-keywords")
	keywordCount, _ := cmd.Flags().GetInt("keyword-count")

	gen, out, _, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	req := &seo.ArticleRequest{
		Topic:       topic,
		Tone:        seo.Tone(tone),
		WordCount:   wordCount,
		ArticleType: seo.ArticleType(articleType),
		Model:       model,
	}

	if withKeywords {
		kwReq := &seo.KeywordRequest{Topic: topic, Count: keywordCount}
		kwResult, err := gen.GenerateKeywords(cmd.Context(), kwReq)
		if err != nil {
			return err
		}
		printWarnings(cmd, kwResult.Warnings)
		printKeywords(cmd, kwResult.Record)

		path, err := out.WriteKeywords(topic, kwResult.Record)
		if err != nil {
			return err
		}
		printSuccess(cmd, "Keywords saved to %s", path)

		req.Keywords = kwResult.Record.FlatKeywords()
	}

	result, err := gen.GenerateArticle(cmd.Context(), req)
	if err != nil {
		return err
	}
	printWarnings(cmd, result.Warnings)

	paths, err := out.WriteArticle(topic, result.Record)
	if err != nil {
		return err
	}

	printSuccess(cmd, "Article generated with %s (%d words)", result.Model, result.Record.WordCount)
	fmt.Fprintf(cmd.OutOrStdout(), "  JSON:     %s\n", paths.JSON)
	fmt.Fprintf(cmd.OutOrStdout(), "  Markdown: %s\n", paths.Markdown)
	fmt.Fprintf(cmd.OutOrStdout(), "  HTML:     %s\n", paths.HTML)
	return nil
}
