// Package cli contains the seoforge command-line interface.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"seoforge/internal/config"
	"seoforge/internal/service/generator"
	"seoforge/internal/service/llm"
	"seoforge/internal/service/llm/providers"
	"seoforge/internal/writer"
)

var (
	outputDir    string
	providerName string
	quiet        bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seoforge",
	Short: "Generate SEO-optimized articles and keyword sets",
	Long: `seoforge generates SEO-optimized articles and keyword sets from a topic
using a remote completion model, and writes the results as JSON, Markdown
and HTML files.

Example usage:
  seoforge article -k "home coffee roasting" -w 1200 -a guide
  seoforge article -k "home coffee roasting" --with-keywords
  seoforge keywords -t "home coffee roasting" -c 20 -y primary_keywords`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "output directory (default: $OUTPUT_DIR or ~/SEO articles)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "completion provider: openai or gemini (default: $DEFAULT_PROVIDER)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

// buildPipeline assembles the generation pipeline from the environment. The
// CLI tracks usage in memory only; Redis accounting belongs to the server.
func buildPipeline(cmd *cobra.Command) (*generator.Generator, *writer.Writer, *config.Config, error) {
	_ = godotenv.Load()

	cfg := config.NewConfig()
	if providerName != "" {
		cfg.DefaultProvider = providerName
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	logger := newCLILogger(cmd, quiet)

	service := llm.NewService(llm.ServiceOptions{
		DefaultProvider: cfg.DefaultProvider,
		RateLimit:       rate.Limit(cfg.RateLimit),
		RateBurst:       cfg.RateBurst,
		Logger:          logger,
	})

	if cfg.OpenAIAPIKey != "" {
		p, err := providers.NewOpenAIProvider(cfg.OpenAIAPIKey, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		service.RegisterProvider(p)
	}
	if cfg.GeminiAPIKey != "" {
		p, err := providers.NewGeminiProvider(cmd.Context(), cfg.GeminiAPIKey, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		service.RegisterProvider(p)
	}

	gen := generator.New(generator.Options{
		Service:      service,
		Provider:     cfg.DefaultProvider,
		DefaultModel: cfg.DefaultModel,
		Temperature:  cfg.Temperature,
		Logger:       logger,
	})

	out, err := writer.New(cfg.OutputDir)
	if err != nil {
		return nil, nil, nil, err
	}

	return gen, out, cfg, nil
}
