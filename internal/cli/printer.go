package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"seoforge/internal/seo"
	"seoforge/internal/service/llm/validation"
)

// cliLogger adapts the LLM service logger to terminal output. Debug output
// is dropped; info lines are shown unless quiet mode is on.
type cliLogger struct {
	cmd   *cobra.Command
	quiet bool
}

func newCLILogger(cmd *cobra.Command, quiet bool) *cliLogger {
	return &cliLogger{cmd: cmd, quiet: quiet}
}

func (l *cliLogger) Debug(msg string, keysAndValues ...interface{}) {}

func (l *cliLogger) Info(msg string, keysAndValues ...interface{}) {
	if l.quiet {
		return
	}
	fmt.Fprintln(l.cmd.OutOrStdout(), faint(formatLog(msg, keysAndValues)))
}

func (l *cliLogger) Error(msg string, keysAndValues ...interface{}) {
	fmt.Fprintln(l.cmd.ErrOrStderr(), color.RedString(formatLog(msg, keysAndValues)))
}

func formatLog(msg string, keysAndValues []interface{}) string {
	out := msg
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out += fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return out
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}

func printSuccess(cmd *cobra.Command, format string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ "+format+"\n", args...)
}

func printWarnings(cmd *cobra.Command, warnings []validation.Warning) {
	for _, w := range warnings {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ %s: %s\n", w.Kind, w.Message)
	}
}

func printHeader(cmd *cobra.Command, title string) {
	color.New(color.FgWhite, color.Bold).Fprintf(cmd.OutOrStdout(), "\n%s\n", title)
}

// printKeywords lists the generated keywords grouped per category, in the
// fixed category order.
func printKeywords(cmd *cobra.Command, record *seo.KeywordRecord) {
	printHeader(cmd, fmt.Sprintf("Keywords for: %s", record.Topic))
	for _, cat := range seo.KeywordCategories {
		list := record.Keywords[cat]
		if len(list) == 0 {
			continue
		}
		color.New(color.FgCyan).Fprintf(cmd.OutOrStdout(), "\n%s:\n", cat)
		for i, kw := range list {
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, kw)
		}
	}

	printHeader(cmd, "SEO Insights")
	fmt.Fprintf(cmd.OutOrStdout(), "  Search volume: %s\n", record.Insights.SearchVolume)
	fmt.Fprintf(cmd.OutOrStdout(), "  Competition:   %s\n", record.Insights.Competition)
	fmt.Fprintf(cmd.OutOrStdout(), "  Focus:         %s\n", record.Insights.RecommendedFocus)
}
