package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdnest/internal/logging"
	"github.com/yaklabco/gomdnest/pkg/lint"
	"github.com/yaklabco/gomdnest/pkg/nested"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Tags        []string `json:"tags"`
	Nested      bool     `json:"nested"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List the rules applied to nested Markdown blocks with their IDs,
names, default severity and tags. Rules marked as suppressed are never
applied inside code fences.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd.OutOrStdout(), lint.DefaultRegistry.Rules(), flags.format)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func listRules(out io.Writer, rules []lint.Rule, format string) error {
	switch format {
	case formatJSON:
		return outputRulesJSON(out, rules)
	case "", "text":
	default:
		return fmt.Errorf("%w: unknown format %q", ErrUsage, format)
	}

	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: false})
	logger.SetLevel(log.InfoLevel)

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	logger.Info("available rules")

	for _, rule := range rules {
		applies := "yes"
		if isSuppressed(rule.ID()) {
			applies = "suppressed"
		}

		logger.Info(rule.ID()+"/"+rule.Name(),
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldNested, applies,
			logging.FieldTags, strings.Join(rule.Tags(), ","),
			logging.FieldDescription, rule.Description(),
		)
	}

	return nil
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Tags:        rule.Tags(),
			Nested:      !isSuppressed(rule.ID()),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return nil
}

func isSuppressed(ruleID string) bool {
	return slices.Contains(nested.SuppressedRules, ruleID)
}
