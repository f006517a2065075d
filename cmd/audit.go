package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lepidus/oaswitchboard/hub"
)

var (
	auditThreshold float64
	auditExamples  int
	auditOutput    string
	auditJSON      bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit submission snapshots for data quality issues",
	Long:  `Audit commands help find data the message builder cannot use yet.`,
}

var auditExtrasCmd = &cobra.Command{
	Use:   "extras",
	Short: "Analyze author extras across submissions",
	Long: `Analyzes the extra author data that plugins attach to identify:
- Authors without a ROR id (they yield empty institutions and recipients)
- Keys that appear frequently and may deserve a first-class field
- Inconsistent types across authors (e.g., string vs number)

Example:
  oaswitchboard audit extras -i export.json
  oaswitchboard audit extras -i fixtures.yaml --json --threshold 25`,
	Args: cobra.NoArgs,
	RunE: runAuditExtras,
}

func init() {
	auditCmd.AddCommand(auditExtrasCmd)

	addInputFlags(auditExtrasCmd)
	auditExtrasCmd.Flags().Float64Var(&auditThreshold, "threshold", 50.0, "Percentage threshold for frequent keys")
	auditExtrasCmd.Flags().IntVarP(&auditExamples, "examples", "e", 3, "Number of example values to include")
	auditExtrasCmd.Flags().StringVarP(&auditOutput, "output", "o", "", "Output file (default: stdout)")
	auditExtrasCmd.Flags().BoolVar(&auditJSON, "json", false, "Output as JSON")
}

func runAuditExtras(cmd *cobra.Command, args []string) error {
	subs, err := readSubmissions(formatName, inputFile, stripHTML)
	if err != nil {
		return err
	}

	report := hub.AuditExtras(subs, auditThreshold, auditExamples)

	var output []byte
	if auditJSON {
		output, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
	} else {
		output = []byte(formatExtrasReport(report, auditThreshold))
	}

	if auditOutput != "" {
		return os.WriteFile(auditOutput, output, 0644)
	}

	fmt.Println(string(output))
	return nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func formatExtrasReport(report *hub.ExtrasReport, threshold float64) string {
	var sb strings.Builder

	sb.WriteString("=== Author Extras Audit Report ===\n\n")
	fmt.Fprintf(&sb, "Total authors: %d\n", report.TotalAuthors)
	fmt.Fprintf(&sb, "Authors with extras: %d (%.1f%%)\n",
		report.AuthorsWithExtras, percent(report.AuthorsWithExtras, report.TotalAuthors))
	fmt.Fprintf(&sb, "Authors without ROR id: %d (%.1f%%)\n\n",
		report.AuthorsWithoutROR, percent(report.AuthorsWithoutROR, report.TotalAuthors))

	if len(report.Frequent) > 0 {
		fmt.Fprintf(&sb, "FREQUENT KEYS (at least %.1f%% of authors):\n", threshold)
		for _, key := range report.Frequent {
			stats := report.FieldFrequency[key]
			fmt.Fprintf(&sb, "  • %s: %d authors (%.1f%%)\n", key, stats.Count, stats.Percentage)
		}
		sb.WriteString("\n")
	}

	if len(report.TypeInconsistency) > 0 {
		sb.WriteString("TYPE INCONSISTENCIES (mixed types for same key):\n")
		keys := make([]string, 0, len(report.TypeInconsistency))
		for k := range report.TypeInconsistency {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&sb, "  • %s: %s\n", key, strings.Join(report.TypeInconsistency[key], ", "))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("ALL EXTRAS KEYS BY FREQUENCY:\n")

	type kv struct {
		key   string
		stats hub.FieldStats
	}
	var sorted []kv
	for k, v := range report.FieldFrequency {
		sorted = append(sorted, kv{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].stats.Count != sorted[j].stats.Count {
			return sorted[i].stats.Count > sorted[j].stats.Count
		}
		return sorted[i].key < sorted[j].key
	})

	for _, item := range sorted {
		fmt.Fprintf(&sb, "  %s: %d (%.1f%%)\n", item.key, item.stats.Count, item.stats.Percentage)
		if len(item.stats.Examples) > 0 {
			fmt.Fprintf(&sb, "    examples: %s\n", strings.Join(item.stats.Examples, ", "))
		}
	}

	return sb.String()
}
