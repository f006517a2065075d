package hub

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// ExtrasReport summarizes the author extras found across submissions.
type ExtrasReport struct {
	TotalAuthors      int                   `json:"total_authors"`
	AuthorsWithExtras int                   `json:"authors_with_extras"`
	AuthorsWithoutROR int                   `json:"authors_without_ror"`
	FieldFrequency    map[string]FieldStats `json:"field_frequency"`
	TypeInconsistency map[string][]string   `json:"type_inconsistency,omitempty"`
	Frequent          []string              `json:"frequent,omitempty"`
}

// FieldStats tracks statistics for a single extras field.
type FieldStats struct {
	Count      int            `json:"count"`
	Percentage float64        `json:"percentage"`
	Types      map[string]int `json:"types"`
	Examples   []string       `json:"examples,omitempty"`
}

// AuditExtras counts extras keys over every author. Keys carried by at
// least threshold percent of authors are listed in Frequent, most common
// first.
func AuditExtras(subs []*Submission, threshold float64, maxExamples int) *ExtrasReport {
	report := &ExtrasReport{
		FieldFrequency: make(map[string]FieldStats),
	}

	for _, s := range subs {
		for _, a := range SortedAuthors(s) {
			report.TotalAuthors++
			if RORID(a) == "" {
				report.AuthorsWithoutROR++
			}
			if a.Extra == nil || len(a.Extra.Fields) == 0 {
				continue
			}
			report.AuthorsWithExtras++

			for key, v := range a.Extra.Fields {
				stats, ok := report.FieldFrequency[key]
				if !ok {
					stats = FieldStats{Types: make(map[string]int)}
				}
				stats.Count++
				stats.Types[valueType(v)]++
				if len(stats.Examples) < maxExamples {
					if ex := valueExample(v); ex != "" && len(ex) < 100 && !contains(stats.Examples, ex) {
						stats.Examples = append(stats.Examples, ex)
					}
				}
				report.FieldFrequency[key] = stats
			}
		}
	}

	inconsistent := make(map[string][]string)
	for key, stats := range report.FieldFrequency {
		if report.TotalAuthors > 0 {
			stats.Percentage = float64(stats.Count) / float64(report.TotalAuthors) * 100
		}
		report.FieldFrequency[key] = stats

		if stats.Percentage >= threshold {
			report.Frequent = append(report.Frequent, key)
		}
		if len(stats.Types) > 1 {
			types := make([]string, 0, len(stats.Types))
			for t := range stats.Types {
				types = append(types, t)
			}
			sort.Strings(types)
			inconsistent[key] = types
		}
	}
	if len(inconsistent) > 0 {
		report.TypeInconsistency = inconsistent
	}

	sort.Slice(report.Frequent, func(i, j int) bool {
		ci := report.FieldFrequency[report.Frequent[i]].Count
		cj := report.FieldFrequency[report.Frequent[j]].Count
		if ci != cj {
			return ci > cj
		}
		return report.Frequent[i] < report.Frequent[j]
	})

	return report
}

func valueType(v *structpb.Value) string {
	switch v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return "null"
	case *structpb.Value_NumberValue:
		return "number"
	case *structpb.Value_StringValue:
		return "string"
	case *structpb.Value_BoolValue:
		return "bool"
	case *structpb.Value_StructValue:
		return "object"
	case *structpb.Value_ListValue:
		return "array"
	default:
		return "unknown"
	}
}

func valueExample(v *structpb.Value) string {
	switch x := v.AsInterface().(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64, bool:
		return fmt.Sprintf("%v", x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
