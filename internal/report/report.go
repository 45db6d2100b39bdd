// Package report renders an analysis result to disk as JSON, plain text,
// or a PDF study sheet. The result is treated as read-only input; nothing
// here reaches back into the pipeline.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/prepforge/interviewharvest/internal/aggregate"
	"github.com/prepforge/interviewharvest/internal/questions"
)

// sectionTitles maps categories to their report headings, in display order.
var sectionTitles = []struct {
	cat   questions.Category
	title string
}{
	{questions.Coding, "CODING QUESTIONS"},
	{questions.Technical, "TECHNICAL QUESTIONS"},
	{questions.SQL, "SQL QUESTIONS"},
	{questions.Behavioral, "BEHAVIORAL QUESTIONS"},
	{questions.HR, "HR QUESTIONS"},
	{questions.SystemDesign, "SYSTEM DESIGN QUESTIONS"},
	{questions.Project, "PROJECT QUESTIONS"},
}

// TimestampedName builds the conventional output filename, e.g.
// "analysis_20260102_150405.json".
func TimestampedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}

// WriteJSON writes the full result as indented JSON.
func WriteJSON(res aggregate.Result, path string) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteText writes the human-readable report: category sections, analysis
// statistics, and the study plan.
func WriteText(res aggregate.Result, path string) error {
	var sb strings.Builder

	sb.WriteString("INTERVIEW ANALYSIS RESULTS\n")
	sb.WriteString(strings.Repeat("=", 45) + "\n")
	fmt.Fprintf(&sb, "Generated: %s\n", res.Metadata.AnalysisDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Extractor: %s\n", res.Metadata.ExtractorType)
	fmt.Fprintf(&sb, "Total interviews: %d\n", res.Metadata.TotalInterviews)
	fmt.Fprintf(&sb, "Total questions: %d\n\n", res.Metadata.TotalQuestionsExtracted)

	for _, sec := range sectionTitles {
		qs := res.Questions[sec.cat.Key()]
		if len(qs) == 0 {
			continue
		}
		sb.WriteString(sec.title + "\n")
		sb.WriteString(strings.Repeat("=", len(sec.title)) + "\n")
		for i, q := range qs {
			fmt.Fprintf(&sb, "%2d. %s\n", i+1, q)
		}
		fmt.Fprintf(&sb, "\nTotal: %d questions\n\n", len(qs))
	}

	sb.WriteString("ANALYSIS STATISTICS\n")
	sb.WriteString(strings.Repeat("=", 25) + "\n")
	sb.WriteString("Top technical topics:\n")
	ordered := aggregate.TopTopicsOrdered(res.Statistics.TopTechnicalTopics)
	if len(ordered) > 5 {
		ordered = ordered[:5]
	}
	for _, topic := range ordered {
		fmt.Fprintf(&sb, "  - %s: %d mentions\n", topic, res.Statistics.TopTechnicalTopics[topic])
	}
	sb.WriteString("\nDifficulty distribution:\n")
	for _, k := range sortedKeys(res.Statistics.DifficultyDistribution) {
		fmt.Fprintf(&sb, "  - %s: %d interviews\n", k, res.Statistics.DifficultyDistribution[k])
	}
	sb.WriteString("\nOutcome distribution:\n")
	for _, k := range sortedKeys(res.Statistics.OutcomeDistribution) {
		fmt.Fprintf(&sb, "  - %s: %d interviews\n", k, res.Statistics.OutcomeDistribution[k])
	}

	sb.WriteString("\nRECOMMENDED STUDY PLAN\n")
	sb.WriteString(strings.Repeat("=", 30) + "\n")
	sb.WriteString("High priority:\n")
	for _, item := range res.StudyPlan.HighPriority {
		fmt.Fprintf(&sb, "  - %s\n", item)
	}
	sb.WriteString("\nMedium priority:\n")
	for _, item := range res.StudyPlan.MediumPriority {
		fmt.Fprintf(&sb, "  - %s\n", item)
	}
	sb.WriteString("\nLow priority:\n")
	for _, item := range res.StudyPlan.LowPriority {
		fmt.Fprintf(&sb, "  - %s\n", item)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
