// Package aggregate assembles the final analysis result: metadata, the
// category map, and derived statistics. Everything here is a pure read over
// already-materialized records and questions; no extraction logic.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/prepforge/interviewharvest/internal/questions"
	"github.com/prepforge/interviewharvest/internal/review"
	"github.com/prepforge/interviewharvest/internal/studyplan"
)

// Metadata describes one analysis run.
type Metadata struct {
	AnalysisDate            time.Time `json:"analysis_date"`
	TotalInterviews         int       `json:"total_interviews"`
	TotalQuestionsExtracted int       `json:"total_questions_extracted"`
	ExtractorType           string    `json:"extractor_type"`
	// Chunk counters are present for the inference path only. Failed chunks
	// are reported separately from processed ones so a chunk that errored is
	// distinguishable from one that legitimately yielded nothing.
	ChunksProcessed int `json:"chunks_processed,omitempty"`
	ChunksFailed    int `json:"chunks_failed,omitempty"`
}

// Statistics are derived counts over raw texts and the category map.
type Statistics struct {
	TopTechnicalTopics     map[string]int `json:"top_technical_topics"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	OutcomeDistribution    map[string]int `json:"outcome_distribution"`
	QuestionsPerCategory   map[string]int `json:"questions_per_category"`
	TotalUniqueQuestions   int            `json:"total_unique_questions"`
}

// Result is the aggregate consumed by reporting and study planning.
// Immutable once returned.
type Result struct {
	Metadata   Metadata            `json:"metadata"`
	Questions  map[string][]string `json:"questions"`
	Statistics Statistics          `json:"statistics"`
	StudyPlan  studyplan.Plan      `json:"study_plan"`
}

// Options selects the extractor identity and chunk counters recorded in
// metadata, plus the keyword list used for topic counting.
type Options struct {
	ExtractorType   string
	ChunksProcessed int
	ChunksFailed    int
	// TopicKeywords are counted across raw texts for the top-topics
	// statistic. Nil falls back to the technical category's keywords.
	TopicKeywords []string
	// TopN bounds the top-topics list. Zero means 10.
	TopN int
}

// Build combines records and the categorized question map into one Result.
func Build(records []review.Record, categorized map[questions.Category][]string, opts Options) Result {
	byKey := make(map[string][]string, len(categorized))
	perCategory := make(map[string]int, len(categorized))
	total := 0
	for _, cat := range questions.All() {
		qs := categorized[cat]
		if qs == nil {
			qs = []string{}
		}
		byKey[cat.Key()] = qs
		perCategory[cat.Key()] = len(qs)
		total += len(qs)
	}

	keywords := opts.TopicKeywords
	if keywords == nil {
		keywords = questions.NewCategorizer().KeywordsFor(questions.Technical)
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = 10
	}

	stats := Statistics{
		TopTechnicalTopics:     topTopics(records, keywords, topN),
		DifficultyDistribution: distribution(records, func(r review.Record) string { return r.Difficulty }),
		OutcomeDistribution:    distribution(records, func(r review.Record) string { return r.Outcome }),
		QuestionsPerCategory:   perCategory,
		TotalUniqueQuestions:   total,
	}

	return Result{
		Metadata: Metadata{
			AnalysisDate:            time.Now(),
			TotalInterviews:         len(records),
			TotalQuestionsExtracted: total,
			ExtractorType:           opts.ExtractorType,
			ChunksProcessed:         opts.ChunksProcessed,
			ChunksFailed:            opts.ChunksFailed,
		},
		Questions:  byKey,
		Statistics: stats,
		StudyPlan:  studyplan.Generate(categorized),
	}
}

// topTopics counts keyword mentions across all raw texts and keeps the N
// most frequent. Ties break alphabetically for deterministic output.
func topTopics(records []review.Record, keywords []string, n int) map[string]int {
	counts := map[string]int{}
	for _, rec := range records {
		text := strings.ToLower(rec.RawText)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				counts[kw]++
			}
		}
	}
	type entry struct {
		topic string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for t, c := range counts {
		entries = append(entries, entry{t, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].topic < entries[j].topic
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.topic] = e.count
	}
	return out
}

func distribution(records []review.Record, field func(review.Record) string) map[string]int {
	out := map[string]int{}
	for _, rec := range records {
		v := field(rec)
		if v == "" {
			v = review.NotSpecified
		}
		out[v]++
	}
	return out
}

// TopTopicsOrdered re-sorts a topic count map for display, most frequent
// first with alphabetical ties.
func TopTopicsOrdered(topics map[string]int) []string {
	out := make([]string, 0, len(topics))
	for t := range topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if topics[out[i]] != topics[out[j]] {
			return topics[out[i]] > topics[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
