// Package studyplan turns a categorized question set into preparation
// guidance: fixed priority buckets plus per-category practice counts capped
// at a sensible session size.
package studyplan

import "github.com/prepforge/interviewharvest/internal/questions"

// Plan is the study guidance attached to an analysis result.
type Plan struct {
	HighPriority        []string       `json:"high_priority"`
	MediumPriority      []string       `json:"medium_priority"`
	LowPriority         []string       `json:"low_priority"`
	RecommendedPractice map[string]int `json:"recommended_practice"`
}

// practiceCaps bounds how many questions per category a candidate should
// realistically drill.
var practiceCaps = map[questions.Category]int{
	questions.Coding:     20,
	questions.Technical:  15,
	questions.Behavioral: 10,
}

// Generate builds the plan from the categorized questions.
func Generate(categorized map[questions.Category][]string) Plan {
	practice := make(map[string]int, len(practiceCaps))
	for cat, limit := range practiceCaps {
		n := len(categorized[cat])
		if n > limit {
			n = limit
		}
		practice[cat.Key()] = n
	}
	return Plan{
		HighPriority: []string{
			"Data Structures & Algorithms",
			"JavaScript fundamentals",
			"SQL queries and database concepts",
			"Previous project discussions",
		},
		MediumPriority: []string{
			"System design basics",
			"Behavioral question frameworks",
			"Company research",
		},
		LowPriority: []string{
			"Advanced system design",
			"Niche technologies",
			"Complex algorithms",
		},
		RecommendedPractice: practice,
	}
}
