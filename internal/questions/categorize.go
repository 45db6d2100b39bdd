package questions

import (
	"sort"
	"strings"
)

// defaultKeywords maps each category to the substrings that claim a
// question for it. Matching is case-insensitive against the full question
// text; the category order of All() decides ties.
var defaultKeywords = map[Category][]string{
	Coding: {
		"algorithm", "data structure", "array", "string", "linked list", "tree", "graph",
		"dp", "dynamic programming", "recursion", "sorting", "searching", "leetcode",
		"coding problem", "programming", "implement", "write code", "solve", "hanoi",
		"scramble", "combination", "walls and gates", "corona virus", "prime numbers",
		"dfs", "bfs", "misplaced employees", "password", "interleaved", "binary search",
		"two sum", "palindrome", "subset", "backtracking", "coin change", "josephus",
	},
	Technical: {
		"javascript", "python", "java", "sql", "database", "mysql", "mongodb",
		"react", "node", "express", "aws", "s3", "linux", "security", "json",
		"oops", "oop", "dbms", "operating system", "design pattern", "architecture",
		"tech stack", "framework", "api", "rest", "microservices", "scalability",
		"mvc", "dependency injection", "caching", "load balancing",
	},
	SQL: {
		"sql query", "database query", "join", "inner join", "outer join",
		"select statement", "where clause", "group by", "order by", "having",
		"subquery", "stored procedure", "trigger", "index", "normalization",
		"second highest salary", "nth highest", "duplicate records",
	},
	Behavioral: {
		"tell me about yourself", "why", "experience", "project", "challenge",
		"team", "conflict", "leadership", "strength", "weakness", "goal",
		"motivation", "difficult situation", "achievement", "failure",
		"time management", "problem solving", "communication",
	},
	HR: {
		"salary", "notice period", "why company", "why leaving", "career",
		"company", "role", "expectations", "growth", "future", "relocate",
		"benefits", "work life balance", "long term goals",
	},
	SystemDesign: {
		"design", "architecture", "system", "scale", "scalability",
		"high availability", "load balancer", "database design",
		"microservices", "distributed system", "chat application",
		"notification system", "url shortener",
	},
	Project: {
		"previous project", "last project", "current project", "project experience",
		"project architecture", "project challenges", "technologies used",
		"project timeline", "project team", "project outcome",
	},
}

// Categorizer assigns each question to exactly one category by keyword
// membership, first match wins. Questions matching nothing land in the
// Fallback category.
type Categorizer struct {
	Keywords map[Category][]string
	Fallback Category
}

// NewCategorizer returns a Categorizer with the fixed keyword tables and
// the documented technical fallback.
func NewCategorizer() Categorizer {
	return Categorizer{Keywords: defaultKeywords, Fallback: Technical}
}

// Categorize buckets the given questions. Each category's list is sorted
// lexicographically so output is deterministic regardless of input order.
func (c Categorizer) Categorize(qs []string) map[Category][]string {
	out := make(map[Category][]string, len(c.Keywords))
	for _, cat := range All() {
		out[cat] = []string{}
	}
	for _, q := range qs {
		cat := c.categoryOf(q)
		out[cat] = append(out[cat], q)
	}
	for cat := range out {
		sort.Strings(out[cat])
	}
	return out
}

// categoryOf scans categories in priority order and returns the first whose
// keyword list substring-matches the lower-cased question.
func (c Categorizer) categoryOf(q string) Category {
	lower := strings.ToLower(q)
	for _, cat := range All() {
		for _, kw := range c.Keywords[cat] {
			if strings.Contains(lower, kw) {
				return cat
			}
		}
	}
	return c.Fallback
}

// KeywordsFor exposes a category's keyword list for read-only use by the
// statistics pass.
func (c Categorizer) KeywordsFor(cat Category) []string {
	return c.Keywords[cat]
}
