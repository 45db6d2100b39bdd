// Package questions implements the shared question pipeline: the closed
// category set, the cleaning/quality/dedup normalizer used by both
// extraction paths, and the keyword categorizer used by the pattern path.
package questions

// Category is one of the seven fixed labels a question can be bucketed into.
// The set is closed; it never grows at runtime.
type Category string

const (
	Coding       Category = "coding"
	Technical    Category = "technical"
	SQL          Category = "sql"
	Behavioral   Category = "behavioral"
	HR           Category = "hr"
	SystemDesign Category = "system_design"
	Project      Category = "project"
)

// All returns the categories in fixed priority order. The categorizer scans
// in this order and the first keyword match wins, so the order is part of
// the contract, not a presentation detail.
func All() []Category {
	return []Category{Coding, Technical, SQL, Behavioral, HR, SystemDesign, Project}
}

// Key is the JSON object key used for this category in inference responses
// and report output, e.g. "coding_questions".
func (c Category) Key() string {
	return string(c) + "_questions"
}

// FromKey maps a JSON key back to its category. The second return is false
// for unexpected keys, which callers ignore per the response contract.
func FromKey(key string) (Category, bool) {
	for _, c := range All() {
		if c.Key() == key {
			return c, true
		}
	}
	return "", false
}
