package infer

import (
	"fmt"
	"strings"

	"github.com/prepforge/interviewharvest/internal/review"
)

const systemMessage = "You are an expert interview analyst. Respond with strict JSON only, no narration. The JSON schema is an object whose keys are coding_questions, technical_questions, sql_questions, behavioral_questions, hr_questions, system_design_questions, project_questions, each mapping to an array of strings."

// buildPrompt serializes a chunk of records into the extraction instruction.
// Record order in the prompt matches input order.
func buildPrompt(records []review.Record, chunkNum int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== CHUNK %d INTERVIEWS ===\n\n", chunkNum)
	for i, rec := range records {
		fmt.Fprintf(&sb, "--- INTERVIEW %d ---\n", i+1)
		fmt.Fprintf(&sb, "Position: %s\n", rec.Position)
		fmt.Fprintf(&sb, "Experience: %s\n", rec.Experience)
		fmt.Fprintf(&sb, "Difficulty: %s\n", rec.Difficulty)
		fmt.Fprintf(&sb, "Outcome: %s\n", rec.Outcome)
		fmt.Fprintf(&sb, "Content: %s\n\n", rec.RawText)
	}

	sb.WriteString("Extract specific, actionable interview questions from these interview reviews.\n\n")
	sb.WriteString("EXTRACTION REQUIREMENTS:\n")
	sb.WriteString("1. Extract ONLY actual questions that were asked during interviews\n")
	sb.WriteString("2. Focus on specific, actionable questions candidates can prepare for\n")
	sb.WriteString("3. Categorize questions accurately\n")
	sb.WriteString("4. Include context when helpful (e.g., \"for 2+ years experience\")\n")
	sb.WriteString("5. Avoid generic statements - focus on concrete questions\n\n")
	sb.WriteString("CATEGORIES:\n")
	sb.WriteString("- coding_questions: programming problems, algorithms, data structures, coding challenges\n")
	sb.WriteString("- technical_questions: technology-specific questions (JavaScript, frameworks, databases, etc.)\n")
	sb.WriteString("- sql_questions: database queries, SQL-specific problems\n")
	sb.WriteString("- behavioral_questions: personal experience, soft skills, situational questions\n")
	sb.WriteString("- hr_questions: company-specific, salary, notice period, career goals\n")
	sb.WriteString("- system_design_questions: architecture, scalability, design problems\n")
	sb.WriteString("- project_questions: questions about previous projects, technical decisions\n\n")
	sb.WriteString("Return a single JSON object keyed by the category names above, each value an array of question strings. Only include clear, specific, interview-ready questions; quality over quantity.")

	return sb.String()
}
