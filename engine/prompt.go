package engine

import (
	"fmt"
	"strings"
)

// Prompt is one message set sent to the model.
type Prompt struct {
	System string
	User   string
}

// BuildPlanPrompt asks the model for a structured article plan as JSON.
func BuildPlanPrompt(st State) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an editorial planner for technical blog posts.\n")
	sb.WriteString("Respond with a single JSON object and nothing else, no prose, no code fences.\n")
	sb.WriteString("Schema:\n")
	sb.WriteString(`{"blog_title": string, "audience": string, "tone": string, "blog_kind": string,` + "\n")
	sb.WriteString(` "constraints": [string], "tasks": [{"id": int, "title": string, "goal": string,` + "\n")
	sb.WriteString(` "target_words": int, "requires_research": bool, "requires_citations": bool,` + "\n")
	sb.WriteString(` "requires_code": bool, "tags": [string], "bullets": [string]}]}` + "\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- 3 to 6 tasks, each a self-contained section.\n")
	sb.WriteString("- blog_title must be a concrete, human-readable headline.\n")

	user := fmt.Sprintf("Topic: %s\nAs of: %s\nProduce the plan JSON.", st.Topic, st.AsOf)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}

// BuildWritePrompt asks the model for the full article following a plan.
func BuildWritePrompt(st State, plan Plan) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional technical writer. Output Markdown only, no extra commentary.\n")
	sb.WriteString("- Start with a single level-1 heading carrying the article title.\n")
	sb.WriteString("- Follow the section plan in order, one level-2 heading per section.\n")
	if plan.Tone != "" {
		sb.WriteString(fmt.Sprintf("- Tone: %s.\n", plan.Tone))
	}
	if plan.Audience != "" {
		sb.WriteString(fmt.Sprintf("- Audience: %s.\n", plan.Audience))
	}
	for _, c := range plan.Constraints {
		sb.WriteString(fmt.Sprintf("- %s\n", c))
	}

	var user strings.Builder
	fmt.Fprintf(&user, "Title: %s\nTopic: %s\nSections:\n", plan.BlogTitle, st.Topic)
	for i, t := range plan.Tasks {
		fmt.Fprintf(&user, "%d. %s — %s", i+1, t.Title, t.Goal)
		if t.TargetWords > 0 {
			fmt.Fprintf(&user, " (~%d words)", t.TargetWords)
		}
		user.WriteString("\n")
		for _, b := range t.Bullets {
			fmt.Fprintf(&user, "   - %s\n", b)
		}
	}
	user.WriteString("Write the complete article now.")

	return Prompt{
		System: sb.String(),
		User:   user.String(),
	}
}
