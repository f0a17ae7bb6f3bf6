package engine

import (
	"context"
	"fmt"
	"strings"
)

// MockInvoker is a placeholder engine for local runs without model access.
// It fabricates a small deterministic plan and article from the topic.
type MockInvoker struct{}

func (MockInvoker) Invoke(_ context.Context, st State) (State, error) {
	title := strings.TrimSpace(st.Topic)
	if title == "" {
		title = "Untitled Draft"
	}

	plan := Plan{
		BlogTitle:   title,
		Audience:    "general readers",
		Tone:        "informal",
		BlogKind:    "overview",
		Constraints: []string{},
		Tasks: []Task{
			{ID: 1, Title: "Introduction", Goal: "set the scene", TargetWords: 150, Tags: []string{}, Bullets: []string{}},
			{ID: 2, Title: "Details", Goal: "cover the topic", TargetWords: 400, Tags: []string{}, Bullets: []string{}},
		},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("## Introduction\n\nThis is a generated placeholder article.\n\n")
	fmt.Fprintf(&sb, "## Details\n\nTopic under discussion: %s (as of %s).\n", st.Topic, st.AsOf)

	st.Mode = "mock"
	st.Plan = plan
	st.Sections = []string{"Introduction", "Details"}
	st.MergedMD = sb.String()
	st.Final = sb.String()
	return st, nil
}
