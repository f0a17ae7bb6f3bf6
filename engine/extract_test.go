package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() Plan {
	return Plan{
		BlogTitle:   "Understanding Raft",
		Audience:    "backend engineers",
		Tone:        "practical",
		BlogKind:    "deep dive",
		Constraints: []string{"no fluff"},
		Tasks: []Task{
			{
				ID:                1,
				Title:             "Leader Election",
				Goal:              "explain terms and votes",
				TargetWords:       600,
				RequiresResearch:  true,
				RequiresCitations: true,
				RequiresCode:      false,
				Tags:              []string{"consensus"},
				Bullets:           []string{"terms", "timeouts"},
			},
		},
	}
}

// jsonRoundTrip turns a typed value into the plain keyed maps a remote
// engine would produce.
func jsonRoundTrip(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestExtractPlanTypedAndMapShapesAgree(t *testing.T) {
	typed := ExtractPlan(samplePlan())
	mapped := ExtractPlan(jsonRoundTrip(t, samplePlan()))

	require.NotNil(t, typed)
	require.NotNil(t, mapped)
	assert.Equal(t, typed, mapped)
	assert.Equal(t, samplePlan(), *typed)
}

func TestExtractPlanAbsent(t *testing.T) {
	assert.Nil(t, ExtractPlan(nil))
	assert.Nil(t, ExtractPlan("not a record"))
	assert.Nil(t, ExtractPlan(42))
}

func TestExtractPlanDefaultsPerField(t *testing.T) {
	// A record missing fields keeps the fields it has; the rest default
	// independently.
	plan := ExtractPlan(map[string]any{
		"blog_title": "Only A Title",
		"tasks": []any{
			map[string]any{"title": "Intro", "target_words": float64(250)},
		},
	})
	require.NotNil(t, plan)

	assert.Equal(t, "Only A Title", plan.BlogTitle)
	assert.Equal(t, "", plan.Audience)
	assert.Equal(t, "", plan.Tone)
	assert.Equal(t, "", plan.BlogKind)
	assert.Equal(t, []string{}, plan.Constraints)

	require.Len(t, plan.Tasks, 1)
	task := plan.Tasks[0]
	assert.Equal(t, 0, task.ID)
	assert.Equal(t, "Intro", task.Title)
	assert.Equal(t, "", task.Goal)
	assert.Equal(t, 250, task.TargetWords)
	assert.False(t, task.RequiresResearch)
	assert.Equal(t, []string{}, task.Tags)
	assert.Equal(t, []string{}, task.Bullets)
}

func TestExtractPlanTolerantOfWrongTypes(t *testing.T) {
	plan := ExtractPlan(map[string]any{
		"blog_title":  123,              // wrong type, defaults
		"audience":    "ops teams",      // kept
		"constraints": "not a list",     // wrong type, defaults
		"tasks":       map[string]any{}, // wrong type, defaults
	})
	require.NotNil(t, plan)
	assert.Equal(t, "", plan.BlogTitle)
	assert.Equal(t, "ops teams", plan.Audience)
	assert.Equal(t, []string{}, plan.Constraints)
	assert.Equal(t, []Task{}, plan.Tasks)
}

func TestExtractEvidenceBothShapes(t *testing.T) {
	published := "2024-02-01"
	typedItem := EvidenceItem{Title: "Raft paper", URL: "https://example.com/raft", PublishedAt: &published}

	fromTyped := ExtractEvidence([]any{typedItem})
	fromMaps := ExtractEvidence(jsonRoundTrip(t, []any{typedItem}).([]any))

	assert.Equal(t, fromTyped, fromMaps)
	require.Len(t, fromTyped, 1)
	assert.Equal(t, "Raft paper", fromTyped[0].Title)
	require.NotNil(t, fromTyped[0].PublishedAt)
	assert.Equal(t, "2024-02-01", *fromTyped[0].PublishedAt)
	assert.Nil(t, fromTyped[0].Snippet)
	assert.Nil(t, fromTyped[0].Source)
}

func TestExtractEvidenceSkipsUnrecognizable(t *testing.T) {
	items := ExtractEvidence([]any{
		"just a string",
		nil,
		map[string]any{"title": "kept", "url": "https://kept.example"},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Title)
}

func TestExtractEvidenceEmptyInput(t *testing.T) {
	assert.Equal(t, []EvidenceItem{}, ExtractEvidence(nil))
	assert.Equal(t, []EvidenceItem{}, ExtractEvidence([]any{}))
}

func TestFinalMarkdownFirstNonEmptyWins(t *testing.T) {
	st := State{Final: "final text", MergedMD: "merged text"}
	assert.Equal(t, "final text", FinalMarkdown(st))

	st = State{Final: "", MergedMD: "merged text"}
	assert.Equal(t, "merged text", FinalMarkdown(st))

	st = State{}
	assert.Equal(t, "", FinalMarkdown(st))
}

func TestImageSpecsNeverNil(t *testing.T) {
	assert.Equal(t, []map[string]any{}, ImageSpecs(State{}))

	specs := []map[string]any{{"prompt": "diagram"}}
	assert.Equal(t, specs, ImageSpecs(State{ImageSpecs: specs}))
}
