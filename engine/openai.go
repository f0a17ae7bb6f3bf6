package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Settings carries the model configuration for LLM-backed invokers.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// OpenAIInvoker drives the generation workflow through an OpenAI-compatible
// chat-completion endpoint: one planning completion that yields a JSON plan,
// then one writing completion that yields the article. It serves as the
// in-process engine collaborator; research stages are not performed, so the
// evidence list stays empty and mode is reported as "direct".
type OpenAIInvoker struct {
	Model string
	Opts  []option.RequestOption
}

// NewOpenAIInvoker validates settings and builds the invoker. DeepSeek and
// other OpenAI-compatible gateways work through BaseURL.
func NewOpenAIInvoker(cfg *Settings) (*OpenAIInvoker, error) {
	if cfg == nil {
		return nil, errors.New("engine settings are nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key missing; provide engine.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("engine model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIInvoker{Model: cfg.Model, Opts: opts}, nil
}

// Invoke runs the plan and write steps and returns the enriched state.
func (o *OpenAIInvoker) Invoke(ctx context.Context, st State) (State, error) {
	rawPlan, err := o.complete(ctx, BuildPlanPrompt(st))
	if err != nil {
		return State{}, fmt.Errorf("plan step: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal([]byte(StripFence(rawPlan)), &plan); err != nil {
		return State{}, fmt.Errorf("plan step: model returned invalid plan JSON: %w", err)
	}
	if plan.BlogTitle == "" {
		plan.BlogTitle = st.Topic
	}

	rawArticle, err := o.complete(ctx, BuildWritePrompt(st, plan))
	if err != nil {
		return State{}, fmt.Errorf("write step: %w", err)
	}
	md := StripFence(rawArticle)
	if md == "" {
		return State{}, errors.New("write step: model returned empty markdown")
	}
	md = EnsureHeading(md, plan.BlogTitle)

	sections := make([]string, 0, len(plan.Tasks))
	for _, t := range plan.Tasks {
		sections = append(sections, t.Title)
	}

	st.Mode = "direct"
	st.Plan = plan
	st.Sections = sections
	st.MergedMD = md
	st.Final = md
	return st, nil
}

func (o *OpenAIInvoker) complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
