package engine

// State is the mutable bag exchanged with the workflow engine during one
// generation call. Every field the engine expects is present and JSON-tagged
// without omitempty, so a serialized state never carries an absent key.
//
// Plan and Evidence are deliberately loose: depending on the engine, they
// come back either as typed records or as plain keyed maps. The extractor
// normalizes both shapes (see extract.go).
type State struct {
	Topic              string           `json:"topic"`
	Mode               string           `json:"mode"`
	NeedsResearch      bool             `json:"needs_research"`
	Queries            []string         `json:"queries"`
	Evidence           []any            `json:"evidence"`
	Plan               any              `json:"plan"`
	AsOf               string           `json:"as_of"`
	RecencyDays        int              `json:"recency_days"`
	Sections           []string         `json:"sections"`
	MergedMD           string           `json:"merged_md"`
	MDWithPlaceholders string           `json:"md_with_placeholders"`
	ImageSpecs         []map[string]any `json:"image_specs"`
	Final              string           `json:"final"`
}

// Mapper is the "convert to mapping" capability a structured engine record
// may expose. Typed records produced in-process implement it so they travel
// through the same extraction path as JSON-decoded maps.
type Mapper interface {
	AsMap() map[string]any
}

// Plan is the article plan produced by the engine's planning stage.
type Plan struct {
	BlogTitle   string   `json:"blog_title"`
	Audience    string   `json:"audience"`
	Tone        string   `json:"tone"`
	BlogKind    string   `json:"blog_kind"`
	Constraints []string `json:"constraints"`
	Tasks       []Task   `json:"tasks"`
}

// Task is one section-writing assignment inside a Plan.
type Task struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	Goal              string   `json:"goal"`
	TargetWords       int      `json:"target_words"`
	RequiresResearch  bool     `json:"requires_research"`
	RequiresCitations bool     `json:"requires_citations"`
	RequiresCode      bool     `json:"requires_code"`
	Tags              []string `json:"tags"`
	Bullets           []string `json:"bullets"`
}

// EvidenceItem is one piece of supporting evidence gathered during research.
// The pointer fields serialize as null when the engine did not supply them.
type EvidenceItem struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	PublishedAt *string `json:"published_at"`
	Snippet     *string `json:"snippet"`
	Source      *string `json:"source"`
}

func (p Plan) AsMap() map[string]any {
	tasks := make([]any, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, t.AsMap())
	}
	return map[string]any{
		"blog_title":  p.BlogTitle,
		"audience":    p.Audience,
		"tone":        p.Tone,
		"blog_kind":   p.BlogKind,
		"constraints": toAnyList(p.Constraints),
		"tasks":       tasks,
	}
}

func (t Task) AsMap() map[string]any {
	return map[string]any{
		"id":                 t.ID,
		"title":              t.Title,
		"goal":               t.Goal,
		"target_words":       t.TargetWords,
		"requires_research":  t.RequiresResearch,
		"requires_citations": t.RequiresCitations,
		"requires_code":      t.RequiresCode,
		"tags":               toAnyList(t.Tags),
		"bullets":            toAnyList(t.Bullets),
	}
}

func (e EvidenceItem) AsMap() map[string]any {
	m := map[string]any{
		"title": e.Title,
		"url":   e.URL,
	}
	if e.PublishedAt != nil {
		m["published_at"] = *e.PublishedAt
	}
	if e.Snippet != nil {
		m["snippet"] = *e.Snippet
	}
	if e.Source != nil {
		m["source"] = *e.Source
	}
	return m
}

func toAnyList(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}
