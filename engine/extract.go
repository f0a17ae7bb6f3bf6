package engine

// Result normalization.
//
// The engine contract is not strictly typed: plan and evidence values come
// back either as typed records (which expose AsMap) or as plain keyed maps,
// typically after a JSON round trip through a remote engine. Extraction
// probes the AsMap capability first, falls back to direct map access, and
// defaults every field independently — a record missing one field keeps all
// the others.

// asMap normalizes one engine record to a keyed map. The second return is
// false when the value is neither a Mapper nor a map, i.e. effectively
// absent.
func asMap(v any) (map[string]any, bool) {
	switch rec := v.(type) {
	case nil:
		return nil, false
	case Mapper:
		return rec.AsMap(), true
	case map[string]any:
		return rec, true
	default:
		return nil, false
	}
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// getInt tolerates the two integer encodings seen in practice: native ints
// from in-process records and float64 from decoded JSON.
func getInt(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func getBool(m map[string]any, key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return false
}

func getStringList(m map[string]any, key string) []string {
	out := []string{}
	switch list := m[key].(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// getOptString distinguishes "absent" from "present but empty": optional
// evidence fields serialize as null when the engine never set them.
func getOptString(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

// ExtractPlan normalizes the engine's plan value into a typed Plan.
// A nil or unrecognizable value yields nil, meaning the engine produced no
// usable plan.
func ExtractPlan(v any) *Plan {
	m, ok := asMap(v)
	if !ok {
		return nil
	}

	tasks := []Task{}
	switch rawTasks := m["tasks"].(type) {
	case []any:
		for _, rt := range rawTasks {
			if tm, ok := asMap(rt); ok {
				tasks = append(tasks, extractTask(tm))
			}
		}
	case []Task:
		tasks = append(tasks, rawTasks...)
	}

	return &Plan{
		BlogTitle:   getString(m, "blog_title"),
		Audience:    getString(m, "audience"),
		Tone:        getString(m, "tone"),
		BlogKind:    getString(m, "blog_kind"),
		Constraints: getStringList(m, "constraints"),
		Tasks:       tasks,
	}
}

func extractTask(m map[string]any) Task {
	return Task{
		ID:                getInt(m, "id"),
		Title:             getString(m, "title"),
		Goal:              getString(m, "goal"),
		TargetWords:       getInt(m, "target_words"),
		RequiresResearch:  getBool(m, "requires_research"),
		RequiresCitations: getBool(m, "requires_citations"),
		RequiresCode:      getBool(m, "requires_code"),
		Tags:              getStringList(m, "tags"),
		Bullets:           getStringList(m, "bullets"),
	}
}

// ExtractEvidence normalizes the engine's evidence list. Items that are
// neither records nor maps are dropped; recognizable items always yield an
// entry even when most fields are missing.
func ExtractEvidence(items []any) []EvidenceItem {
	out := []EvidenceItem{}
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			continue
		}
		out = append(out, EvidenceItem{
			Title:       getString(m, "title"),
			URL:         getString(m, "url"),
			PublishedAt: getOptString(m, "published_at"),
			Snippet:     getOptString(m, "snippet"),
			Source:      getOptString(m, "source"),
		})
	}
	return out
}

// FinalMarkdown picks the article text from a finished state: the final
// field when non-empty, otherwise the merged draft. First non-empty wins;
// the two are never concatenated.
func FinalMarkdown(st State) string {
	if st.Final != "" {
		return st.Final
	}
	return st.MergedMD
}

// ImageSpecs returns the state's image specs with a non-nil default so the
// response always carries a list.
func ImageSpecs(st State) []map[string]any {
	if st.ImageSpecs == nil {
		return []map[string]any{}
	}
	return st.ImageSpecs
}
