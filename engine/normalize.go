package engine

import (
	"strings"
	"time"
)

// defaultRecencyDays bounds how far back research should look when the
// caller gives no date.
const defaultRecencyDays = 7

// NewState builds the canonical engine input for one generation call.
// The topic is trimmed but otherwise passed through as-is; a blank asOf
// becomes today's calendar date in ISO-8601 form. Every field is explicitly
// defaulted (non-nil slices, empty strings) so the engine never observes an
// absent key, including after a round trip through JSON.
func NewState(topic, asOf string) State {
	if strings.TrimSpace(asOf) == "" {
		asOf = time.Now().Format("2006-01-02")
	}
	return State{
		Topic:              strings.TrimSpace(topic),
		Mode:               "",
		NeedsResearch:      false,
		Queries:            []string{},
		Evidence:           []any{},
		Plan:               nil,
		AsOf:               asOf,
		RecencyDays:        defaultRecencyDays,
		Sections:           []string{},
		MergedMD:           "",
		MDWithPlaceholders: "",
		ImageSpecs:         []map[string]any{},
		Final:              "",
	}
}
