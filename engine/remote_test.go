package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteInvokerRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var st State
		require.NoError(t, json.NewDecoder(r.Body).Decode(&st))
		assert.Equal(t, "distributed tracing", st.Topic)
		assert.Equal(t, 7, st.RecencyDays)

		st.Mode = "research"
		st.Plan = map[string]any{"blog_title": "Tracing 101"}
		st.Evidence = []any{map[string]any{"title": "spec", "url": "https://example.com"}}
		st.Final = "# Tracing 101\ntext"
		_ = json.NewEncoder(w).Encode(st)
	}))
	defer ts.Close()

	inv, err := NewRemoteInvoker(ts.URL, nil)
	require.NoError(t, err)

	out, err := inv.Invoke(context.Background(), NewState("distributed tracing", "2024-05-01"))
	require.NoError(t, err)

	assert.Equal(t, "research", out.Mode)
	assert.Equal(t, "# Tracing 101\ntext", out.Final)

	// Plan and evidence come back as plain maps; the extractor owns them.
	plan := ExtractPlan(out.Plan)
	require.NotNil(t, plan)
	assert.Equal(t, "Tracing 101", plan.BlogTitle)
	require.Len(t, ExtractEvidence(out.Evidence), 1)
}

func TestRemoteInvokerNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine exploded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	inv, err := NewRemoteInvoker(ts.URL, nil)
	require.NoError(t, err)

	_, err = inv.Invoke(context.Background(), NewState("anything", ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "engine exploded")
}

func TestRemoteInvokerRequiresURL(t *testing.T) {
	_, err := NewRemoteInvoker("", nil)
	assert.Error(t, err)
}
