package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// RemoteInvoker delegates generation to a workflow engine running behind an
// HTTP endpoint: the state goes out as JSON and comes back enriched. Plan
// and evidence arrive as plain keyed maps, which the extractor handles.
type RemoteInvoker struct {
	URL    string
	Client *http.Client
}

// NewRemoteInvoker builds a remote invoker. The client has no timeout on
// purpose: generation may run for minutes and cancellation is the caller's
// business via ctx.
func NewRemoteInvoker(url string, client *http.Client) (*RemoteInvoker, error) {
	if url == "" {
		return nil, errors.New("remote engine url is required")
	}
	if client == nil {
		client = &http.Client{}
	}
	return &RemoteInvoker{URL: url, Client: client}, nil
}

func (r *RemoteInvoker) Invoke(ctx context.Context, st State) (State, error) {
	body, err := json.Marshal(st)
	if err != nil {
		return State{}, fmt.Errorf("encode state: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(body))
	if err != nil {
		return State{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return State{}, fmt.Errorf("invoke remote engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return State{}, fmt.Errorf("remote engine returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	var out State
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return State{}, fmt.Errorf("decode engine result: %w", err)
	}
	return out, nil
}
