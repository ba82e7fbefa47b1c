// ABOUTME: Prompt lifecycle operations: list, create draft, update, publish, mark weak
// ABOUTME: The backend owns the lifecycle; the console refetches the full list after every mutation

package aira

import (
	"context"
	"fmt"
	"net/url"
)

// CreatePromptRequest creates a new draft for a (state, language) pair. The
// backend assigns the next version number.
type CreatePromptRequest struct {
	FSMState string `json:"fsm_state"`
	Language string `json:"language"`
	Text     string `json:"text"`
	Notes    string `json:"notes,omitempty"`
}

// UpdatePromptRequest edits a draft's text. The backend rejects edits to
// active prompts with a 400.
type UpdatePromptRequest struct {
	Text  string `json:"text"`
	Notes string `json:"notes,omitempty"`
}

// MarkWeakRequest flags a prompt weak and supplies its replacement draft
// text. One backend call performs both; the console never splits them.
type MarkWeakRequest struct {
	ReplacementText string `json:"replacement_text"`
	Notes           string `json:"notes,omitempty"`
}

// ListPrompts fetches prompts, optionally filtered by state, language, and
// status.
func (c *Client) ListPrompts(ctx context.Context, filters PromptFilters) ([]Prompt, error) {
	q := url.Values{}
	if filters.FSMState != "" {
		q.Set("fsm_state", filters.FSMState)
	}
	if filters.Language != "" {
		q.Set("language", filters.Language)
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}

	var prompts []Prompt
	err := c.get(ctx, "/api/prompts", q, &prompts)
	if err != nil {
		if c.allowMock("prompts.list", err) {
			return mockPrompts(filters), nil
		}
		return nil, err
	}
	return prompts, nil
}

// CreatePrompt creates a new draft prompt.
func (c *Client) CreatePrompt(ctx context.Context, req CreatePromptRequest) (*Prompt, error) {
	if req.FSMState == "" || req.Language == "" {
		return nil, fmt.Errorf("fsm state and language required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("prompt text required")
	}
	var prompt Prompt
	if err := c.post(ctx, "/api/prompts", req, &prompt); err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}
	return &prompt, nil
}

// UpdatePrompt replaces a draft prompt's text and notes.
func (c *Client) UpdatePrompt(ctx context.Context, promptID string, req UpdatePromptRequest) (*Prompt, error) {
	if promptID == "" {
		return nil, fmt.Errorf("prompt id required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("prompt text required")
	}
	var prompt Prompt
	if err := c.put(ctx, "/api/prompts/"+url.PathEscape(promptID), req, &prompt); err != nil {
		return nil, fmt.Errorf("update prompt: %w", err)
	}
	return &prompt, nil
}

// MarkPromptWeak atomically marks a prompt weak and creates a replacement
// draft holding req.ReplacementText.
func (c *Client) MarkPromptWeak(ctx context.Context, promptID string, req MarkWeakRequest) error {
	if promptID == "" {
		return fmt.Errorf("prompt id required")
	}
	if req.ReplacementText == "" {
		return fmt.Errorf("replacement text required")
	}
	if err := c.post(ctx, "/api/prompts/"+url.PathEscape(promptID)+"/mark-weak", req, nil); err != nil {
		return fmt.Errorf("mark prompt weak: %w", err)
	}
	return nil
}

// PublishPrompt promotes a draft to active. The backend archives the previous
// active prompt for the same (state, language) pair in the same operation.
func (c *Client) PublishPrompt(ctx context.Context, promptID string) error {
	if promptID == "" {
		return fmt.Errorf("prompt id required")
	}
	if err := c.post(ctx, "/api/prompts/"+url.PathEscape(promptID)+"/publish", nil, nil); err != nil {
		return fmt.Errorf("publish prompt: %w", err)
	}
	return nil
}
