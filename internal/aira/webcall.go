// ABOUTME: Webcall session operations backing the text-based call simulator
// ABOUTME: start, input, end against the backend's session endpoints

package aira

import (
	"context"
	"fmt"
)

// StartWebCall opens a simulated call session and returns the opening agent
// message. Mutations never fall back to mock data.
func (c *Client) StartWebCall(ctx context.Context, req StartWebCallRequest) (*StartWebCallResponse, error) {
	if req.Language == "" {
		req.Language = LanguageEnglish
	}
	var resp StartWebCallResponse
	if err := c.post(ctx, "/api/webcall/start", req, &resp); err != nil {
		return nil, fmt.Errorf("start webcall: %w", err)
	}
	return &resp, nil
}

// SendWebCallInput submits one user activity classification and returns the
// agent reply. The backend answers 400 when the call is no longer active.
func (c *Client) SendWebCallInput(ctx context.Context, callID, userInput string) (*WebCallInputResponse, error) {
	if callID == "" {
		return nil, fmt.Errorf("call id required")
	}
	var resp WebCallInputResponse
	req := WebCallInputRequest{CallID: callID, UserInput: userInput}
	if err := c.post(ctx, "/api/webcall/input", req, &resp); err != nil {
		return nil, fmt.Errorf("send webcall input: %w", err)
	}
	return &resp, nil
}

// EndWebCall closes a simulated call session. The backend answers 404 when no
// active call matches; callers treat that as already ended.
func (c *Client) EndWebCall(ctx context.Context, callID string) (*EndWebCallResponse, error) {
	if callID == "" {
		return nil, fmt.Errorf("call id required")
	}
	var resp EndWebCallResponse
	if err := c.post(ctx, "/api/webcall/end", map[string]string{"call_id": callID}, &resp); err != nil {
		return nil, fmt.Errorf("end webcall: %w", err)
	}
	return &resp, nil
}
