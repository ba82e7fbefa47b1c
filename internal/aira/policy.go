// ABOUTME: Dialing policy operations: fetch active+draft, save draft, publish
// ABOUTME: Publishing promotes the draft to active and clears the draft slot

package aira

import (
	"context"
	"fmt"
)

// GetPolicy fetches the active policy and the pending draft, if any.
func (c *Client) GetPolicy(ctx context.Context) (*PolicyPair, error) {
	var pair PolicyPair
	err := c.get(ctx, "/api/policy", nil, &pair)
	if err != nil {
		if c.allowMock("policy.get", err) {
			return mockPolicyPair(), nil
		}
		return nil, err
	}
	return &pair, nil
}

// SavePolicyDraft stores draft as the pending policy edit, replacing any
// previous draft.
func (c *Client) SavePolicyDraft(ctx context.Context, draft Policy) (*Policy, error) {
	var saved Policy
	if err := c.put(ctx, "/api/policy/draft", draft, &saved); err != nil {
		return nil, fmt.Errorf("save policy draft: %w", err)
	}
	return &saved, nil
}

// PublishPolicy promotes the pending draft to active. The backend answers 400
// when no draft exists.
func (c *Client) PublishPolicy(ctx context.Context) (*PolicyPair, error) {
	var pair PolicyPair
	if err := c.post(ctx, "/api/policy/publish", nil, &pair); err != nil {
		return nil, fmt.Errorf("publish policy: %w", err)
	}
	return &pair, nil
}
