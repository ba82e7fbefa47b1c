// ABOUTME: Read-only FSM state catalog operations
// ABOUTME: The console renders these for orientation and never mutates them

package aira

import (
	"context"
	"fmt"
	"net/url"
)

// ListFSMStates fetches the backend's FSM state catalog.
func (c *Client) ListFSMStates(ctx context.Context) ([]FSMStateInfo, error) {
	var states []FSMStateInfo
	err := c.get(ctx, "/api/fsm/states", nil, &states)
	if err != nil {
		if c.allowMock("fsm.list", err) {
			return mockFSMStates(), nil
		}
		return nil, err
	}
	return states, nil
}

// GetFSMState fetches one FSM state's description and transitions.
func (c *Client) GetFSMState(ctx context.Context, state string) (*FSMStateInfo, error) {
	if state == "" {
		return nil, fmt.Errorf("state required")
	}
	var info FSMStateInfo
	err := c.get(ctx, "/api/fsm/states/"+url.PathEscape(state), nil, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
