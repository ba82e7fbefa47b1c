// ABOUTME: Call read operations: live list, paginated history, detail, qualification
// ABOUTME: Read-only; calls are created and mutated exclusively by the backend

package aira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// LiveCalls fetches the currently active calls.
func (c *Client) LiveCalls(ctx context.Context) ([]CallListItem, error) {
	var calls []CallListItem
	err := c.get(ctx, "/api/calls/live", nil, &calls)
	if err != nil {
		if c.allowMock("calls.live", err) {
			return mockLiveCalls(), nil
		}
		return nil, err
	}
	return calls, nil
}

// ListCalls fetches one page of call history. Page is 1-based; zero filter
// fields are omitted from the query.
func (c *Client) ListCalls(ctx context.Context, page, pageSize int, filters CallFilters) (*CallList, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if filters.ExitReason != "" {
		q.Set("exit_reason", filters.ExitReason)
	}
	if filters.DemoIntent != nil {
		q.Set("demo_intent", strconv.FormatBool(*filters.DemoIntent))
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}
	if filters.DateFrom != "" {
		q.Set("date_from", filters.DateFrom)
	}
	if filters.DateTo != "" {
		q.Set("date_to", filters.DateTo)
	}

	var list CallList
	err := c.get(ctx, "/api/calls", q, &list)
	if err != nil {
		if c.allowMock("calls.list", err) {
			return mockCallList(page, pageSize, filters), nil
		}
		return nil, err
	}
	return &list, nil
}

// GetCall fetches the full record for one call, including its turn timeline.
// A 404 here normally means "no such call" and propagates as is; the mock
// fallback applies only to ids from the mock dataset so a dev console backed
// by mock lists can still open details.
func (c *Client) GetCall(ctx context.Context, callID string) (*Call, error) {
	if callID == "" {
		return nil, fmt.Errorf("call id required")
	}
	var call Call
	err := c.get(ctx, "/api/calls/"+url.PathEscape(callID), nil, &call)
	if err != nil {
		if mock, ok := mockCallByID(callID); ok && c.allowMock("calls.get", err) {
			return mock, nil
		}
		return nil, err
	}
	return &call, nil
}

// GetQualification fetches the qualification record captured for one call.
func (c *Client) GetQualification(ctx context.Context, callID string) (*QualificationSnapshot, error) {
	if callID == "" {
		return nil, fmt.Errorf("call id required")
	}
	var snap QualificationSnapshot
	err := c.get(ctx, "/api/calls/"+url.PathEscape(callID)+"/qualification", nil, &snap)
	if err != nil {
		if mock, ok := mockQualificationByID(callID); ok && c.allowMock("calls.qualification", err) {
			return mock, nil
		}
		return nil, err
	}
	return &snap, nil
}
