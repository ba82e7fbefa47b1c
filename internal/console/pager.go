// ABOUTME: Pagination state and filter parsing for the call review and qualification views
// ABOUTME: Pure functions so the prev/next gating rules are testable in isolation

package console

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/2389/aira-console/internal/aira"
)

// Pager carries everything the review table needs to render its pagination
// controls. Prev is disabled exactly on page one; Next is disabled on the
// last page and when there are no pages at all.
type Pager struct {
	Page         int
	TotalPages   int
	Total        int
	Label        string
	RangeLabel   string
	PrevURL      string
	NextURL      string
	PrevDisabled bool
	NextDisabled bool
}

// parsePage reads the page query parameter, defaulting to one.
func parsePage(q url.Values) int {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parseCallFilters reads the review filter parameters. The demo_intent
// parameter is tri-state: absent means unfiltered.
func parseCallFilters(q url.Values) (aira.CallFilters, string) {
	filters := aira.CallFilters{
		ExitReason: q.Get("exit_reason"),
		Status:     q.Get("status"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
	}

	demoRaw := q.Get("demo_intent")
	switch demoRaw {
	case "true":
		v := true
		filters.DemoIntent = &v
	case "false":
		v := false
		filters.DemoIntent = &v
	default:
		demoRaw = ""
	}

	return filters, demoRaw
}

// filterQuery re-encodes the active filters so pagination links preserve them.
func filterQuery(filters aira.CallFilters, demoRaw string) url.Values {
	q := url.Values{}
	if filters.ExitReason != "" {
		q.Set("exit_reason", filters.ExitReason)
	}
	if demoRaw != "" {
		q.Set("demo_intent", demoRaw)
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
	return q
}

// buildPager computes pagination state for one page of results. Prev/next
// links point at path; baseQuery holds the parameters to preserve in them.
func buildPager(path string, list *aira.CallList, baseQuery url.Values) Pager {
	p := Pager{
		Page:       list.Page,
		TotalPages: list.TotalPages,
		Total:      list.Total,
		Label:      fmt.Sprintf("Page %d of %d", list.Page, list.TotalPages),
	}

	if list.Total > 0 {
		first := (list.Page-1)*list.PageSize + 1
		last := list.Page * list.PageSize
		if last > list.Total {
			last = list.Total
		}
		p.RangeLabel = fmt.Sprintf("%d-%d of %d", first, last, list.Total)
	}

	p.PrevDisabled = list.Page <= 1
	p.NextDisabled = list.TotalPages == 0 || list.Page >= list.TotalPages

	if !p.PrevDisabled {
		p.PrevURL = pageURL(path, baseQuery, list.Page-1)
	}
	if !p.NextDisabled {
		p.NextURL = pageURL(path, baseQuery, list.Page+1)
	}
	return p
}

// pageURL builds a link to the given page, preserving filters.
func pageURL(path string, baseQuery url.Values, page int) string {
	q := url.Values{}
	for k, vs := range baseQuery {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("page", strconv.Itoa(page))
	return path + "?" + q.Encode()
}
