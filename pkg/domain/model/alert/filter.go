package alert

import (
	"net/url"
	"strings"

	"github.com/hospitalops/pulse/pkg/domain/types"
)

// Filter selects alerts by status, priority, category and free-text search.
// Zero values match everything.
type Filter struct {
	Status   types.AlertStatus   `json:"status,omitempty"`
	Priority types.AlertPriority `json:"priority,omitempty"`
	Category types.AlertCategory `json:"category,omitempty"`
	Search   string              `json:"search,omitempty"`
}

func (f Filter) Match(a *Alert) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Priority != "" && a.Priority != f.Priority {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Title), needle) &&
			!strings.Contains(strings.ToLower(a.Description), needle) {
			return false
		}
	}
	return true
}

// Values encodes the filter as URL query parameters for the REST API.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status.String())
	}
	if f.Priority != "" {
		v.Set("priority", f.Priority.String())
	}
	if f.Category != "" {
		v.Set("category", f.Category.String())
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

// FilterFromValues parses URL query parameters into a Filter.
func FilterFromValues(v url.Values) Filter {
	return Filter{
		Status:   types.AlertStatus(v.Get("status")),
		Priority: types.AlertPriority(v.Get("priority")),
		Category: types.AlertCategory(v.Get("category")),
		Search:   v.Get("search"),
	}
}
