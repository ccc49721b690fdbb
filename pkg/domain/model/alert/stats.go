package alert

import "github.com/hospitalops/pulse/pkg/domain/types"

// Stats summarizes alert counts for the dashboard stats endpoint.
type Stats struct {
	Total      int                         `json:"total"`
	Unread     int                         `json:"unread"`
	ByStatus   map[types.AlertStatus]int   `json:"by_status"`
	ByPriority map[types.AlertPriority]int `json:"by_priority"`
	ByCategory map[types.AlertCategory]int `json:"by_category"`
}

func NewStats(alerts Alerts) *Stats {
	s := &Stats{
		ByStatus:   make(map[types.AlertStatus]int),
		ByPriority: make(map[types.AlertPriority]int),
		ByCategory: make(map[types.AlertCategory]int),
	}
	for _, a := range alerts {
		s.Total++
		if !a.Read {
			s.Unread++
		}
		s.ByStatus[a.Status]++
		s.ByPriority[a.Priority]++
		s.ByCategory[a.Category]++
	}
	return s
}
