package dashboard

import (
	"sort"
	"time"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

// Summary is the aggregated snapshot behind the dashboard overview.
type Summary struct {
	Beds        BedSummary       `json:"beds"`
	Patients    PatientSummary   `json:"patients"`
	Staff       StaffSummary     `json:"staff"`
	Equipment   EquipmentSummary `json:"equipment"`
	Alerts      AlertSummary     `json:"alerts"`
	Wards       []WardOccupancy  `json:"wards"`
	GeneratedAt time.Time        `json:"generated_at"`
}

type BedSummary struct {
	Total         int `json:"total"`
	Occupied      int `json:"occupied"`
	Available     int `json:"available"`
	OccupancyRate int `json:"occupancy_rate"`
}

type PatientSummary struct {
	Total           int `json:"total"`
	Admitted        int `json:"admitted"`
	DischargedToday int `json:"discharged_today"`
}

type StaffSummary struct {
	Total           int `json:"total"`
	OnDuty          int `json:"on_duty"`
	UtilizationRate int `json:"utilization_rate"`
}

type EquipmentSummary struct {
	Total           int `json:"total"`
	Operational     int `json:"operational"`
	InUse           int `json:"in_use"`
	UtilizationRate int `json:"utilization_rate"`
}

type AlertSummary struct {
	Active   int `json:"active"`
	Critical int `json:"critical"`
	Unread   int `json:"unread"`
}

// WardOccupancy breaks bed occupancy down per ward.
type WardOccupancy struct {
	Ward          string `json:"ward"`
	Total         int    `json:"total"`
	Occupied      int    `json:"occupied"`
	Available     int    `json:"available"`
	OccupancyRate int    `json:"occupancy_rate"`
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(part)/float64(total)*100 + 0.5)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// NewSummary aggregates the current inventory into a dashboard snapshot.
func NewSummary(now time.Time, beds []*resource.Bed, patients []*resource.Patient,
	staff []*resource.Staff, equipment []*resource.Equipment, alerts alert.Alerts) *Summary {

	s := &Summary{GeneratedAt: now}

	wards := map[string]*WardOccupancy{}
	for _, b := range beds {
		s.Beds.Total++
		w := wards[b.Ward]
		if w == nil {
			w = &WardOccupancy{Ward: b.Ward}
			wards[b.Ward] = w
		}
		w.Total++
		switch b.Status {
		case types.BedStatusOccupied:
			s.Beds.Occupied++
			w.Occupied++
		case types.BedStatusAvailable:
			s.Beds.Available++
		}
	}
	s.Beds.OccupancyRate = percent(s.Beds.Occupied, s.Beds.Total)

	for _, w := range wards {
		w.Available = w.Total - w.Occupied
		w.OccupancyRate = percent(w.Occupied, w.Total)
		s.Wards = append(s.Wards, *w)
	}
	sort.Slice(s.Wards, func(i, j int) bool {
		return s.Wards[i].Ward < s.Wards[j].Ward
	})

	for _, p := range patients {
		s.Patients.Total++
		if p.Status == types.PatientStatusAdmitted {
			s.Patients.Admitted++
		}
		if p.DischargedAt != nil && sameDay(*p.DischargedAt, now) {
			s.Patients.DischargedToday++
		}
	}

	for _, m := range staff {
		s.Staff.Total++
		if m.OnDuty {
			s.Staff.OnDuty++
		}
	}
	s.Staff.UtilizationRate = percent(s.Staff.OnDuty, s.Staff.Total)

	for _, e := range equipment {
		s.Equipment.Total++
		switch e.Status {
		case types.EquipmentStatusOperational:
			s.Equipment.Operational++
		case types.EquipmentStatusInUse:
			s.Equipment.InUse++
		}
	}
	s.Equipment.UtilizationRate = percent(s.Equipment.InUse, s.Equipment.Total)

	for _, a := range alerts {
		if a.Status == types.AlertStatusActive {
			s.Alerts.Active++
			if a.Priority == types.AlertPriorityCritical {
				s.Alerts.Critical++
			}
		}
		if !a.Read {
			s.Alerts.Unread++
		}
	}

	return s
}
