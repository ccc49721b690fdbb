package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hospitalops/pulse/pkg/domain/model/dashboard"
	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

func TestPatientEndpoints(t *testing.T) {
	srv, token := newTestServer(t)

	// A bed to admit into.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/beds", token, map[string]string{
		"number": "301-B", "ward": "Cardiology",
	})
	gt.Equal(t, resp.StatusCode, http.StatusCreated)
	var bed resource.Bed
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&bed))

	// Admit
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/patients", token, resource.PatientInput{
		MRN:       "MRN-2001",
		Name:      "Sato Hana",
		Age:       67,
		Diagnosis: "arrhythmia",
		BedID:     bed.ID,
	})
	gt.Equal(t, resp.StatusCode, http.StatusCreated)
	var admitted resource.Patient
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&admitted))
	gt.Equal(t, admitted.Status, types.PatientStatusAdmitted)
	gt.Equal(t, admitted.BedID, bed.ID)

	// The bed now reports the occupant.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/beds", token, nil)
	var beds []*resource.Bed
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&beds))
	gt.Array(t, beds).Length(1)
	gt.Equal(t, beds[0].Status, types.BedStatusOccupied)
	gt.Equal(t, beds[0].PatientID, admitted.ID)

	// Update diagnosis
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/patients/"+admitted.ID.String(), token, map[string]string{
		"diagnosis": "atrial fibrillation",
	})
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	var updated resource.Patient
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	gt.Equal(t, updated.Diagnosis, "atrial fibrillation")

	// Discharge frees the bed
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/patients/"+admitted.ID.String()+"/discharge", token, nil)
	gt.Equal(t, resp.StatusCode, http.StatusOK)
	var discharged resource.Patient
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&discharged))
	gt.Equal(t, discharged.Status, types.PatientStatusDischarged)
	gt.NotNil(t, discharged.DischargedAt)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/beds", token, nil)
	beds = nil
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&beds))
	gt.Equal(t, beds[0].Status, types.BedStatusAvailable)

	// Delete
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/patients/"+admitted.ID.String(), token, nil)
	gt.Equal(t, resp.StatusCode, http.StatusNoContent)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/patients/"+admitted.ID.String(), token, nil)
	gt.Equal(t, resp.StatusCode, http.StatusNotFound)
}

func TestPatientValidation(t *testing.T) {
	srv, token := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/patients", token, map[string]any{
		"name": "No MRN", "age": 30, "diagnosis": "x",
	})
	gt.Equal(t, resp.StatusCode, http.StatusBadRequest)
}

func TestAdmitToOccupiedBedConflicts(t *testing.T) {
	srv, token := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/beds", token, map[string]string{
		"number": "101-A", "ward": "ICU",
	})
	var bed resource.Bed
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&bed))

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/patients", token, resource.PatientInput{
		MRN: "MRN-1", Name: "First", Age: 40, Diagnosis: "x", BedID: bed.ID,
	})
	gt.Equal(t, resp.StatusCode, http.StatusCreated)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/patients", token, resource.PatientInput{
		MRN: "MRN-2", Name: "Second", Age: 41, Diagnosis: "y", BedID: bed.ID,
	})
	gt.Equal(t, resp.StatusCode, http.StatusConflict)
}

func TestDashboardSummaryEndpoint(t *testing.T) {
	srv, token := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/beds", token, map[string]string{
		"number": "101-A", "ward": "ICU",
	})
	var bed resource.Bed
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&bed))

	doJSON(t, http.MethodPost, srv.URL+"/api/patients", token, resource.PatientInput{
		MRN: "MRN-1", Name: "First", Age: 40, Diagnosis: "x", BedID: bed.ID,
	})
	doJSON(t, http.MethodPost, srv.URL+"/api/staff", token, map[string]string{
		"name": "Dana Reyes", "role": "nurse", "department": "ICU",
	})
	doJSON(t, http.MethodPost, srv.URL+"/api/alerts", token, map[string]string{
		"title": "Oxygen supply low", "priority": "critical", "category": "supplies",
	})

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/dashboard/summary", token, nil)
	gt.Equal(t, resp.StatusCode, http.StatusOK)

	var summary dashboard.Summary
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	gt.Equal(t, summary.Beds.Total, 1)
	gt.Equal(t, summary.Beds.Occupied, 1)
	gt.Equal(t, summary.Beds.OccupancyRate, 100)
	gt.Equal(t, summary.Patients.Admitted, 1)
	gt.Equal(t, summary.Staff.Total, 1)
	gt.Equal(t, summary.Alerts.Active, 1)
	gt.Equal(t, summary.Alerts.Critical, 1)
	gt.Array(t, summary.Wards).Length(1)
	gt.Equal(t, summary.Wards[0].Ward, "ICU")
}
