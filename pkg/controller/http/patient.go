package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hospitalops/pulse/pkg/domain/model/resource"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/usecase"
)

type transferPatientRequest struct {
	BedID types.BedID `json:"bed_id"`
}

func listPatientsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := uc.ListPatients(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, patients)
	}
}

func admitPatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input resource.PatientInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(w, r, err)
			return
		}

		p, err := uc.AdmitPatient(r.Context(), input)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, p)
	}
}

func getPatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.PatientID(chi.URLParam(r, "patientID"))

		p, err := uc.GetPatient(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, p)
	}
}

func updatePatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.PatientID(chi.URLParam(r, "patientID"))

		var patch resource.PatientPatch
		if err := decodeJSON(r, &patch); err != nil {
			handleError(w, r, err)
			return
		}

		p, err := uc.UpdatePatient(r.Context(), id, patch)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, p)
	}
}

func transferPatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.PatientID(chi.URLParam(r, "patientID"))

		var req transferPatientRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		p, err := uc.TransferPatient(r.Context(), id, req.BedID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, p)
	}
}

func dischargePatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.PatientID(chi.URLParam(r, "patientID"))

		p, err := uc.DischargePatient(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, p)
	}
}

func deletePatientHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.PatientID(chi.URLParam(r, "patientID"))

		if err := uc.DeletePatient(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func dashboardSummaryHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := uc.GetDashboardSummary(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, summary)
	}
}
