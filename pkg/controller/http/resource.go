package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/usecase"
)

type createBedRequest struct {
	Number string `json:"number"`
	Ward   string `json:"ward"`
}

type updateBedRequest struct {
	Status    types.BedStatus `json:"status"`
	PatientID types.PatientID `json:"patient_id,omitempty"`
}

func listBedsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		beds, err := uc.ListBeds(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, beds)
	}
}

func createBedHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBedRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		bed, err := uc.CreateBed(r.Context(), req.Number, req.Ward)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, bed)
	}
}

func updateBedHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.BedID(chi.URLParam(r, "bedID"))

		var req updateBedRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		bed, err := uc.UpdateBed(r.Context(), id, req.Status, req.PatientID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, bed)
	}
}

func deleteBedHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.BedID(chi.URLParam(r, "bedID"))

		if err := uc.DeleteBed(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createStaffRequest struct {
	Name       string          `json:"name"`
	Role       types.StaffRole `json:"role"`
	Department string          `json:"department"`
}

type setStaffDutyRequest struct {
	OnDuty bool `json:"on_duty"`
}

func listStaffHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := uc.ListStaff(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, staff)
	}
}

func createStaffHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createStaffRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		s, err := uc.CreateStaff(r.Context(), req.Name, req.Role, req.Department)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, s)
	}
}

func setStaffDutyHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.StaffID(chi.URLParam(r, "staffID"))

		var req setStaffDutyRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		s, err := uc.SetStaffDuty(r.Context(), id, req.OnDuty)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, s)
	}
}

func deleteStaffHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.StaffID(chi.URLParam(r, "staffID"))

		if err := uc.DeleteStaff(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type createEquipmentRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

type updateEquipmentStatusRequest struct {
	Status types.EquipmentStatus `json:"status"`
}

func listEquipmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipment, err := uc.ListEquipment(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, equipment)
	}
}

func createEquipmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEquipmentRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		e, err := uc.CreateEquipment(r.Context(), req.Name, req.Type, req.Location)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusCreated, e)
	}
}

func updateEquipmentStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.EquipmentID(chi.URLParam(r, "equipmentID"))

		var req updateEquipmentStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			handleError(w, r, err)
			return
		}

		e, err := uc.UpdateEquipmentStatus(r.Context(), id, req.Status)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, e)
	}
}

func deleteEquipmentHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.EquipmentID(chi.URLParam(r, "equipmentID"))

		if err := uc.DeleteEquipment(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func optimizeHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := uc.OptimizeResources(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, recs)
	}
}
