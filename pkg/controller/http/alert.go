package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/alert"
	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
	"github.com/hospitalops/pulse/pkg/usecase"
	"github.com/hospitalops/pulse/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		errs.Handle(r.Context(), goerr.Wrap(err, "failed to encode response"))
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer safe.Close(r.Context(), r.Body)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(err, "failed to decode request body", goerr.T(errs.TagValidation))
	}
	return nil
}

func listAlertsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := alert.FilterFromValues(r.URL.Query())

		alerts, err := uc.ListAlerts(r.Context(), filter)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, alerts)
	}
}

func createAlertHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input alert.CreateInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(w, r, err)
			return
		}

		created, err := uc.CreateAlert(r.Context(), input)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusCreated, created)
	}
}

func getAlertHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.AlertID(chi.URLParam(r, "alertID"))

		a, err := uc.GetAlert(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

func updateAlertHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.AlertID(chi.URLParam(r, "alertID"))

		var patch alert.UpdateInput
		if err := decodeJSON(r, &patch); err != nil {
			handleError(w, r, err)
			return
		}

		updated, err := uc.UpdateAlert(r.Context(), id, patch)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, updated)
	}
}

func deleteAlertHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.AlertID(chi.URLParam(r, "alertID"))

		if err := uc.DeleteAlert(r.Context(), id); err != nil {
			handleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func markAlertReadHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.AlertID(chi.URLParam(r, "alertID"))

		a, err := uc.MarkAlertRead(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, a)
	}
}

func markAllAlertsReadHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.MarkAllAlertsRead(r.Context()); err != nil {
			handleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func alertStatsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := uc.GetAlertStats(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, stats)
	}
}
