package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	websocket_controller "github.com/hospitalops/pulse/pkg/controller/websocket"
	"github.com/hospitalops/pulse/pkg/usecase"
)

type Server struct {
	router          *chi.Mux
	websocketCtrl   *websocket_controller.Handler
	authSecret      []byte
	noAuthorization bool
}

type Options func(*Server)

func WithAuthSecret(secret []byte) Options {
	return func(s *Server) {
		s.authSecret = secret
	}
}

func WithNoAuthorization(disabled bool) Options {
	return func(s *Server) {
		s.noAuthorization = disabled
	}
}

func WithWebSocketHandler(handler *websocket_controller.Handler) Options {
	return func(s *Server) {
		s.websocketCtrl = handler
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(loggingMiddleware)
	r.Use(panicRecoveryMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authSecret, s.noAuthorization))

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", listAlertsHandler(uc))
			r.Post("/", createAlertHandler(uc))
			r.Get("/stats", alertStatsHandler(uc))
			r.Put("/read-all", markAllAlertsReadHandler(uc))
			r.Route("/{alertID}", func(r chi.Router) {
				r.Get("/", getAlertHandler(uc))
				r.Put("/", updateAlertHandler(uc))
				r.Delete("/", deleteAlertHandler(uc))
				r.Put("/read", markAlertReadHandler(uc))
			})
		})

		r.Route("/beds", func(r chi.Router) {
			r.Get("/", listBedsHandler(uc))
			r.Post("/", createBedHandler(uc))
			r.Put("/{bedID}", updateBedHandler(uc))
			r.Delete("/{bedID}", deleteBedHandler(uc))
		})

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", listPatientsHandler(uc))
			r.Post("/", admitPatientHandler(uc))
			r.Route("/{patientID}", func(r chi.Router) {
				r.Get("/", getPatientHandler(uc))
				r.Put("/", updatePatientHandler(uc))
				r.Delete("/", deletePatientHandler(uc))
				r.Put("/transfer", transferPatientHandler(uc))
				r.Put("/discharge", dischargePatientHandler(uc))
			})
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", listStaffHandler(uc))
			r.Post("/", createStaffHandler(uc))
			r.Put("/{staffID}/duty", setStaffDutyHandler(uc))
			r.Delete("/{staffID}", deleteStaffHandler(uc))
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", listEquipmentHandler(uc))
			r.Post("/", createEquipmentHandler(uc))
			r.Put("/{equipmentID}/status", updateEquipmentStatusHandler(uc))
			r.Delete("/{equipmentID}", deleteEquipmentHandler(uc))
		})

		r.Get("/dashboard/summary", dashboardSummaryHandler(uc))
		r.Post("/analytics/optimize", optimizeHandler(uc))
	})

	if s.websocketCtrl != nil {
		r.Route("/ws", func(r chi.Router) {
			r.Use(authMiddleware(s.authSecret, s.noAuthorization))
			r.Get("/alerts", s.websocketCtrl.HandleAlertStream)
		})
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
