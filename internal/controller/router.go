package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// NewRouter assembles the HTTP surface: CORS, per-IP rate limiting,
// request logging and the public routes.
func NewRouter(
	logger *zap.Logger,
	corsOrigins []string,
	rateLimitRPS int,
	booking *BookingController,
	hospital *HospitalController,
	diagnosis *DiagnosisController,
	realtimeCtrl *RealtimeController,
) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(httprate.LimitByIP(rateLimitRPS, time.Second))
	router.Use(RequestLogger(logger))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Post("/visit", booking.CreateVisit)
	router.Get("/hospitals", hospital.ListHospitals)
	router.Get("/hospitals/{hospitalID}/slots", booking.ListOpenSlots)
	router.Post("/diagnose", diagnosis.Diagnose)
	router.Post("/realtime/token", realtimeCtrl.CreateToken)

	return router
}
