package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	c := h.Catalog
	r.Route("/v1", func(r chi.Router) {

		// public routes here
		r.Get("/health", h.HealthHandler)
		r.Get("/live", h.LiveHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Use(actor)

			r.Get("/session", h.SessionHandler)
			r.Get("/dashboard", h.DashboardHandler)
			r.Get("/audit", h.AuditHandler)
			r.Post("/admin/users", h.RegisterUserHandler)

			r.Get("/lookups/stats", h.LookupStatsHandler)
			r.Get("/lookups/{name}", h.LookupHandler)
			r.Delete("/lookups", h.ClearLookupsHandler)

			mount(r, h, c.Sectors)
			mount(r, h, c.Shifts)
			mount(r, h, c.Annexes)
			mount(r, h, c.Booths)
			mount(r, h, c.Vehicles)
			mount(r, h, c.Personnel)
			mount(r, h, c.Supervisors)
			mount(r, h, c.Patrols)
			mount(r, h, c.Incidents, h.evidenceRoute("incidencia"))
			mount(r, h, c.Mobility)
			mount(r, h, c.BoothLogs)
			mount(r, h, c.Attendance)
			mount(r, h, c.Vouchers, h.evidenceRoute("voucher"))
		})
	})
}

// actor tags the request context with the session's e-mail, or subject.
func actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, _ := jwtauth.FromContext(r.Context())
		who, _ := claims["email"].(string)
		if who == "" {
			who, _ = claims["sub"].(string)
		}
		next.ServeHTTP(w, r.WithContext(service.WithActor(r.Context(), who)))
	})
}

// InitAuth verifies sessions signed with the backend's HS256 JWT secret.
func (h *Handler) InitAuth() {
	h.tokenAuth = jwtauth.New("HS256", []byte(h.JWTSecret), nil)

	if log.IsLevelEnabled(log.DebugLevel) {
		expirationTime := time.Now().Add(24 * time.Hour).Unix()
		_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
			"sub":   "sgsc-dev",
			"email": "dev@sgsc.local",
			"exp":   expirationTime,
		})
		log.Debugf("DEBUG: JWT for testing expires soon : %s", tokenString)
	}
}
