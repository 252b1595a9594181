package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/evidence"
)

// SessionRole is reported for every authenticated user.
const SessionRole = "admin"

type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (h *Handler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		h.CreateResponse(w, Response{Message: "no session", Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}
	s := Session{Role: SessionRole}
	s.UserID, _ = claims["sub"].(string)
	s.Email, _ = claims["email"].(string)
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: s})
}

func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Today(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: d})
}

// RegisterUserHandler creates a login and its personal row.
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	if h.Registration == nil {
		h.unavailable(w, "user registration")
		return
	}
	var reg models.Registration
	if !h.decode(w, r, &reg) {
		return
	}
	out, err := h.Registration.Register(r.Context(), reg)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{
		Message: "user " + reg.Nombres + " " + reg.Apellidos + " created, confirmation sent to " + reg.Email,
		Code:    http.StatusCreated,
		Data:    out,
	})
}

const defaultAuditLimit = 50

func (h *Handler) AuditHandler(w http.ResponseWriter, r *http.Request) {
	if h.Audit == nil {
		h.unavailable(w, "audit trail")
		return
	}
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultAuditLimit
	}
	entries, err := h.Audit.List(r.Context(), r.URL.Query().Get("table"), limit)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: entries})
}

// evidenceRoute accepts a raw image body at PUT .../{id}/imagen.
func (h *Handler) evidenceRoute(table string) func(chi.Router) {
	return func(r chi.Router) {
		r.Put("/imagen", func(w http.ResponseWriter, req *http.Request) {
			if h.Evidence == nil {
				h.unavailable(w, "evidence storage")
				return
			}
			body := http.MaxBytesReader(w, req.Body, evidence.MaxImageSize)
			url, err := h.Evidence.Attach(req.Context(), table, chi.URLParam(req, "id"), req.Header.Get("Content-Type"), body)
			if err != nil {
				h.Fail(w, req, err)
				return
			}
			h.CreateResponse(w, Response{Message: "image stored", Code: http.StatusOK, Data: map[string]string{"imagen_url": url}})
		})
	}
}

func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	if h.Live == nil {
		h.unavailable(w, "live feed")
		return
	}
	h.Live(w, r)
}
