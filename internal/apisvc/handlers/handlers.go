package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
	"github.com/sgsc/sgsc-services/internal/apisvc/models"
	"github.com/sgsc/sgsc-services/internal/apisvc/service"
	"github.com/sgsc/sgsc-services/internal/apisvc/store"
	"github.com/sgsc/sgsc-services/internal/audit"
	"github.com/sgsc/sgsc-services/internal/auth"
	"github.com/sgsc/sgsc-services/internal/evidence"
	"github.com/sgsc/sgsc-services/internal/refcache"
	log "github.com/sirupsen/logrus"
)

// Deps are the collaborators of the HTTP layer. Registration, Evidence,
// Audit and Live may be nil; their routes then answer 503.
type Deps struct {
	Catalog      *catalog.Catalog
	Lookups      *refcache.Fetchers
	Dashboard    *service.DashboardService
	Registration *service.RegistrationService
	Evidence     *service.EvidenceService
	Audit        audit.Recorder
	Live         http.HandlerFunc
	JWTSecret    string
	Port         string
}

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	Deps
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func NewHandler(d Deps) *Handler {
	return &Handler{Deps: d}
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "sgsc api service is running at port " + h.Port,
		Code:    http.StatusOK,
	})
}

// Fail answers err with the status its kind maps to. Unexpected errors are
// logged and hidden behind a generic message.
func (h *Handler) Fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	} else {
		log.WithError(err).WithField("path", r.URL.Path).Debug("request rejected")
	}
	h.CreateResponse(w, Response{Message: msg, Code: code, Error: err.Error()})
}

func classify(err error) (int, string) {
	var vErr *models.ValidationError
	var apiErr *auth.APIError
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "record already exists"
	case errors.Is(err, store.ErrInvalidReference):
		return http.StatusBadRequest, "invalid reference"
	case errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, service.ErrNoEvidence), errors.Is(err, catalog.ErrNoReport):
		return http.StatusNotFound, "not available for this resource"
	case errors.As(err, &tooBig), errors.Is(err, evidence.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "payload too large"
	case errors.Is(err, evidence.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType, "unsupported image type"
	case errors.Is(err, evidence.ErrDisabled), errors.Is(err, auth.ErrNotConfigured):
		return http.StatusServiceUnavailable, "feature not configured"
	case errors.As(err, &apiErr):
		if apiErr.Status < http.StatusInternalServerError {
			return apiErr.Status, "auth backend rejected the request"
		}
		return http.StatusBadGateway, "auth backend unavailable"
	}
	return http.StatusInternalServerError, "internal error"
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.CreateResponse(w, Response{Message: "invalid request body", Code: http.StatusBadRequest, Error: err.Error()})
		return false
	}
	return true
}

func (h *Handler) unavailable(w http.ResponseWriter, feature string) {
	h.CreateResponse(w, Response{
		Message: feature + " is not configured",
		Code:    http.StatusServiceUnavailable,
		Error:   "unavailable",
	})
}
