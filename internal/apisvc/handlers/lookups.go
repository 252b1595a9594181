package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
)

// LookupHandler answers a cached reference collection.
func (h *Handler) LookupHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var data interface{}
	switch chi.URLParam(r, "name") {
	case "sectors":
		data = h.Lookups.Sectors(ctx)
	case "shifts":
		data = h.Lookups.Shifts(ctx)
	case "personnel":
		data = h.Lookups.Personnel(ctx)
	case "vehicles":
		data = h.Lookups.Vehicles(ctx)
	case "booths":
		data = h.Lookups.Booths(ctx)
	case "supervisors":
		data = h.Lookups.Supervisors(ctx)
	default:
		h.CreateResponse(w, Response{Message: "unknown lookup", Code: http.StatusNotFound, Error: "not found"})
		return
	}
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: data})
}

func (h *Handler) LookupStatsHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: h.Lookups.Cache().Stats()})
}

// ClearLookupsHandler empties the reference cache of this instance.
func (h *Handler) ClearLookupsHandler(w http.ResponseWriter, r *http.Request) {
	h.Lookups.Cache().ClearAll()
	h.CreateResponse(w, Response{Message: "reference cache cleared", Code: http.StatusOK})
}
