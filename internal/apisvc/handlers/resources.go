package handlers

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/sgsc/sgsc-services/internal/apisvc/catalog"
	"github.com/sgsc/sgsc-services/internal/report"
	log "github.com/sirupsen/logrus"
)

// mount registers the CRUD routes of e under /<path>, plus /report when the
// resource has one. extras add routes below /<path>/{id}.
func mount[T any, F any](r chi.Router, h *Handler, e *catalog.Entry[T, F], extras ...func(chi.Router)) {
	r.Route("/"+e.Path, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			records, err := e.Service.List(req.Context(), e.Filter(req.URL.Query()))
			if err != nil {
				h.Fail(w, req, err)
				return
			}
			if records == nil {
				records = []T{}
			}
			h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: records})
		})

		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			rec := new(T)
			if !h.decode(w, req, rec) {
				return
			}
			created, err := e.Service.Create(req.Context(), rec)
			if err != nil {
				h.Fail(w, req, err)
				return
			}
			h.CreateResponse(w, Response{Message: "created", Code: http.StatusCreated, Data: created})
		})

		if e.Report != nil {
			r.Get("/report", h.reportHandler(e))
		}

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				rec, err := e.Service.Get(req.Context(), chi.URLParam(req, "id"))
				if err != nil {
					h.Fail(w, req, err)
					return
				}
				h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: rec})
			})

			r.Put("/", func(w http.ResponseWriter, req *http.Request) {
				rec := new(T)
				if !h.decode(w, req, rec) {
					return
				}
				updated, err := e.Service.Update(req.Context(), chi.URLParam(req, "id"), rec)
				if err != nil {
					h.Fail(w, req, err)
					return
				}
				h.CreateResponse(w, Response{Message: "updated", Code: http.StatusOK, Data: updated})
			})

			r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
				if err := e.Service.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
					h.Fail(w, req, err)
					return
				}
				h.CreateResponse(w, Response{Message: "deleted", Code: http.StatusOK})
			})

			for _, extra := range extras {
				extra(r)
			}
		})
	})
}

// reportHandler streams the filtered report as an attachment. format is
// pdf (default) or excel.
func (h *Handler) reportHandler(exp catalog.Exporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		kind, err := report.ParseKind(q.Get("format"))
		if err != nil {
			h.CreateResponse(w, Response{Message: "invalid report format", Code: http.StatusBadRequest, Error: err.Error()})
			return
		}

		var buf bytes.Buffer
		name, err := exp.Export(r.Context(), q, &buf, kind)
		if err != nil {
			h.Fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", kind.ContentType())
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.WithError(err).Warnf("report download %s interrupted", name)
		}
	}
}
