package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/koustreak/schemats/internal/catalog"
	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/filestore"
	"github.com/koustreak/schemats/internal/infer"
	"github.com/koustreak/schemats/internal/logger"
)

// WarningsHeader carries the number of render warnings of a response.
const WarningsHeader = "X-Schemats-Warnings"

type handlers struct {
	provider catalog.Provider
	opts     infer.Options
	ping     func(context.Context) error
	log      *logger.Logger
}

// options applies per-request overrides: ?schema= and ?prefix=.
func (h *handlers) options(r *http.Request) infer.Options {
	opts := h.opts
	q := r.URL.Query()
	if s := q.Get("schema"); s != "" {
		opts.Schema = s
	}
	if q.Has("prefix") {
		opts.Render.Prefix = q.Get("prefix")
	}
	return opts
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.ErrorWith("health check failed", err, nil)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type tablesResponse struct {
	Schema string   `json:"schema"`
	Tables []string `json:"tables"`
}

func (h *handlers) listTables(w http.ResponseWriter, r *http.Request) {
	opts := h.options(r)
	tables, err := infer.ListTables(r.Context(), h.provider, opts)
	if err != nil {
		h.fail(w, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	schemaName := opts.Schema
	if schemaName == "" {
		schemaName = h.provider.DefaultSchema()
	}
	writeJSON(w, http.StatusOK, tablesResponse{Schema: schemaName, Tables: tables})
}

func (h *handlers) schemaFile(w http.ResponseWriter, r *http.Request) {
	res, err := infer.Schema(r.Context(), h.provider, h.options(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeCode(w, res)
}

func (h *handlers) tableFile(w http.ResponseWriter, r *http.Request) {
	res, err := infer.Table(r.Context(), h.provider, chi.URLParam(r, "table"), h.options(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeCode(w, res)
}

func (h *handlers) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorWith("request failed", err, nil)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.ErrKindNotFound:
		return http.StatusNotFound
	case errs.ErrKindInvalidInput:
		return http.StatusBadRequest
	case errs.ErrKindPermissionDenied:
		return http.StatusForbidden
	case errs.ErrKindTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrKindConnectionFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeCode(w http.ResponseWriter, res *infer.Result) {
	w.Header().Set("Content-Type", filestore.ContentTypeTypeScript)
	w.Header().Set(WarningsHeader, strconv.Itoa(len(res.Warnings)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(res.Code))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
