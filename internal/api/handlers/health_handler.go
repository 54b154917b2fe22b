package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	mw "github.com/staffdesk/admin/internal/api/middleware"
	"github.com/staffdesk/admin/internal/api/types"
	appErr "github.com/staffdesk/admin/pkg/errors"
)

const readinessTimeout = 2 * time.Second

// PingFunc reports whether a backing dependency is reachable.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	ping PingFunc
}

// NewHealthHandler builds the probe handler. A nil ping makes readiness
// equivalent to liveness.
func NewHealthHandler(ping PingFunc) *HealthHandler { return &HealthHandler{ping: ping} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			mw.Log(r.Context()).Warn("readiness check failed", zap.Error(err))
			ae := appErr.Wrap(err, appErr.CodeUnavailable, "database unreachable")
			writeJSON(w, appErr.HTTPStatus(ae), types.APIResponse{
				Success: false,
				Error:   types.FromAppError(ae),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: map[string]string{"status": "ready"}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
