// Package handler exposes the pipeline's read model and operator triggers
// over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"keyproof/internal/identity/confirmation"
	"keyproof/internal/identity/models"
	"keyproof/internal/platform/metrics"
	"keyproof/pkg/platform/httputil"
)

// Service is the slice of the pipeline the handler drives.
type Service interface {
	Run(ctx context.Context, driver string) (any, error)
	ConfirmIdentity(ctx context.Context, identity models.Identity) confirmation.TierResult
	ConfirmationMap(ctx context.Context) (models.ConfirmationMap, error)
	Profiles(ctx context.Context) ([]models.Profile, error)
}

// Handler wires pipeline endpoints to the service. Overlapping triggers of
// the same driver join the run in flight.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
	flights singleflight.Group
}

func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// Register mounts the read endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/keybases", h.HandleConfirmationMap)
	r.Get("/identities/profiles", h.HandleProfiles)
}

// RegisterAdmin mounts the trigger endpoints. Callers guard the router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/admin/sweeps/{driver}", h.HandleSweep)
	r.Post("/admin/identities/{identity}/confirm", h.HandleConfirmIdentity)
}

// HandleConfirmationMap handles GET /keybases.
func (h *Handler) HandleConfirmationMap(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.ConfirmationMap(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read confirmation map", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

// HandleProfiles handles GET /identities/profiles.
func (h *Handler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.Profiles(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to read profiles", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profiles)
}

// HandleSweep handles POST /admin/sweeps/{driver}. The sweep outlives the
// request: a disconnecting client does not cancel it.
func (h *Handler) HandleSweep(w http.ResponseWriter, r *http.Request) {
	driver := chi.URLParam(r, "driver")
	ctx := r.Context()
	start := time.Now()

	report, err, shared := h.flights.Do(driver, func() (any, error) {
		return h.service.Run(context.WithoutCancel(ctx), driver)
	})
	if shared {
		h.metrics.IncrementTriggersJoined(driver)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "sweep trigger rejected", "driver", driver, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sweep trigger completed",
		"driver", driver,
		"joined", shared,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}

type confirmResponse struct {
	Identity string   `json:"identity"`
	Tier     string   `json:"tier"`
	Outcome  string   `json:"outcome"`
	Keys     []string `json:"keys"`
	Error    string   `json:"error,omitempty"`
}

// HandleConfirmIdentity handles POST /admin/identities/{identity}/confirm.
func (h *Handler) HandleConfirmIdentity(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		httputil.WriteError(w, httputil.BadRequest("identity is required"))
		return
	}

	result := h.service.ConfirmIdentity(context.WithoutCancel(r.Context()), models.Identity(identity))

	resp := confirmResponse{
		Identity: identity,
		Tier:     string(result.Tier),
		Outcome:  result.Outcome.String(),
		Keys:     make([]string, len(result.Keys)),
	}
	for i, k := range result.Keys {
		resp.Keys[i] = string(k)
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
