package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyproof/internal/identity/confirmation"
	"keyproof/internal/identity/models"
	"keyproof/internal/platform/logger"
	"keyproof/pkg/platform/middleware/admin"
	"keyproof/pkg/platform/sentinel"
	"keyproof/pkg/testutil"
)

const adminToken = "secret-token"

type fakeService struct {
	runs    atomic.Int32
	release chan struct{}
	started chan struct{}
	mapErr  error
}

func (f *fakeService) Run(_ context.Context, driver string) (any, error) {
	if driver == "bogus" {
		return nil, fmt.Errorf("%q: %w", driver, sentinel.ErrNotFound)
	}
	f.runs.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return confirmation.SweepReport{Driver: driver, Identities: 3, Confirmed: 2}, nil
}

func (f *fakeService) ConfirmIdentity(_ context.Context, identity models.Identity) confirmation.TierResult {
	if identity == "broken" {
		return confirmation.TierResult{Tier: confirmation.TierWebScrape, Outcome: confirmation.OutcomeFailed, Err: errors.New("timeout")}
	}
	return confirmation.TierResult{Tier: confirmation.TierSourceHosting, Outcome: confirmation.OutcomeConfirmed, Keys: []models.Key{"k1"}}
}

func (f *fakeService) ConfirmationMap(context.Context) (models.ConfirmationMap, error) {
	if f.mapErr != nil {
		return nil, f.mapErr
	}
	return models.ConfirmationMap{"k1": {Identity: "alice", Confirmed: true}}, nil
}

func (f *fakeService) Profiles(context.Context) ([]models.Profile, error) {
	return []models.Profile{{Identity: "alice", Name: "Alice"}}, nil
}

func newRouter(svc Service) chi.Router {
	h := New(svc, logger.Discard(), nil)
	r := chi.NewRouter()
	h.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(adminToken, logger.Discard()))
		h.RegisterAdmin(r)
	})
	return r
}

func do(t *testing.T, r http.Handler, method, path string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()
	if withToken {
		return testutil.DoRequest(r, testutil.NewRequest(t, method, path, "X-Admin-Token", adminToken))
	}
	return testutil.DoRequest(r, testutil.NewRequest(t, method, path))
}

func TestReadEndpoints(t *testing.T) {
	router := newRouter(&fakeService{})

	t.Run("confirmation map is keyed by key", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/keybases", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"k1":{"identity":"alice","confirmed":true}}`, rec.Body.String())
	})

	t.Run("profiles", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/identities/profiles", false)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"identity":"alice","name":"Alice"}]`, rec.Body.String())
	})

	t.Run("read failure is an internal error", func(t *testing.T) {
		rec := do(t, newRouter(&fakeService{mapErr: errors.New("redis down")}), http.MethodGet, "/keybases", false)
		testutil.AssertStatusAndError(t, rec, http.StatusInternalServerError, "internal_error")
	})
}

func TestAdminTokenRequired(t *testing.T) {
	svc := &fakeService{}
	rec := do(t, newRouter(svc), http.MethodPost, "/admin/sweeps/store", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, svc.runs.Load())
}

func TestSweepTrigger(t *testing.T) {
	router := newRouter(&fakeService{})

	t.Run("returns the report", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/admin/sweeps/store", true)
		require.Equal(t, http.StatusOK, rec.Code)

		report := testutil.UnmarshalResponse[confirmation.SweepReport](t, rec)
		assert.Equal(t, "store", report.Driver)
		assert.Equal(t, 2, report.Confirmed)
	})

	t.Run("unknown driver is not found", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/admin/sweeps/bogus", true)
		testutil.AssertStatusAndError(t, rec, http.StatusNotFound, "not_found")
	})
}

func TestOverlappingTriggersJoin(t *testing.T) {
	svc := &fakeService{release: make(chan struct{}), started: make(chan struct{}, 2)}
	router := newRouter(svc)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		codes[0] = do(t, router, http.MethodPost, "/admin/sweeps/sources", true).Code
	}()
	<-svc.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		codes[1] = do(t, router, http.MethodPost, "/admin/sweeps/sources", true).Code
	}()
	// Give the second trigger time to join the flight before releasing it.
	time.Sleep(100 * time.Millisecond)
	close(svc.release)
	wg.Wait()

	assert.Equal(t, int32(1), svc.runs.Load())
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
}

func TestConfirmIdentity(t *testing.T) {
	router := newRouter(&fakeService{})

	t.Run("confirmed", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/admin/identities/alice/confirm", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"identity":"alice","tier":"source_hosting","outcome":"confirmed","keys":["k1"]}`, rec.Body.String())
	})

	t.Run("failure is reported, not raised", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/admin/identities/broken/confirm", true)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"identity":"broken","tier":"web_scrape","outcome":"failed","keys":[],"error":"timeout"}`, rec.Body.String())
	})
}

func TestHealth(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		h := NewHealth(map[string]Check{"redis": func(context.Context) error { return nil }})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"redis":"ok"}}`, rec.Body.String())
	})

	t.Run("a failing check degrades", func(t *testing.T) {
		h := NewHealth(map[string]Check{
			"redis":    func(context.Context) error { return nil },
			"postgres": func(context.Context) error { return errors.New("connection refused") },
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "connection refused")
	})
}
