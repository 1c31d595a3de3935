package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/AyushPal0/Mental-Wellness/pkg/jwt"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/time/rate"
)

func init() {
	logger.Silence()
}

const testSecret = "test-secret"

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID().Hex()
	valid, err := jwtutil.GenerateToken(userID, "u@example.com", "user", testSecret, time.Hour)
	require.NoError(t, err)

	var seen *jwtutil.Claims
	h := AuthMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no bearer prefix", valid, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, userID, seen.UserID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), `"status":"error"`)
			}
		})
	}
}

func TestGetUserFromContextEmpty(t *testing.T) {
	assert.Nil(t, GetUserFromContext(context.Background()))
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) RecordRequest(method, route string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method, route, status})
}
func (f *fakeRecorder) SetOnlineClients(int)        {}
func (f *fakeRecorder) RecordEventBroadcast(string) {}
func (f *fakeRecorder) RecordGameCompleted(string)  {}
func (f *fakeRecorder) RecordRiskEvent(string)      {}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	rec := &fakeRecorder{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(rec))
	router.HandleFunc("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/posts/42", nil))

	require.Len(t, rec.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/posts/{id}", http.StatusNotFound}, rec.requests[0])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 2, CleanupInterval: time.Minute})
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(okHandler))

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
	assert.Equal(t, 2, rl.VisitorCount())
}

func TestRateLimiterKeysByUser(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(0.001), Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	h := rl.Middleware(http.HandlerFunc(okHandler))
	call := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUser(req.Context(), &jwtutil.Claims{UserID: userID}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"))
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Limit(1), Burst: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	rl.limiter("ip:1.2.3.4")
	require.Equal(t, 1, rl.VisitorCount())

	rl.cleanup(time.Now())
	assert.Equal(t, 1, rl.VisitorCount())

	rl.cleanup(time.Now().Add(3 * time.Minute))
	assert.Equal(t, 0, rl.VisitorCount())
}

type fakeActiveUpdater struct {
	called []primitive.ObjectID
	err    error
}

func (f *fakeActiveUpdater) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	f.called = append(f.called, id)
	return f.err
}

func TestUpdateLastActiveMiddleware(t *testing.T) {
	id := primitive.NewObjectID()
	updater := &fakeActiveUpdater{err: errors.New("boom")}
	h := UpdateLastActiveMiddleware(updater)(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &jwtutil.Claims{UserID: id.Hex()}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []primitive.ObjectID{id}, updater.called)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, updater.called, 1)
}
