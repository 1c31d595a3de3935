package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	jwtutil "github.com/AyushPal0/Mental-Wellness/pkg/jwt"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	logger.Silence()
}

// newRequest builds a request carrying the caller's claims and mux vars.
func newRequest(t *testing.T, method, target string, body interface{}, userID primitive.ObjectID, vars map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if !userID.IsZero() {
		claims := &jwtutil.Claims{UserID: userID.Hex(), Email: "u@example.com", Role: "user"}
		req = req.WithContext(middleware.WithUser(req.Context(), claims))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
