package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	bidding "car-auction/internal/biddingService"
	"car-auction/internal/repository"
	"car-auction/internal/server"
	"car-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetOutput(io.Discard)
}

// SetupTestRouter wires the full stack over a fresh SQLite file with the seed endpoint enabled.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.SQLStore) {
	t.Helper()

	store, err := repository.Open(filepath.Join(t.TempDir(), "auctions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Initialize(context.Background()))

	service := bidding.NewBiddingService(store, nil)
	router := server.SetupRouter(service, server.Options{AllowSeed: true})
	return router, store
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return resp, w
}

// RegisterUser registers through the API and returns the new user id
func RegisterUser(t *testing.T, router *gin.Engine, name string) int64 {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, "POST", "/api/register", map[string]any{
		"name":     name,
		"email":    name + "@example.com",
		"password": "pw-" + name,
	})
	require.Equal(t, 201, w.Code)
	return int64(resp["data"].(map[string]any)["user_id"].(float64))
}
