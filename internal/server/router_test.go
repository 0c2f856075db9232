package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"car-auction/internal/metrics"
	handler "car-auction/services/bidding/handler"
	"car-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetOutput(io.Discard)
}

func TestSetupRouter_RequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := handler.NewMockBiddingServiceInterface(ctrl)
	svc.EXPECT().ListActiveAuctions(gomock.Any()).Return(nil, nil).Times(2)

	router := SetupRouter(svc, Options{})

	t.Run("generated_when_missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auctions", nil))

		require.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
		require.NoError(t, err)
	})

	t.Run("propagated_when_valid", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/api/auctions", nil)
		req.Header.Set("X-Request-ID", id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, id, w.Header().Get("X-Request-ID"))
	})
}

func TestSetupRouter_SeedEndpointGate(t *testing.T) {
	tests := []struct {
		name           string
		allowSeed      bool
		expectedStatus int
	}{
		{name: "disabled", allowSeed: false, expectedStatus: http.StatusNotFound},
		{name: "enabled", allowSeed: true, expectedStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := handler.NewMockBiddingServiceInterface(ctrl)
			if tc.allowSeed {
				svc.EXPECT().SeedSampleData(gomock.Any()).Return(nil)
			}

			router := SetupRouter(svc, Options{AllowSeed: tc.allowSeed})
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/init-data", nil))

			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestSetupRouter_MetricsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := handler.NewMockBiddingServiceInterface(ctrl)
	svc.EXPECT().GetBidsForAuction(gomock.Any(), int64(1)).Return(nil, nil)

	reg := prometheus.NewRegistry()
	router := SetupRouter(svc, Options{
		Recorder: metrics.NewCollector(reg),
		Gatherer: reg,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auctions/1/bids", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, "carauction_http_request_duration_seconds")
	require.Contains(t, body, `route="/api/auctions/:id/bids"`)
}

func TestSetupRouter_MetricsUnmountedWithoutGatherer(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := SetupRouter(handler.NewMockBiddingServiceInterface(ctrl), Options{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
}
