package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"sparkle/config"
	otelMocks "sparkle/infras/otel/mocks"
	"sparkle/transport/http/middleware"
)

func TestTracing_PreservesFlusher(t *testing.T) {
	appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	var sawFlusher bool

	handler := appMiddleware.Tracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var flusher http.Flusher

		flusher, sawFlusher = w.(http.Flusher)
		if !sawFlusher {
			w.WriteHeader(http.StatusInternalServerError)

			return
		}

		w.WriteHeader(http.StatusOK)
		flusher.Flush()
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/bookings/events", nil))

	assert.True(t, sawFlusher, "handler behind tracing should still be able to flush")
	assert.True(t, recorder.Flushed)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestTracing_RecordsHandlerStatus(t *testing.T) {
	appMiddleware := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	handler := appMiddleware.Tracing(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/bookings/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
