package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantLevel zapcore.Level
		wantRoute string
		wantCode  int64
	}{
		{name: "served", target: "/documents/tree", wantLevel: zapcore.InfoLevel, wantRoute: "/documents/{name}", wantCode: http.StatusOK},
		{name: "rejected", target: "/documents/missing", wantLevel: zapcore.WarnLevel, wantRoute: "/documents/{name}", wantCode: http.StatusNotFound},
		{name: "failed", target: "/boom", wantLevel: zapcore.ErrorLevel, wantRoute: "/boom", wantCode: http.StatusBadGateway},
		{name: "unmatched", target: "/nowhere", wantLevel: zapcore.WarnLevel, wantRoute: "unmatched", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)

			r := chi.NewRouter()
			r.Use(chimiddleware.RequestID)
			r.Use(Logger(zap.New(core)))
			r.Get("/documents/{name}", func(w http.ResponseWriter, r *http.Request) {
				if chi.URLParam(r, "name") == "missing" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_, _ = w.Write([]byte("{}"))
			})
			r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			})

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, tt.wantRoute, fields["route"])
			assert.Equal(t, tt.target, fields["path"])
			assert.Equal(t, tt.wantCode, fields["status"])
			assert.NotEmpty(t, fields["request_id"])
		})
	}
}
