package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shelfkeeper/internal/app/server/api/http/middleware/requestid"
)

func TestLogger_Middleware(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "success", status: http.StatusCreated, level: "INFO"},
		{name: "client error", status: http.StatusNotFound, level: "INFO"},
		{name: "server error", status: http.StatusInternalServerError, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodPost, "/api/books", nil)
			req.Header.Set(requestid.Header, "req-1")
			hctx := humatest.NewContext(nil, req, httptest.NewRecorder())

			chain := func(ctx huma.Context) {
				New(log).Middleware()(ctx, func(ctx huma.Context) {
					ctx.SetStatus(tt.status)
				})
			}
			requestid.Middleware()(hctx, chain)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "HTTP request", entry["msg"])
			assert.Equal(t, "POST", entry["method"])
			assert.Equal(t, "/api/books", entry["path"])
			assert.Equal(t, float64(tt.status), entry["status"])
			assert.Equal(t, "req-1", entry["request_id"])
			assert.Equal(t, "http_logger", entry["component"])
		})
	}
}
