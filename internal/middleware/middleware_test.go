package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(RequestID(), Logger(zap.New(core)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping?x=1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Request", entries[0].Message)
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, "Client error", entries[1].Message)
}

func TestLogger_IncludesHandlerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(Logger(zap.New(core)))
	r.GET("/partial", func(c *gin.Context) {
		c.Status(http.StatusOK)
		_ = c.Error(errors.New("write excel: broken pipe"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/partial", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["errors"], "write excel: broken pipe")
}

func TestSaveToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name   string
		hash   string
		header string
		want   int
	}{
		{name: "disabled", hash: "", header: "", want: http.StatusOK},
		{name: "valid token", hash: string(hash), header: "Bearer s3cret", want: http.StatusOK},
		{name: "wrong token", hash: string(hash), header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing token", hash: string(hash), header: "", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(SaveToken(tt.hash))
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
