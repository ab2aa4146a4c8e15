package middleware

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signedRequest(t *testing.T, priv ed25519.PrivateKey, body string) *http.Request {
	t.Helper()
	ts := "1700000000"
	sig := ed25519.Sign(priv, []byte(ts+body))
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", ts)
	return req
}

func TestVerifySignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/interactions", VerifySignature(pub), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})

	t.Run("valid signature keeps body readable", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, signedRequest(t, priv, `{"type":1}`))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"type":1}`, w.Body.String())
	})

	t.Run("tampered body", func(t *testing.T) {
		before := testutil.ToFloat64(SignatureFailures)
		req := signedRequest(t, priv, `{"type":1}`)
		req.Body = io.NopCloser(bytes.NewBufferString(`{"type":2}`))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request signature")
		assert.Equal(t, before+1, testutil.ToFloat64(SignatureFailures))
	})

	t.Run("missing headers", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other key", func(t *testing.T) {
		_, other, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, signedRequest(t, other, `{"type":1}`))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestContext(t *testing.T) {
	r := gin.New()
	r.Use(RequestContext(), Metrics())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))

	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequests.WithLabelValues("/ping", "204")), 2.0)
}
