package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/invoice_ledger/internal/middleware"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	return signClaims(t, jwt.SigningMethodHS256, secret, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
}

func signClaims(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.AuthOptions{Secret: testSecret}))
	r.GET("/me", func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + signToken(t, testSecret, "user-42", time.Hour), wantStatus: http.StatusOK, wantBody: "user-42"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "another-secret", "user-42", time.Hour), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, "user-42", -time.Minute), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Token has expired","kind":"unauthorized"}`},
		{name: "empty subject", header: "Bearer " + signToken(t, testSecret, "", time.Hour), wantStatus: http.StatusUnauthorized},
		{name: "no expiry", header: "Bearer " + signClaims(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "user-42"}), wantStatus: http.StatusUnauthorized},
		{name: "other hmac algorithm", header: "Bearer " + signClaims(t, jwt.SigningMethodHS512, testSecret, jwt.RegisteredClaims{Subject: "user-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}), wantStatus: http.StatusUnauthorized},
		{name: "lowercase scheme", header: "bearer " + signToken(t, testSecret, "user-7", time.Hour), wantStatus: http.StatusOK, wantBody: "user-7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_IssuerAndAudience(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(middleware.AuthOptions{Secret: testSecret, Issuer: "billing-idp", Audience: "invoice-ledger"}))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	claims := func(iss string, aud ...string) jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "user-42",
			Issuer:    iss,
			Audience:  aud,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	tests := []struct {
		name       string
		claims     jwt.RegisteredClaims
		wantStatus int
		wantError  string
	}{
		{name: "accepted", claims: claims("billing-idp", "invoice-ledger"), wantStatus: http.StatusNoContent},
		{name: "one of several audiences", claims: claims("billing-idp", "reports", "invoice-ledger"), wantStatus: http.StatusNoContent},
		{name: "wrong issuer", claims: claims("someone-else", "invoice-ledger"), wantStatus: http.StatusUnauthorized, wantError: "Token issuer not accepted"},
		{name: "wrong audience", claims: claims("billing-idp", "reports"), wantStatus: http.StatusUnauthorized, wantError: "Token audience not accepted"},
		{name: "missing audience", claims: claims("billing-idp"), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+signClaims(t, jwt.SigningMethodHS256, testSecret, tt.claims))
			w := serve(r, req)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`","kind":"unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_SubjectOnRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), middleware.AuthMiddleware(middleware.AuthOptions{Secret: testSecret}))
	r.POST("/payments", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment processed via API")
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "clerk-9", time.Hour))
	w := serve(r, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, buf.String(), `"msg":"Payment processed via API"`)
	assert.Contains(t, buf.String(), `"subject":"clerk-9"`)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	t.Run("propagates incoming request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := serve(r, req)

		assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
		assert.Contains(t, buf.String(), `"msg":"inside handler"`)
		assert.Contains(t, buf.String(), `"request_id":"req-123"`)
		assert.Contains(t, buf.String(), `"msg":"Request completed"`)
	})

	t.Run("generates request id", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Len(t, w.Header().Get("X-Request-ID"), 36)
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	stores := map[string]*redis.Client{"memory": nil, "redis": client}
	for name, rc := range stores {
		t.Run(name, func(t *testing.T) {
			lim, err := middleware.NewLimiter("2-M", rc)
			require.NoError(t, err)

			r := gin.New()
			r.Use(middleware.RateLimit(lim))
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			for i := 0; i < 2; i++ {
				w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
				require.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			}
			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusTooManyRequests, w.Code)
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
		})
	}
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewLimiter("lots", nil)
	assert.Error(t, err)
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SecurityHeaders(false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}
