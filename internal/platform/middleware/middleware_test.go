package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func serve(mw echo.MiddlewareFunc, req *http.Request, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(mw)
	if h == nil {
		h = func(c *echo.Context) error { return c.NoContent(http.StatusOK) }
	}
	e.GET("/test", h)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generates when absent", "", false},
		{"preserves valid", "my-custom-id-123", true},
		{"rejects too long", strings.Repeat("a", 129), false},
		{"rejects control chars", "id-with-\x01-ctrl", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderXRequestID, tt.incoming)
			}

			var ctxID string
			rec := serve(RequestID(), req, func(c *echo.Context) error {
				ctxID, _ = c.Get(ContextKeyRequestID).(string)
				return c.NoContent(http.StatusOK)
			})

			got := rec.Header().Get(HeaderXRequestID)
			if got != ctxID {
				t.Fatalf("header %q and context %q disagree", got, ctxID)
			}
			if tt.keep {
				if got != tt.incoming {
					t.Fatalf("expected %q, got %q", tt.incoming, got)
				}
				return
			}
			if got == tt.incoming {
				t.Fatalf("expected %q to be replaced", tt.incoming)
			}
			if len(got) != 36 {
				t.Fatalf("expected UUID (36 chars), got %q", got)
			}
		})
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"valid alphanumeric", "abc-123", true},
		{"valid UUID", "550e8400-e29b-41d4-a716-446655440000", true},
		{"empty", "", false},
		{"max length", strings.Repeat("x", 128), true},
		{"too long", strings.Repeat("x", 129), false},
		{"with space", "has space", true},
		{"with tab", "has\ttab", false},
		{"with newline", "has\nnewline", false},
		{"with DEL", "has\x7fdel", false},
		{"non-ascii", "caf\xc3\xa9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isValidRequestID(tt.id); got != tt.valid {
				t.Fatalf("isValidRequestID(%q) = %v, want %v", tt.id, got, tt.valid)
			}
		})
	}
}

func TestSecurity_SetsHeaders(t *testing.T) {
	rec := serve(Security(), httptest.NewRequest(http.MethodGet, "/test", nil), nil)

	want := map[string]string{
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Fatalf("expected %s %q, got %q", k, v, got)
		}
	}

	csp := rec.Header().Get("Content-Security-Policy")
	for _, directive := range []string{"form-action 'self'", "frame-ancestors 'none'", "default-src 'self'"} {
		if !strings.Contains(csp, directive) {
			t.Fatalf("expected CSP to contain %q, got %q", directive, csp)
		}
	}
}

func TestVary_AddsAccept(t *testing.T) {
	rec := serve(Vary(), httptest.NewRequest(http.MethodGet, "/test", nil), nil)

	if got := rec.Header().Values("Vary"); len(got) != 1 || got[0] != "Accept" {
		t.Fatalf("expected Vary [Accept], got %v", got)
	}
}
