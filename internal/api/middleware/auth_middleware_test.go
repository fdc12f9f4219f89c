package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestTokenMiddleware は Authorization ヘッダーからのトークン抽出をテストします。
// トークンが無くてもリクエストは通過します。
func TestTokenMiddleware(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"bearer token", "Bearer gho_abc123", "gho_abc123", true},
		{"no header", "", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"empty bearer", "Bearer ", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var gotToken string
			var gotOK bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken, gotOK = GetTokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/github/someone", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rr := httptest.NewRecorder()
			TokenMiddleware(next).ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("the middleware must never reject, got %d", rr.Code)
			}
			if gotOK != c.wantOK || gotToken != c.wantToken {
				t.Errorf("got (%q, %v), want (%q, %v)", gotToken, gotOK, c.wantToken, c.wantOK)
			}
		})
	}
}
