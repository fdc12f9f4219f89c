package middleware

import (
	"context"
	"net/http"
	"strings"
)

type tokenKey struct{}

// GetTokenFromContext retrieves the bearer token from the context.
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// TokenMiddleware は Authorization ヘッダーのベアラートークンをContextに載せる
// ミドルウェアです。トークンが無くてもリクエストは拒否しません。
// 未認証の表示も許される仕様のため、認証の要否は各ハンドラーが判断します。
func TokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			ctx := context.WithValue(r.Context(), tokenKey{}, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
