package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/nowruz-wrap/salnameh-backend/internal/config"
)

// stateTTL はOAuth stateパラメータの有効期限です。
const stateTTL = 10 * time.Minute

// AuthHandler はGitHub OAuthフローのハンドラーを管理する構造体です。
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを作成します。
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// oauthConfig はGitHub用のOAuth2設定を組み立てます。
func (h *AuthHandler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.GitHubClientID,
		ClientSecret: h.cfg.GitHubClientSecret,
		RedirectURL:  h.cfg.RedirectURL(),
		Scopes:       []string{"user", "repo"},
		Endpoint:     githuboauth.Endpoint,
	}
}

// signState はCSRF対策のstateパラメータとして短命の署名付きトークンを発行します。
func (h *AuthHandler) signState() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.StateSecret))
}

// verifyState はコールバックで返されたstateパラメータを検証します。
func (h *AuthHandler) verifyState(state string) error {
	if state == "" {
		return fmt.Errorf("state パラメータがありません")
	}
	token, err := jwt.Parse(state, func(token *jwt.Token) (interface{}, error) {
		// アルゴリズムがHMACであることを確認
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.StateSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("state トークンが無効です")
	}
	return nil
}

// LoginRedirect はGitHubの認可ページへリダイレクトするハンドラーです。
// GET /api/auth/github
// OAuth認証情報が未設定の場合は一般的な失敗ではなく明示的な設定エラーを返します。
func (h *AuthHandler) LoginRedirect(w http.ResponseWriter, r *http.Request) {
	if err := h.cfg.RequireOAuth(); err != nil {
		log.Printf("AuthHandler Error: OAuth設定が不足しています: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "サーバー設定エラー: "+err.Error())
		return
	}

	state, err := h.signState()
	if err != nil {
		log.Printf("AuthHandler Error: stateの署名に失敗しました: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "認証フローの開始に失敗しました")
		return
	}

	authURL := h.oauthConfig().AuthCodeURL(state)
	log.Printf("AuthHandler Info: GitHub OAuthへリダイレクトします: %s", authURL)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback はGitHubからのOAuthコールバックを処理するハンドラーです。
// GET /api/auth/github/callback?code=...&state=...
// 認可コードをアクセストークンに交換し、一度だけURLパラメータとして
// フロントエンドへ引き渡します。失敗時はエラーコード付きでリダイレクトします。
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	code := query.Get("code")
	if code == "" {
		log.Println("AuthHandler Error: コールバックに認可コードがありません")
		h.redirectWithError(w, r, "oauth_callback_error")
		return
	}

	if err := h.cfg.RequireOAuth(); err != nil {
		log.Printf("AuthHandler Error: OAuth設定が不足しています: %v", err)
		h.redirectWithError(w, r, "server_configuration_error")
		return
	}

	if err := h.verifyState(query.Get("state")); err != nil {
		log.Printf("AuthHandler Error: stateの検証に失敗しました: %v", err)
		h.redirectWithError(w, r, "invalid_state")
		return
	}

	token, err := h.oauthConfig().Exchange(r.Context(), code)
	if err != nil {
		log.Printf("AuthHandler Error: トークン交換に失敗しました: %v", err)
		h.redirectWithError(w, r, "server_error")
		return
	}
	if token.AccessToken == "" {
		log.Println("AuthHandler Error: アクセストークンが返されませんでした")
		h.redirectWithError(w, r, "no_access_token")
		return
	}

	log.Println("AuthHandler Info: アクセストークンを受け取りました")
	http.Redirect(w, r, h.cfg.AppBaseURL+"/?token="+url.QueryEscape(token.AccessToken), http.StatusFound)
}

// redirectWithError はフロントエンドへエラーコード付きでリダイレクトします。
func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, errorCode string) {
	http.Redirect(w, r, h.cfg.AppBaseURL+"/?error="+url.QueryEscape(errorCode), http.StatusFound)
}
