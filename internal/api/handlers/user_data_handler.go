package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nowruz-wrap/salnameh-backend/internal/api/middleware"
	"github.com/nowruz-wrap/salnameh-backend/internal/github"
)

// GitHubServiceFactory はリクエストごとにトークン付きのGitHubサービスを作成します。
// クライアントをモジュールレベルで共有・差し替えする代わりに、
// リクエスト単位で明示的に構築します。
type GitHubServiceFactory func(token string) *github.Service

// UserDataHandler はストーリー表示用データのハンドラーを管理する構造体です。
type UserDataHandler struct {
	newService GitHubServiceFactory
}

// NewUserDataHandler はUserDataHandlerの新しいインスタンスを作成します。
func NewUserDataHandler(factory GitHubServiceFactory) *UserDataHandler {
	return &UserDataHandler{newService: factory}
}

// GetUserData はユーザーの全ストーリーデータを取得するハンドラーです。
// GET /api/github/{username}
// Authorization ヘッダーにベアラートークンがあれば認証付きで取得します。
func (h *UserDataHandler) GetUserData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]
	if username == "" {
		writeJSONError(w, http.StatusBadRequest, "ユーザー名が指定されていません")
		return
	}

	token, _ := middleware.GetTokenFromContext(r.Context())
	svc := h.newService(token)

	data, err := svc.FetchUserData(r.Context(), username)
	if err != nil {
		var fetchErr *github.FetchError
		if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
			writeJSONError(w, http.StatusNotFound, "ユーザーが見つかりません")
			return
		}
		log.Printf("GetUserData: ユーザー '%s' のデータ取得に失敗しました: %v", username, err)
		writeJSONError(w, http.StatusBadGateway, "GitHubデータの取得に失敗しました。ユーザー名を確認してもう一度お試しください。")
		return
	}

	writeJSON(w, http.StatusOK, data)
}
