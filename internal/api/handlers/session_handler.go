package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nowruz-wrap/salnameh-backend/internal/services/session"
)

// SessionHandler はセッション関連のハンドラーを管理する構造体です。
type SessionHandler struct {
	manager *session.SessionManager
}

// NewSessionHandler はSessionHandlerの新しいインスタンスを作成します。
func NewSessionHandler(manager *session.SessionManager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// loginRequest はログインリクエストのボディです。
type loginRequest struct {
	Token string `json:"token"`
}

// Login はトークンを検証してセッションを作成するハンドラーです。
// POST /api/session
// 検証に失敗した場合トークンは保持されず、401とエラーを返します。
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "リクエストボディの解析に失敗しました")
		return
	}
	if req.Token == "" {
		writeJSONError(w, http.StatusBadRequest, "トークンが指定されていません")
		return
	}

	s, err := h.manager.Login(r.Context(), req.Token)
	if err != nil {
		log.Printf("SessionHandler: ログインに失敗しました: %v", err)
		writeJSONError(w, http.StatusUnauthorized, "認証トークンが無効です")
		return
	}

	writeJSON(w, http.StatusCreated, s)
}

// Logout はセッションを破棄するハンドラーです。
// DELETE /api/session/{sessionID}
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["sessionID"]

	if !h.manager.Logout(sessionID) {
		writeJSONError(w, http.StatusNotFound, "セッションが見つかりません")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
