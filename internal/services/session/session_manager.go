// Package session はベアラートークンを保持するセッション状態の管理を提供します。
// 永続化は行わず、すべてメモリ上で管理します（プロセス終了で消えます）。
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound は存在しないセッションIDに対するエラーです。
var ErrSessionNotFound = errors.New("セッションが見つかりません")

// ValidateFunc はトークンを上流APIに1回問い合わせて検証し、
// 有効ならログイン名を返します。
type ValidateFunc func(ctx context.Context, token string) (login string, err error)

// Session はログイン済みユーザーの1セッションを表します。
type Session struct {
	ID        string    `json:"sessionId"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"createdAt"`

	// Token はセッションの所有するベアラートークンです。レスポンスには含めません。
	Token string `json:"-"`
}

// SessionManager は全セッションを管理します。
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	validate ValidateFunc
}

// NewSessionManager はSessionManagerの新しいインスタンスを作成します。
func NewSessionManager(validate ValidateFunc) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		validate: validate,
	}
}

// Login はトークンを検証し、有効ならセッションを作成して返します。
// 検証に失敗した場合、トークンはどこにも保持されません。
// 無効な資格情報が残ったままのセッションは存在し得ません。
func (m *SessionManager) Login(ctx context.Context, token string) (*Session, error) {
	login, err := m.validate(ctx, token)
	if err != nil {
		log.Printf("SessionManager: トークン検証に失敗しました: %v", err)
		return nil, err
	}

	s := &Session{
		ID:        uuid.New().String(),
		Login:     login,
		CreatedAt: time.Now(),
		Token:     token,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("SessionManager: ユーザー '%s' のセッション %s を作成しました。", login, s.ID)
	return s, nil
}

// Get はセッションIDからセッションを取得します。
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Logout はセッションを削除し、保持していたトークンを破棄します。
func (m *SessionManager) Logout(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	log.Printf("SessionManager: セッション %s を破棄しました。", id)
	return true
}

// Revalidate は保持中のトークンを再検証します。
// 検証に失敗した場合はセッションごとトークンを破棄し、エラーを返します。
func (m *SessionManager) Revalidate(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	if _, err := m.validate(ctx, s.Token); err != nil {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		log.Printf("SessionManager: セッション %s のトークンが無効になったため破棄しました。", id)
		return err
	}
	return nil
}
