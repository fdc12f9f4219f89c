// Package github はGitHub APIとのやり取り（プロフィール・リポジトリ・イベント・
// 貢献データの取得とイベントの分類）を提供します。
package github

import (
	"fmt"
	"net/http"
	"time"

	gogithub "github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
)

// Service はGitHub APIクライアントをまとめた構造体です。
// セッション（リクエスト）ごとにトークン付きで作り直すため、
// 共有のグローバルなクライアント状態は存在しません。
type Service struct {
	rest       *gogithub.Client
	httpClient *http.Client
	apiBaseURL string
	graphqlURL string
	token      string
	window     shamsi.YearWindow
}

// NewService はService の新しいインスタンスを作成します。
// token が空の場合は未認証クライアントになります（レート制限が厳しくなります）。
func NewService(token string, window shamsi.YearWindow) *Service {
	hc := newHTTPClient(token)
	return &Service{
		rest:       gogithub.NewClient(hc),
		httpClient: hc,
		apiBaseURL: defaultAPIBaseURL,
		graphqlURL: defaultGraphQLURL,
		token:      token,
		window:     window,
	}
}

// newHTTPClient はトークンの有無に応じたHTTPクライアントを作成します。
func newHTTPClient(token string) *http.Client {
	c := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		c.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return c
}

// FetchError は上流APIからの取得失敗を表す分類済みエラーです。
// 部分的な結果は返しません。呼び出し側は完全な結果かこのエラーの
// どちらか一方だけを受け取ります。
type FetchError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: 上流APIがステータス %d を返しました", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// statusOf はgo-githubのレスポンスからステータスコードを安全に取り出します。
func statusOf(resp *gogithub.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
