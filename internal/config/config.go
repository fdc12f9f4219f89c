// Package config は環境変数からのアプリケーション設定の読み込みを提供します。
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

// 必須のOAuth認証情報が欠けている場合の設定エラーです。
// 一般的な失敗と区別して、即座に設定エラーとして通知します。
var (
	ErrMissingClientID     = errors.New("GITHUB_CLIENT_ID 環境変数が設定されていません")
	ErrMissingClientSecret = errors.New("GITHUB_CLIENT_SECRET 環境変数が設定されていません")
)

// Config はアプリケーション全体の設定値を保持します。
type Config struct {
	// GitHub OAuth アプリの認証情報
	GitHubClientID     string
	GitHubClientSecret string

	// フロントエンドのベースURL（OAuthコールバック後のリダイレクト先）
	AppBaseURL string

	// HTTPサーバーの待ち受けポート
	Port string

	// OAuth state パラメータの署名に使う秘密鍵
	StateSecret string

	// 集計対象のシャムシー年の期間
	Window shamsi.YearWindow
}

// RedirectURL はOAuthコールバックの完全なURLを返します。
func (c *Config) RedirectURL() string {
	return c.AppBaseURL + "/api/auth/github/callback"
}

// Load は環境変数から設定を読み込みます。
// OAuth認証情報以外はデフォルト値で補われます。認証情報の検証は
// 認証エンドポイントの呼び出し時に RequireOAuth で行います。
func Load() (*Config, error) {
	cfg := &Config{
		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		AppBaseURL:         os.Getenv("APP_BASE_URL"),
		Port:               os.Getenv("PORT"),
		StateSecret:        os.Getenv("SESSION_STATE_SECRET"),
	}
	if cfg.AppBaseURL == "" {
		cfg.AppBaseURL = "http://localhost:3000"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StateSecret == "" {
		// 未設定の場合はプロセスごとに使い捨ての鍵を生成してもよいが、
		// 複数インスタンス構成で state 検証が壊れるため明示的な設定を要求する。
		cfg.StateSecret = cfg.GitHubClientSecret
	}

	window, err := loadWindow()
	if err != nil {
		return nil, err
	}
	cfg.Window = window

	return cfg, nil
}

// RequireOAuth はOAuthフローに必要な認証情報が揃っているかを検証します。
func (c *Config) RequireOAuth() error {
	if c.GitHubClientID == "" {
		return ErrMissingClientID
	}
	if c.GitHubClientSecret == "" {
		return ErrMissingClientSecret
	}
	return nil
}

// loadWindow は集計期間を環境変数から読み込みます。
// SHAMSI_YEAR_FROM / SHAMSI_YEAR_TO（YYYY-MM-DD）が両方指定されていればそれを使い、
// 未指定なら現在時刻を含むシャムシー年の期間を使います。
func loadWindow() (shamsi.YearWindow, error) {
	fromStr := os.Getenv("SHAMSI_YEAR_FROM")
	toStr := os.Getenv("SHAMSI_YEAR_TO")
	if fromStr == "" && toStr == "" {
		return shamsi.NewYearWindow(time.Now()), nil
	}

	const layout = "2006-01-02"
	from, err := time.Parse(layout, fromStr)
	if err != nil {
		return shamsi.YearWindow{}, fmt.Errorf("SHAMSI_YEAR_FROM の形式が不正です（YYYY-MM-DD）: %w", err)
	}
	to, err := time.Parse(layout, toStr)
	if err != nil {
		return shamsi.YearWindow{}, fmt.Errorf("SHAMSI_YEAR_TO の形式が不正です（YYYY-MM-DD）: %w", err)
	}
	if to.Before(from) {
		return shamsi.YearWindow{}, fmt.Errorf("SHAMSI_YEAR_TO (%s) が SHAMSI_YEAR_FROM (%s) より前になっています", toStr, fromStr)
	}

	window := shamsi.YearWindow{From: from.UTC(), To: to.UTC()}
	if yearStr := os.Getenv("SHAMSI_YEAR"); yearStr != "" {
		var year int
		if _, err := fmt.Sscanf(yearStr, "%d", &year); err != nil {
			return shamsi.YearWindow{}, fmt.Errorf("SHAMSI_YEAR の形式が不正です: %w", err)
		}
		window.Year = year
	} else {
		// 元日のグレゴリオ暦年からシャムシー年を導出（3月の元日を想定）
		window.Year = from.Year() - 621
	}
	return window, nil
}
