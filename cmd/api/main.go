package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nowruz-wrap/salnameh-backend/internal/api/handlers"
	"github.com/nowruz-wrap/salnameh-backend/internal/api/middleware"
	"github.com/nowruz-wrap/salnameh-backend/internal/config"
	"github.com/nowruz-wrap/salnameh-backend/internal/github"
	"github.com/nowruz-wrap/salnameh-backend/internal/services/session"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("warning: Error loading .env file (this is fine in production): %v", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	log.Printf("集計期間: シャムシー年 %d (%s 〜 %s)",
		cfg.Window.Year,
		cfg.Window.From.Format("2006-01-02"),
		cfg.Window.To.Format("2006-01-02"))

	// GitHubサービスはセッションごとにトークン付きで作り直す
	serviceFactory := func(token string) *github.Service {
		return github.NewService(token, cfg.Window)
	}

	sessionManager := session.NewSessionManager(func(ctx context.Context, token string) (string, error) {
		return serviceFactory(token).ValidateToken(ctx)
	})

	userDataHandler := handlers.NewUserDataHandler(serviceFactory)
	calendarHandler := handlers.NewCalendarHandler(serviceFactory, cfg.Window)
	authHandler := handlers.NewAuthHandler(cfg)
	sessionHandler := handlers.NewSessionHandler(sessionManager)

	r := mux.NewRouter()
	r.Use(middleware.CORSHandler())
	r.Use(middleware.TokenMiddleware)

	// 認証不要な公開エンドポイント
	r.HandleFunc("/api/public", handlers.PublicHandlerFunc).Methods("GET")

	// GitHub OAuthフロー
	r.HandleFunc("/api/auth/github", authHandler.LoginRedirect).Methods("GET")
	r.HandleFunc("/api/auth/github/callback", authHandler.Callback).Methods("GET")

	// セッション管理
	r.HandleFunc("/api/session", sessionHandler.Login).Methods("POST")
	r.HandleFunc("/api/session/{sessionID}", sessionHandler.Logout).Methods("DELETE")

	// ストーリー表示用データとカレンダー
	r.HandleFunc("/api/github/{username}", userDataHandler.GetUserData).Methods("GET")
	r.HandleFunc("/api/github/{username}/calendar", calendarHandler.GetUserCalendar).Methods("GET")
	r.HandleFunc("/api/calendar/sample", calendarHandler.GetSampleCalendar).Methods("GET")

	log.Printf("Server starting on :%s", cfg.Port)
	fmt.Printf("ストーリーデータを取得するには次のURLにアクセスしてください: http://localhost:%s/api/github/your_github_username\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
