package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/nowruz-wrap/salnameh-backend/internal/api/middleware"
	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/services/calendar"
	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

// CalendarHandler はカレンダーウィジェット用データのハンドラーを管理する構造体です。
type CalendarHandler struct {
	newService GitHubServiceFactory
	window     shamsi.YearWindow
}

// NewCalendarHandler はCalendarHandlerの新しいインスタンスを作成します。
func NewCalendarHandler(factory GitHubServiceFactory, window shamsi.YearWindow) *CalendarHandler {
	return &CalendarHandler{newService: factory, window: window}
}

// calendarResponse はカレンダーエンドポイントの共通レスポンスです。
type calendarResponse struct {
	Categories []models.Category `json:"categories"`
	Grid       calendar.YearGrid `json:"grid"`
}

// GetUserCalendar はユーザーのアクティビティから集計したカレンダーを返すハンドラーです。
// GET /api/github/{username}/calendar?categories=commit,pull_request
func (h *CalendarHandler) GetUserCalendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]
	if username == "" {
		writeJSONError(w, http.StatusBadRequest, "ユーザー名が指定されていません")
		return
	}

	token, _ := middleware.GetTokenFromContext(r.Context())
	svc := h.newService(token)

	activities, err := svc.FetchActivities(r.Context(), username)
	if err != nil {
		log.Printf("GetUserCalendar: ユーザー '%s' のアクティビティ取得に失敗しました: %v", username, err)
		writeJSONError(w, http.StatusBadGateway, "アクティビティの取得に失敗しました。")
		return
	}

	heatmap, streaks := calendar.BuildEntries(activities, h.window, calendar.GitHubCategories)

	// カテゴリの絞り込みは集計の前に行う
	include := parseCategoryFilter(r, calendar.GitHubCategories)
	heatmap = calendar.FilterHeatmap(heatmap, include)
	streaks = calendar.FilterStreaks(streaks, include)

	writeJSON(w, http.StatusOK, calendarResponse{
		Categories: calendar.GitHubCategories,
		Grid:       calendar.BuildYear(heatmap, streaks, h.window.Year),
	})
}

// GetSampleCalendar はサンプルデータから集計したカレンダーを返すハンドラーです。
// ライブAPIを使わない表示確認用のフォールバックです。
// GET /api/calendar/sample?categories=Learning,Coding&seed=42
func (h *CalendarHandler) GetSampleCalendar(w http.ResponseWriter, r *http.Request) {
	seed := time.Now().UnixNano()
	if s := r.URL.Query().Get("seed"); s != "" {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "seed の形式が不正です")
			return
		}
		seed = parsed
	}

	data := calendar.GenerateSampleData(rand.New(rand.NewSource(seed)))

	include := parseCategoryFilter(r, data.Categories)
	heatmap := calendar.FilterHeatmap(data.HeatmapData, include)
	streaks := calendar.FilterStreaks(data.StreakData, include)

	writeJSON(w, http.StatusOK, calendarResponse{
		Categories: data.Categories,
		Grid:       calendar.BuildYear(heatmap, streaks, calendar.SampleYear),
	})
}

// parseCategoryFilter は categories クエリパラメータから包含集合を作ります。
// パラメータが無い場合は全カテゴリを含めます。
func parseCategoryFilter(r *http.Request, categories []models.Category) map[string]bool {
	include := make(map[string]bool, len(categories))
	raw := r.URL.Query().Get("categories")
	if raw == "" {
		for _, c := range categories {
			include[c.Name] = true
		}
		return include
	}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			include[name] = true
		}
	}
	return include
}
