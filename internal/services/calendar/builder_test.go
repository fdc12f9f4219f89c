package calendar

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

func builderTestWindow() shamsi.YearWindow {
	return shamsi.YearWindow{
		Year: 1403,
		From: time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
	}
}

// TestBuildEntries_Heatmap はアクティビティから日次件数への集計をテストします。
func TestBuildEntries_Heatmap(t *testing.T) {
	window := builderTestWindow()
	// 2024-03-21 = Farvardin 1, 2024-03-22 = Farvardin 2
	activities := []models.Activity{
		{Date: time.Date(2024, time.March, 21, 10, 0, 0, 0, time.UTC), Type: models.ActivityCommit, Repo: "a/b"},
		{Date: time.Date(2024, time.March, 21, 18, 0, 0, 0, time.UTC), Type: models.ActivityCommit, Repo: "a/b"},
		{Date: time.Date(2024, time.March, 21, 20, 0, 0, 0, time.UTC), Type: models.ActivityIssue, Repo: "a/c"},
		{Date: time.Date(2024, time.March, 22, 9, 0, 0, 0, time.UTC), Type: models.ActivityReview, Repo: "a/b"},
		// 期間外のアクティビティは落ちる
		{Date: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), Type: models.ActivityCommit, Repo: "a/b"},
	}

	heatmap, _ := BuildEntries(activities, window, GitHubCategories)

	want := []models.HeatmapEntry{
		{Year: 1403, Month: 0, Day: 1, Category: "commit", Count: 2},
		{Year: 1403, Month: 0, Day: 1, Category: "issue", Count: 1},
		{Year: 1403, Month: 0, Day: 2, Category: "review", Count: 1},
	}
	if !reflect.DeepEqual(heatmap, want) {
		t.Errorf("unexpected heatmap entries:\n got %+v\nwant %+v", heatmap, want)
	}
}

// TestBuildEntries_StreakRuns は長さ L の連続活動日から streakCount が
// L, L-1, …, 1 のエントリがちょうど L 件生成されることをテストします。
func TestBuildEntries_StreakRuns(t *testing.T) {
	window := builderTestWindow()
	// Farvardin 3〜5 の3日連続のコミット
	var activities []models.Activity
	for d := 23; d <= 25; d++ {
		activities = append(activities, models.Activity{
			Date: time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC),
			Type: models.ActivityCommit,
			Repo: "a/b",
		})
	}
	// 1日空けて単独の活動日
	activities = append(activities, models.Activity{
		Date: time.Date(2024, time.March, 27, 12, 0, 0, 0, time.UTC),
		Type: models.ActivityCommit,
		Repo: "a/b",
	})

	_, streaks := BuildEntries(activities, window, GitHubCategories)

	want := []models.StreakEntry{
		{Year: 1403, Month: 0, Day: 3, Category: "commit", StreakCount: 3},
		{Year: 1403, Month: 0, Day: 4, Category: "commit", StreakCount: 2},
		{Year: 1403, Month: 0, Day: 5, Category: "commit", StreakCount: 1},
		{Year: 1403, Month: 0, Day: 7, Category: "commit", StreakCount: 1},
	}
	if !reflect.DeepEqual(streaks, want) {
		t.Errorf("unexpected streak entries:\n got %+v\nwant %+v", streaks, want)
	}
}

// TestBuildEntries_CategoryGating はカテゴリの Type がヒートマップ・ストリークの
// 出力先を決めることをテストします。
func TestBuildEntries_CategoryGating(t *testing.T) {
	window := builderTestWindow()
	// review は Heatmap 専用カテゴリ
	activities := []models.Activity{
		{Date: time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC), Type: models.ActivityReview, Repo: "a/b"},
		{Date: time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC), Type: models.ActivityReview, Repo: "a/b"},
	}

	heatmap, streaks := BuildEntries(activities, window, GitHubCategories)
	if len(heatmap) != 2 {
		t.Errorf("expected 2 heatmap entries, got %d", len(heatmap))
	}
	if len(streaks) != 0 {
		t.Errorf("expected no streak entries for a heatmap-only category, got %+v", streaks)
	}

	// Streak 専用カテゴリではヒートマップに出ない
	streakOnly := []models.Category{{Name: "review", Type: models.CategoryStreak, Color: "teal"}}
	heatmap, streaks = BuildEntries(activities, window, streakOnly)
	if len(heatmap) != 0 {
		t.Errorf("expected no heatmap entries for a streak-only category, got %+v", heatmap)
	}
	if len(streaks) != 2 {
		t.Errorf("expected 2 streak entries, got %d", len(streaks))
	}
}

// TestBuildEntries_Empty は空入力で両方とも空になることをテストします。
func TestBuildEntries_Empty(t *testing.T) {
	heatmap, streaks := BuildEntries(nil, builderTestWindow(), GitHubCategories)
	if len(heatmap) != 0 || len(streaks) != 0 {
		t.Errorf("expected empty output, got %d heatmap / %d streak entries", len(heatmap), len(streaks))
	}
}

// TestGenerateSampleData は同じシードから同じサンプルデータが得られることと、
// 生成されるストリークが月内に収まることをテストします。
func TestGenerateSampleData(t *testing.T) {
	first := GenerateSampleData(rand.New(rand.NewSource(42)))
	second := GenerateSampleData(rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical data for the same seed")
	}

	other := GenerateSampleData(rand.New(rand.NewSource(7)))
	if reflect.DeepEqual(first.HeatmapData, other.HeatmapData) {
		t.Error("expected different data for a different seed")
	}

	for _, e := range first.HeatmapData {
		if e.Year != SampleYear || e.Month < 0 || e.Month > 11 {
			t.Fatalf("heatmap entry out of range: %+v", e)
		}
		if e.Day < 1 || e.Day > shamsi.DaysInMonth(SampleYear, e.Month) {
			t.Fatalf("heatmap day out of range: %+v", e)
		}
	}
	for _, e := range first.StreakData {
		if e.Day < 1 || e.Day > shamsi.DaysInMonth(SampleYear, e.Month) {
			t.Fatalf("streak day out of range: %+v", e)
		}
		if e.StreakCount < 1 {
			t.Fatalf("streak count must be positive: %+v", e)
		}
	}
}
