package calendar

import (
	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

// GitHubCategories はGitHub由来のアクティビティ種別に対応する静的なカテゴリ定義です。
var GitHubCategories = []models.Category{
	{Name: string(models.ActivityCommit), Type: models.CategoryBoth, Color: "emerald"},
	{Name: string(models.ActivityPullRequest), Type: models.CategoryBoth, Color: "purple"},
	{Name: string(models.ActivityReview), Type: models.CategoryHeatmap, Color: "teal"},
	{Name: string(models.ActivityStarGiven), Type: models.CategoryHeatmap, Color: "yellow"},
	{Name: string(models.ActivityRepoCreation), Type: models.CategoryHeatmap, Color: "blue"},
	{Name: string(models.ActivityForkMade), Type: models.CategoryHeatmap, Color: "cyan"},
	{Name: string(models.ActivityIssue), Type: models.CategoryHeatmap, Color: "amber"},
	{Name: string(models.ActivityOther), Type: models.CategoryHeatmap, Color: "slate"},
}

// BuildEntries は分類済みアクティビティをシャムシー暦グリッドのエントリに変換します。
// ヒートマップはカテゴリ別の日次件数、ストリークは各カテゴリの連続日の並びで、
// 長さ L の並びには streakCount が L, L-1, …, 1 のエントリがちょうど L 件生成されます。
// 期間外のアクティビティは無視されます。
func BuildEntries(activities []models.Activity, window shamsi.YearWindow, categories []models.Category) ([]models.HeatmapEntry, []models.StreakEntry) {
	byName := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byName[c.Name] = c
	}

	// (月, 日) × カテゴリごとの件数を集める
	type dayKey struct{ month, day int }
	counts := make(map[dayKey]map[string]int)
	for _, a := range activities {
		month, day, ok := window.MonthDayOf(a.Date)
		if !ok {
			continue
		}
		k := dayKey{month, day}
		if counts[k] == nil {
			counts[k] = make(map[string]int)
		}
		counts[k][string(a.Type)]++
	}

	// 出力順を決定的にするため、月・日・カテゴリ定義順で走査する
	var heatmap []models.HeatmapEntry
	for month := 0; month < 12; month++ {
		dim := shamsi.DaysInMonth(window.Year, month)
		for day := 1; day <= dim; day++ {
			dayCounts := counts[dayKey{month, day}]
			if dayCounts == nil {
				continue
			}
			for _, c := range categories {
				n := dayCounts[c.Name]
				if n == 0 || !c.CanHeatmap() {
					continue
				}
				heatmap = append(heatmap, models.HeatmapEntry{
					Year:     window.Year,
					Month:    month,
					Day:      day,
					Category: c.Name,
					Count:    n,
				})
			}
		}
	}

	// カテゴリごとに連続日の並びを組み立てる
	var streaks []models.StreakEntry
	totalDays := shamsi.DaysInYear(window.Year)
	for _, c := range categories {
		if !c.CanStreak() {
			continue
		}

		// 年内の通し日番号（0始まり）で活動日を索引化する
		active := make([]bool, totalDays)
		offset := 0
		for month := 0; month < 12; month++ {
			dim := shamsi.DaysInMonth(window.Year, month)
			for day := 1; day <= dim; day++ {
				if counts[dayKey{month, day}][c.Name] > 0 {
					active[offset] = true
				}
				offset++
			}
		}

		for start := 0; start < totalDays; start++ {
			if !active[start] || (start > 0 && active[start-1]) {
				continue
			}
			end := start
			for end+1 < totalDays && active[end+1] {
				end++
			}
			length := end - start + 1
			for i := 0; i < length; i++ {
				month, day := monthDayOfOffset(window.Year, start+i)
				streaks = append(streaks, models.StreakEntry{
					Year:        window.Year,
					Month:       month,
					Day:         day,
					Category:    c.Name,
					StreakCount: length - i,
				})
			}
			start = end
		}
	}

	return heatmap, streaks
}

// monthDayOfOffset は年初からの通し日番号（0始まり）を (month, day) に変換します。
func monthDayOfOffset(year, offset int) (month, day int) {
	for m := 0; m < 12; m++ {
		dim := shamsi.DaysInMonth(year, m)
		if offset < dim {
			return m, offset + 1
		}
		offset -= dim
	}
	// DaysInYear の範囲内で呼ばれる限り到達しません。
	return 11, shamsi.DaysInMonth(year, 11)
}
