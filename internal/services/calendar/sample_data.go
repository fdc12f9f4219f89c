package calendar

import (
	"math/rand"

	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

// SampleYear はサンプルデータの対象となるシャムシー年です。
const SampleYear = 1402

// SampleCategories はサンプルデータ用の静的なカテゴリ定義です。
var SampleCategories = []models.Category{
	{Name: "Learning", Type: models.CategoryBoth, Color: "green"},
	{Name: "Exercise", Type: models.CategoryBoth, Color: "blue"},
	{Name: "Meditation", Type: models.CategoryStreak, Color: "purple"},
	{Name: "Reading", Type: models.CategoryStreak, Color: "amber"},
	{Name: "Coding", Type: models.CategoryBoth, Color: "rose"},
	{Name: "Writing", Type: models.CategoryHeatmap, Color: "indigo"},
	{Name: "Language", Type: models.CategoryHeatmap, Color: "cyan"},
}

// SampleData はサンプル生成器の出力一式です。
type SampleData struct {
	Categories  []models.Category     `json:"categories"`
	HeatmapData []models.HeatmapEntry `json:"heatmapData"`
	StreakData  []models.StreakEntry  `json:"streakData"`
}

// GenerateSampleData はカレンダー表示用のランダムなサンプルデータを生成します。
// ライブAPIが使えない場合のフォールバック兼テストフィクスチャで、
// 乱数源を注入できるため同じシードからは同じデータが得られます。
func GenerateSampleData(r *rand.Rand) SampleData {
	return SampleData{
		Categories:  SampleCategories,
		HeatmapData: generateHeatmapData(r),
		StreakData:  generateStreakData(r),
	}
}

// generateHeatmapData は全月にわたるランダムなヒートマップエントリを生成します。
func generateHeatmapData(r *rand.Rand) []models.HeatmapEntry {
	var heatmapCategories []models.Category
	for _, c := range SampleCategories {
		if c.CanHeatmap() {
			heatmapCategories = append(heatmapCategories, c)
		}
	}

	var data []models.HeatmapEntry
	for month := 0; month < 12; month++ {
		dim := shamsi.DaysInMonth(SampleYear, month)
		for day := 1; day <= dim; day++ {
			// 空白の日を作るため一部の日をスキップする
			if r.Float64() > 0.7 {
				continue
			}
			// 1日あたり1〜3件のアクティビティ
			activitiesCount := r.Intn(3) + 1
			for i := 0; i < activitiesCount; i++ {
				category := heatmapCategories[r.Intn(len(heatmapCategories))]
				data = append(data, models.HeatmapEntry{
					Year:     SampleYear,
					Month:    month,
					Day:      day,
					Category: category.Name,
					Count:    r.Intn(15) + 1,
				})
			}
		}
	}
	return data
}

// generateStreakData は連続日のランダムなストリークを生成します。
// 生成されるストリークは必ず1つの月に収まります。
func generateStreakData(r *rand.Rand) []models.StreakEntry {
	var data []models.StreakEntry
	for _, category := range SampleCategories {
		if !category.CanStreak() {
			continue
		}
		for month := 0; month < 12; month++ {
			// 一部の月をスキップする
			if r.Float64() > 0.7 {
				continue
			}
			// 月あたり1〜3本のストリーク
			streaksCount := r.Intn(3) + 1
			for s := 0; s < streaksCount; s++ {
				streakLength := r.Intn(10) + 3 // 3〜12日
				dim := shamsi.DaysInMonth(SampleYear, month)

				maxStartDay := dim - streakLength + 1
				if maxStartDay < 1 {
					continue
				}
				startDay := r.Intn(maxStartDay) + 1

				for i := 0; i < streakLength; i++ {
					data = append(data, models.StreakEntry{
						Year:        SampleYear,
						Month:       month,
						Day:         startDay + i,
						Category:    category.Name,
						StreakCount: streakLength - i,
					})
				}
			}
		}
	}
	return data
}
