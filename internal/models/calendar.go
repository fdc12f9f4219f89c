package models

// CategoryType はカテゴリがヒートマップ・ストリークのどちらの表示に使えるかを表します。
type CategoryType string

const (
	CategoryHeatmap CategoryType = "Heatmap"
	CategoryStreak  CategoryType = "Streak"
	CategoryBoth    CategoryType = "Both"
)

// Category はカレンダー表示用の静的なカテゴリ定義です。派生データではありません。
type Category struct {
	Name  string       `json:"name"`
	Type  CategoryType `json:"type"`
	Color string       `json:"color"`
}

// CanHeatmap はこのカテゴリがヒートマップ表示に使えるかを返します。
func (c Category) CanHeatmap() bool {
	return c.Type == CategoryHeatmap || c.Type == CategoryBoth
}

// CanStreak はこのカテゴリがストリーク表示に使えるかを返します。
func (c Category) CanStreak() bool {
	return c.Type == CategoryStreak || c.Type == CategoryBoth
}

// HeatmapEntry は特定の日のカテゴリ別アクティビティ件数です。
// 同じ (year, month, day) に複数エントリが存在でき、日の強度は count の合計で決まります。
// month は 0 始まり（0 = Farvardin）、day は 1 始まりです。
type HeatmapEntry struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// StreakEntry は連続日ストリークの1日分を表します。
// 同一カテゴリの連続した日の並びでは、streakCount が1日進むごとにちょうど1ずつ減り、
// 最終日は必ず 1 になります（先頭日がストリークの全長を持ちます）。
type StreakEntry struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	Category    string `json:"category"`
	StreakCount int    `json:"streakCount"`
}
