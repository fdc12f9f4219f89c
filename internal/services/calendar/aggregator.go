// Package calendar はヒートマップ・ストリークの集計ロジックを提供します。
// 分類済みアクティビティ（またはサンプルデータ生成器）からエントリを作り、
// 12ヶ月グリッドの描画用メタデータまでを純粋な計算で導出します。
package calendar

import (
	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/shamsi"
)

// Intensity は同じ日のエントリ群の count 合計を 0〜4 の強度バケットに写します。
// しきい値は {0, 1-2, 3-5, 6-10, 11以上} です。
func Intensity(entries []models.HeatmapEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	switch {
	case total == 0:
		return 0
	case total <= 2:
		return 1
	case total <= 5:
		return 2
	case total <= 10:
		return 3
	default:
		return 4
	}
}

// StreakInfo は特定の日のストリーク描画情報です。
// PrevDayInStreak / NextDayInStreak は前後の日が同じストリークの続きかどうかを表し、
// 表示上の帯の連結にのみ使われます。
type StreakInfo struct {
	Category        string `json:"category"`
	StreakCount     int    `json:"streakCount"`
	PrevDayInStreak bool   `json:"prevDayInStreak"`
	NextDayInStreak bool   `json:"nextDayInStreak"`
}

// ResolveStreak はある日に表示するストリークを決定します。
// 同じ日に複数のストリークがある場合は streakCount が最大のものを選びます
// （同値の場合は入力順で先のものが勝ち、結果は決定的です）。
// 前日・翌日との連結は「同じカテゴリかつ streakCount がちょうど ±1」で判定します。
// 月境界は day 0 と daysInMonth+1 を「存在しない日」として扱います。
func ResolveStreak(streaks []models.StreakEntry, year, month, day int) *StreakInfo {
	dayStreaks := streaksFor(streaks, year, month, day)
	if len(dayStreaks) == 0 {
		return nil
	}

	longest := dayStreaks[0]
	for _, s := range dayStreaks[1:] {
		if s.StreakCount > longest.StreakCount {
			longest = s
		}
	}

	prevInStreak := false
	if day-1 >= 1 {
		for _, s := range streaksFor(streaks, year, month, day-1) {
			if s.Category == longest.Category && s.StreakCount == longest.StreakCount+1 {
				prevInStreak = true
				break
			}
		}
	}

	nextInStreak := false
	if day+1 <= shamsi.DaysInMonth(year, month) {
		for _, s := range streaksFor(streaks, year, month, day+1) {
			if s.Category == longest.Category && s.StreakCount == longest.StreakCount-1 {
				nextInStreak = true
				break
			}
		}
	}

	return &StreakInfo{
		Category:        longest.Category,
		StreakCount:     longest.StreakCount,
		PrevDayInStreak: prevInStreak,
		NextDayInStreak: nextInStreak,
	}
}

// streaksFor は指定した日のストリークエントリを入力順のまま返します。
func streaksFor(streaks []models.StreakEntry, year, month, day int) []models.StreakEntry {
	var result []models.StreakEntry
	for _, s := range streaks {
		if s.Year == year && s.Month == month && s.Day == day {
			result = append(result, s)
		}
	}
	return result
}

// FilterHeatmap はカテゴリ名の集合でヒートマップエントリを絞り込みます。
// 集計の前に適用する純粋な集合判定で、同じ集合で繰り返し適用しても結果は変わりません。
func FilterHeatmap(entries []models.HeatmapEntry, include map[string]bool) []models.HeatmapEntry {
	result := make([]models.HeatmapEntry, 0, len(entries))
	for _, e := range entries {
		if include[e.Category] {
			result = append(result, e)
		}
	}
	return result
}

// FilterStreaks はカテゴリ名の集合でストリークエントリを絞り込みます。
func FilterStreaks(entries []models.StreakEntry, include map[string]bool) []models.StreakEntry {
	result := make([]models.StreakEntry, 0, len(entries))
	for _, e := range entries {
		if include[e.Category] {
			result = append(result, e)
		}
	}
	return result
}

// DayCell は1日分の描画メタデータです。
type DayCell struct {
	Day       int         `json:"day"`
	Count     int         `json:"count"`
	Intensity int         `json:"intensity"`
	Streak    *StreakInfo `json:"streak,omitempty"`
}

// MonthGrid は1ヶ月分のグリッドです。
type MonthGrid struct {
	Month        int       `json:"month"`
	Name         string    `json:"name"`
	PersianName  string    `json:"persianName"`
	DaysInMonth  int       `json:"daysInMonth"`
	FirstWeekday int       `json:"firstWeekday"`
	Days         []DayCell `json:"days"`
}

// YearGrid は12ヶ月グリッド全体の描画メタデータです。
type YearGrid struct {
	Year   int         `json:"year"`
	Months []MonthGrid `json:"months"`
}

// BuildYear はエントリ群から指定年の12ヶ月グリッドを組み立てます。
func BuildYear(heatmap []models.HeatmapEntry, streaks []models.StreakEntry, year int) YearGrid {
	// 日ごとのヒートマップエントリを先に索引化しておく
	type dayKey struct{ month, day int }
	byDay := make(map[dayKey][]models.HeatmapEntry)
	for _, e := range heatmap {
		if e.Year != year {
			continue
		}
		k := dayKey{e.Month, e.Day}
		byDay[k] = append(byDay[k], e)
	}

	grid := YearGrid{Year: year, Months: make([]MonthGrid, 0, 12)}
	for month := 0; month < 12; month++ {
		dim := shamsi.DaysInMonth(year, month)
		mg := MonthGrid{
			Month:        month,
			Name:         shamsi.MonthNames[month],
			PersianName:  shamsi.MonthNamesPersian[month],
			DaysInMonth:  dim,
			FirstWeekday: shamsi.FirstWeekdayOfMonth(year, month),
			Days:         make([]DayCell, 0, dim),
		}
		for day := 1; day <= dim; day++ {
			entries := byDay[dayKey{month, day}]
			count := 0
			for _, e := range entries {
				count += e.Count
			}
			mg.Days = append(mg.Days, DayCell{
				Day:       day,
				Count:     count,
				Intensity: Intensity(entries),
				Streak:    ResolveStreak(streaks, year, month, day),
			})
		}
		grid.Months = append(grid.Months, mg)
	}
	return grid
}
