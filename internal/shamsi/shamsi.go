// Package shamsi はシャムシー暦（ペルシャ太陽暦）の暦計算を提供します。
// 純粋関数のみで、外部依存はありません。
package shamsi

import (
	"fmt"
	"time"
)

// MonthNames はシャムシー暦の月名（ラテン文字表記）です。
var MonthNames = []string{
	"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar",
	"Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand",
}

// MonthNamesPersian はシャムシー暦の月名（ペルシャ文字表記）です。
var MonthNamesPersian = []string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// WeekdayNames は曜日名の略記（ラテン文字）です。週は土曜（Shanbeh）始まりです。
var WeekdayNames = []string{"Sh", "Ye", "Do", "Se", "Ch", "Pa", "Jo"}

// WeekdayNamesPersian は曜日名の略記（ペルシャ文字）です。
var WeekdayNamesPersian = []string{"ش", "ی", "د", "س", "چ", "پ", "ج"}

// leapRemainders は33年周期のうち閏年となる剰余の集合です。
var leapRemainders = map[int]bool{
	1: true, 5: true, 9: true, 13: true, 17: true, 22: true, 26: true, 30: true,
}

// IsLeapYear は year がシャムシー暦の閏年かどうかを返します。
// 33年周期による近似であり、天文学的に厳密ではありません。
func IsLeapYear(year int) bool {
	r := year % 33
	if r < 0 {
		r += 33
	}
	return leapRemainders[r]
}

// DaysInMonth は月の日数を返します。month は 0〜11（0 = Farvardin）。
// 最初の6ヶ月は31日、次の5ヶ月は30日、最終月（Esfand）は平年29日・閏年30日です。
// 範囲外の month に対する動作は未定義で、呼び出し側が保証します。
func DaysInMonth(year, month int) int {
	if month < 6 {
		return 31
	}
	if month < 11 {
		return 30
	}
	if IsLeapYear(year) {
		return 30
	}
	return 29
}

// FirstWeekdayOfMonth は月初日の曜日オフセット（0 = 土曜）を返します。
// NOTE: これは正式なジャラーリー・グレゴリオ変換ではなく、表示用の簡易式です。
// 実際の暦との整合が必要な場合は正しい変換アルゴリズムに置き換えてください。
func FirstWeekdayOfMonth(year, month int) int {
	return ((year%4)*2 + month) % 7
}

// DaysInYear は1年の総日数を返します。
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// FormatDate はシャムシー暦の日付を "YYYY/M/D" 形式の文字列にします。
// month は内部表現（0始まり）を受け取り、表示では1始まりになります。
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%d/%d/%d", year, month+1, day)
}

// YearWindow は1シャムシー年に対応するグレゴリオ暦の期間です。
// From は元日（Farvardin 1）、To は大晦日で、どちらもその日全体を含みます。
type YearWindow struct {
	Year int
	From time.Time
	To   time.Time
}

// NewYearWindow は指定したグレゴリオ暦の時刻を含むシャムシー年の期間を返します。
// 元日は3月21日に固定した近似です（実際のノウルーズは年により3月20日・21日）。
func NewYearWindow(now time.Time) YearWindow {
	y := now.UTC().Year()
	start := time.Date(y, time.March, 21, 0, 0, 0, 0, time.UTC)
	if now.Before(start) {
		y--
		start = time.Date(y, time.March, 21, 0, 0, 0, 0, time.UTC)
	}
	return YearWindow{
		Year: y - 621,
		From: start,
		To:   time.Date(y+1, time.March, 20, 0, 0, 0, 0, time.UTC),
	}
}

// Contains は t が期間内（To の日全体を含む）かどうかを返します。
func (w YearWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.From) && t.Before(w.To.AddDate(0, 0, 1))
}

// MonthDayOf は期間内のグレゴリオ暦日付をシャムシー暦の (month, day) に割り当てます。
// 元日からの経過日数を月の日数で順に消化していくため、期間設定が正しければ
// 期間内の日付については正確です。期間外の日付には ok=false を返します。
func (w YearWindow) MonthDayOf(t time.Time) (month, day int, ok bool) {
	if !w.Contains(t) {
		return 0, 0, false
	}
	t = t.UTC()
	from := time.Date(w.From.Year(), w.From.Month(), w.From.Day(), 0, 0, 0, 0, time.UTC)
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(date.Sub(from).Hours() / 24)

	for m := 0; m < 12; m++ {
		dim := DaysInMonth(w.Year, m)
		if offset < dim {
			return m, offset + 1, true
		}
		offset -= dim
	}
	// 期間がシャムシー年の日数より長く設定されている場合のみ到達します。
	return 0, 0, false
}
