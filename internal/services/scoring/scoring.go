// Package scoring はユーザーのパフォーマンススコアの算出を提供します。
// 純粋な計算のみでI/Oは行いません。
package scoring

import (
	"math"

	"github.com/nowruz-wrap/salnameh-backend/internal/models"
)

// 各要素の上限値です。合計の満点が100点になるように固定されています。
// バッジ表示の境界（90点以上で Exceptional など）がこの配分に依存するため、
// 変更すると表示上の評価区分が壊れます。
const (
	repoScoreCap         = 40.0
	activityScoreCap     = 20.0
	contributionScoreCap = 30.0
	followerScoreCap     = 10.0
)

// Score はパフォーマンススコアを 0〜100 の整数で返します。
// リポジトリのスター・フォーク合計、イベント件数、貢献数合計、フォロワー数の
// 重み付き和を四捨五入し、0〜100 に収めます。
func Score(followers int, repos []models.Repository, eventCount int, contributions []models.DailyContribution) int {
	starsAndForks := 0
	for _, repo := range repos {
		starsAndForks += repo.StargazersCount + repo.ForksCount
	}

	contributionTotal := 0
	for _, day := range contributions {
		contributionTotal += day.Count
	}

	repoScore := math.Min(float64(starsAndForks)/10, repoScoreCap)
	activityScore := math.Min(float64(eventCount)*2, activityScoreCap)
	contributionScore := math.Min(float64(contributionTotal)/100, contributionScoreCap)
	followerScore := math.Min(float64(followers)/10, followerScoreCap)

	total := int(math.Round(repoScore + activityScore + contributionScore + followerScore))
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}
	return total
}

// Badge はスコアに対応する評価区分を返します。
func Badge(score int) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 75:
		return "Outstanding"
	case score >= 60:
		return "Excellent"
	case score >= 40:
		return "Good"
	default:
		return "Promising"
	}
}
