package models

import "time"

// ActivityType は分類済みイベントの種別を表します。
// 未知のイベント種別はすべて ActivityOther に分類されます。
type ActivityType string

const (
	ActivityCommit       ActivityType = "commit"
	ActivityPullRequest  ActivityType = "pull_request"
	ActivityReview       ActivityType = "review"
	ActivityStarGiven    ActivityType = "star_given"
	ActivityRepoCreation ActivityType = "repo_creation"
	ActivityForkMade     ActivityType = "fork_made"
	ActivityIssue        ActivityType = "issue"
	ActivityOther        ActivityType = "other"
)

// Activity は分類済みの単一イベントを表します。
// 分類器のみが生成し、生成後は変更されません（フェッチごとに作り直されます）。
type Activity struct {
	Date time.Time    `json:"date"`
	Type ActivityType `json:"type"`
	Repo string       `json:"repo"`
}
