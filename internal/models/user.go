package models

// UserProfile は上流APIのユーザー情報をそのまま写した読み取り専用の構造体です。
// フェッチごとに作り直され、ローカルでは変更されません。
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatarUrl"`
	Bio         string `json:"bio"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"publicRepos"`
	CreatedAt   string `json:"createdAt"`
}

// Repository は上流APIのリポジトリ情報を写した読み取り専用の構造体です。
type Repository struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazersCount"`
	ForksCount      int    `json:"forksCount"`
	UpdatedAt       string `json:"updatedAt"`
	URL             string `json:"url"`
}

// DailyContribution は1日分の貢献数を表します。
type DailyContribution struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserData はストーリー表示用の全データをまとめたレスポンス構造体です。
type UserData struct {
	Profile               UserProfile         `json:"profile"`
	TopRepositories       []Repository        `json:"topRepositories"`
	RecentActivity        []Activity          `json:"recentActivity"`
	ContributionsLastYear []DailyContribution `json:"contributionsLastYear"`
	Languages             map[string]int      `json:"languages"`
	PerformanceScore      int                 `json:"performanceScore"`
}
