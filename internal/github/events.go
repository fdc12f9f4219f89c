package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/tomnomnom/linkheader"

	"github.com/nowruz-wrap/salnameh-backend/internal/models"
)

const (
	// eventsPerPage はイベント取得の固定ページサイズです。
	eventsPerPage = 100
	// maxEventPages はページ数の上限です。上流が不整合な件数を返しても
	// 必ず停止するための防御です（GitHubのイベントフィード自体も300件で打ち切られます）。
	maxEventPages = 10
)

// activityTypeByEvent は上流の生イベント種別から意味的なアクティビティ種別への
// 固定の対応表です。表にない種別はすべて other になります。
var activityTypeByEvent = map[string]models.ActivityType{
	"PushEvent":              models.ActivityCommit,
	"PullRequestEvent":       models.ActivityPullRequest,
	"PullRequestReviewEvent": models.ActivityReview,
	"WatchEvent":             models.ActivityStarGiven,
	"CreateEvent":            models.ActivityRepoCreation,
	"ForkEvent":              models.ActivityForkMade,
	"IssueCommentEvent":      models.ActivityIssue,
}

// ClassifyEvent は生のイベント種別をアクティビティ種別に変換します。
func ClassifyEvent(rawType string) models.ActivityType {
	if t, ok := activityTypeByEvent[rawType]; ok {
		return t
	}
	return models.ActivityOther
}

// rawEvent は上流イベントAPIのレスポンスのうち必要なフィールドだけを写します。
type rawEvent struct {
	Type string `json:"type"`
	Repo struct {
		Name string `json:"name"`
	} `json:"repo"`
	CreatedAt time.Time `json:"created_at"`
}

// FetchActivities はユーザーのイベント履歴をすべてページングで取得し、
// 設定された期間に絞り込んだうえで分類済みアクティビティの列を返します。
// 上流のエラー時は部分的な結果を返さず、単一の *FetchError を返します。
func (s *Service) FetchActivities(ctx context.Context, username string) ([]models.Activity, error) {
	raw, err := s.fetchAllEvents(ctx, username)
	if err != nil {
		return nil, err
	}

	activities := make([]models.Activity, 0, len(raw))
	for _, ev := range raw {
		if !s.window.Contains(ev.CreatedAt) {
			continue
		}
		activities = append(activities, models.Activity{
			Date: ev.CreatedAt,
			Type: ClassifyEvent(ev.Type),
			Repo: ev.Repo.Name,
		})
	}
	log.Printf("GitHubService Info: ユーザー '%s' のイベント %d 件中 %d 件が期間内でした。", username, len(raw), len(activities))
	return activities, nil
}

// fetchAllEvents はイベントエンドポイントを順にページングします。
// トークンがあれば認証付きエンドポイント、無ければ公開エンドポイントを使います。
// ページは直前のページが満杯（eventsPerPage 件）だった間だけ進み、
// 上流が Link ヘッダーを返す場合は rel="next" の有無も併せて終端を判定します。
func (s *Service) fetchAllEvents(ctx context.Context, username string) ([]rawEvent, error) {
	endpoint := fmt.Sprintf("%s/users/%s/events/public", s.apiBaseURL, username)
	if s.token != "" {
		endpoint = fmt.Sprintf("%s/users/%s/events", s.apiBaseURL, username)
	}

	var all []rawEvent
	for page := 1; page <= maxEventPages; page++ {
		url := fmt.Sprintf("%s?per_page=%d&page=%d", endpoint, eventsPerPage, page)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &FetchError{Op: "fetch events", Err: err}
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, &FetchError{Op: "fetch events", Err: err}
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &FetchError{Op: "fetch events", Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			log.Printf("GitHubService Error: イベント取得でステータス %d が返されました: %s", resp.StatusCode, string(body))
			return nil, &FetchError{Op: "fetch events", StatusCode: resp.StatusCode}
		}

		var events []rawEvent
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, &FetchError{Op: "parse events", Err: err}
		}
		all = append(all, events...)

		if len(events) < eventsPerPage {
			break
		}
		if link := resp.Header.Get("Link"); link != "" {
			if next := linkheader.Parse(link).FilterByRel("next"); len(next) == 0 {
				break
			}
		}
	}
	return all, nil
}
