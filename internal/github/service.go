package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	gogithub "github.com/google/go-github/v59/github"

	"github.com/nowruz-wrap/salnameh-backend/internal/models"
	"github.com/nowruz-wrap/salnameh-backend/internal/services/scoring"
)

// topRepoCount はストーリー表示に使う上位リポジトリの件数です。
const topRepoCount = 5

// recentActivityCount はストーリー表示に使う直近アクティビティの件数です。
const recentActivityCount = 10

// GetUserProfile はユーザーのプロフィールを取得します。
func (s *Service) GetUserProfile(ctx context.Context, username string) (models.UserProfile, error) {
	user, resp, err := s.rest.Users.Get(ctx, username)
	if err != nil {
		return models.UserProfile{}, &FetchError{Op: "fetch user", StatusCode: statusOf(resp), Err: err}
	}
	return models.UserProfile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		PublicRepos: user.GetPublicRepos(),
		CreatedAt:   user.GetCreatedAt().Format(time.RFC3339),
	}, nil
}

// GetTopRepositories は更新日時順の上位リポジトリを取得します。
func (s *Service) GetTopRepositories(ctx context.Context, username string) ([]models.Repository, error) {
	opts := &gogithub.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gogithub.ListOptions{PerPage: topRepoCount},
	}
	repos, resp, err := s.rest.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, &FetchError{Op: "fetch repos", StatusCode: statusOf(resp), Err: err}
	}

	result := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, models.Repository{
			ID:              repo.GetID(),
			Name:            repo.GetName(),
			Description:     repo.GetDescription(),
			Language:        repo.GetLanguage(),
			StargazersCount: repo.GetStargazersCount(),
			ForksCount:      repo.GetForksCount(),
			UpdatedAt:       repo.GetUpdatedAt().Format(time.RFC3339),
			URL:             repo.GetHTMLURL(),
		})
	}
	return result, nil
}

// graphQLQuery はGraphQLリクエストボディの構造です。
type graphQLQuery struct {
	Query     string           `json:"query"`
	Variables graphQLVariables `json:"variables"`
}

// graphQLVariables はGraphQLクエリの変数です。
type graphQLVariables struct {
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// contributionsResponse はGitHub GraphQL APIレスポンスの必要部分です。
// user 以下は null になり得るためポインタにしています。
type contributionsResponse struct {
	Data struct {
		User *struct {
			ContributionsCollection *struct {
				ContributionCalendar *struct {
					Weeks []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GetDailyContributions は設定された期間の日別貢献数をGraphQL APIから取得します。
func (s *Service) GetDailyContributions(ctx context.Context, username string) ([]models.DailyContribution, error) {
	// 日ごとのContribution数を取得するためのクエリ
	query := `
		query ($name: String!, $from: DateTime!, $to: DateTime!) {
			user(login: $name) {
				contributionsCollection(from: $from, to: $to) {
					contributionCalendar {
						weeks {
							contributionDays {
								date
								contributionCount
							}
						}
					}
				}
			}
		}
	`

	requestBody, err := json.Marshal(graphQLQuery{
		Query: query,
		Variables: graphQLVariables{
			Name: username,
			From: s.window.From.Format(time.RFC3339),
			To:   s.window.To.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, &FetchError{Op: "fetch contributions", Err: fmt.Errorf("リクエストボディのJSONエンコードに失敗しました: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.graphqlURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, &FetchError{Op: "fetch contributions", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "fetch contributions", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "fetch contributions", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("GitHubService Error: GraphQL APIがステータス %d を返しました: %s", resp.StatusCode, string(body))
		return nil, &FetchError{Op: "fetch contributions", StatusCode: resp.StatusCode}
	}

	var gqlResp contributionsResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, &FetchError{Op: "parse contributions", Err: err}
	}
	if len(gqlResp.Errors) > 0 {
		return nil, &FetchError{Op: "fetch contributions", Err: fmt.Errorf("GraphQLエラー: %s", gqlResp.Errors[0].Message)}
	}

	// user が null の場合は貢献データなしとして空を返す
	if gqlResp.Data.User == nil ||
		gqlResp.Data.User.ContributionsCollection == nil ||
		gqlResp.Data.User.ContributionsCollection.ContributionCalendar == nil {
		log.Printf("GitHubService Info: ユーザー '%s' の貢献データが見つかりませんでした。", username)
		return []models.DailyContribution{}, nil
	}

	var daily []models.DailyContribution
	for _, week := range gqlResp.Data.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			daily = append(daily, models.DailyContribution{
				Date:  day.Date,
				Count: day.ContributionCount,
			})
		}
	}
	return daily, nil
}

// ComputeLanguages はリポジトリの主要言語を集計します。
func ComputeLanguages(repos []models.Repository) map[string]int {
	languages := make(map[string]int)
	for _, repo := range repos {
		if repo.Language != "" {
			languages[repo.Language]++
		}
	}
	return languages
}

// FetchUserData はストーリー表示に必要な全データを取得してまとめます。
// 上流の呼び出しは順次行い、いずれかが失敗した時点で単一のエラーを返します。
func (s *Service) FetchUserData(ctx context.Context, username string) (*models.UserData, error) {
	profile, err := s.GetUserProfile(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := s.GetTopRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	activities, err := s.FetchActivities(ctx, username)
	if err != nil {
		return nil, err
	}
	recent := activities
	if len(recent) > recentActivityCount {
		recent = recent[:recentActivityCount]
	}

	contributions, err := s.GetDailyContributions(ctx, username)
	if err != nil {
		return nil, err
	}

	return &models.UserData{
		Profile:               profile,
		TopRepositories:       repos,
		RecentActivity:        recent,
		ContributionsLastYear: contributions,
		Languages:             ComputeLanguages(repos),
		PerformanceScore:      scoring.Score(profile.Followers, repos, len(recent), contributions),
	}, nil
}

// ValidateToken はトークンで認証済みの /user 呼び出しを1回行い、
// トークンが有効ならログイン名を返します。
func (s *Service) ValidateToken(ctx context.Context) (string, error) {
	user, resp, err := s.rest.Users.Get(ctx, "")
	if err != nil {
		return "", &FetchError{Op: "validate token", StatusCode: statusOf(resp), Err: err}
	}
	return user.GetLogin(), nil
}
