package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestGetDailyContributions はGraphQLレスポンスの週・日の平坦化をテストします。
func TestGetDailyContributions(t *testing.T) {
	var gotBody graphQLQuery
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/graphql" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(`{
			"data": {
				"user": {
					"contributionsCollection": {
						"contributionCalendar": {
							"weeks": [
								{"contributionDays": [
									{"date": "2024-06-01", "contributionCount": 3},
									{"date": "2024-06-02", "contributionCount": 0}
								]},
								{"contributionDays": [
									{"date": "2024-06-03", "contributionCount": 7}
								]}
							]
						}
					}
				}
			}
		}`))
	}))
	defer server.Close()

	s := newTestService(t, server, "")
	daily, err := s.GetDailyContributions(context.Background(), "someone")
	if err != nil {
		t.Fatalf("GetDailyContributions failed: %v", err)
	}

	if len(daily) != 3 {
		t.Fatalf("expected 3 daily entries, got %d", len(daily))
	}
	if daily[0].Date != "2024-06-01" || daily[0].Count != 3 {
		t.Errorf("unexpected first entry: %+v", daily[0])
	}
	if daily[2].Date != "2024-06-03" || daily[2].Count != 7 {
		t.Errorf("unexpected last entry: %+v", daily[2])
	}

	// クエリ変数に設定済みの期間が入っていることを確認
	if gotBody.Variables.Name != "someone" {
		t.Errorf("expected variable name %q, got %q", "someone", gotBody.Variables.Name)
	}
	wantFrom := testWindow().From.Format(time.RFC3339)
	if gotBody.Variables.From != wantFrom {
		t.Errorf("expected variable from %q, got %q", wantFrom, gotBody.Variables.From)
	}
}

// TestGetDailyContributions_NullUser は user が null の場合に
// エラーではなく空の結果になることをテストします。
func TestGetDailyContributions_NullUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"user": null}}`))
	}))
	defer server.Close()

	s := newTestService(t, server, "")
	daily, err := s.GetDailyContributions(context.Background(), "no-such-user")
	if err != nil {
		t.Fatalf("expected no error for null user, got %v", err)
	}
	if len(daily) != 0 {
		t.Errorf("expected empty result, got %d entries", len(daily))
	}
}

// TestGetDailyContributions_GraphQLError はGraphQLエラーが *FetchError に
// なることをテストします。
func TestGetDailyContributions_GraphQLError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"user": null}, "errors": [{"message": "Something went wrong"}]}`))
	}))
	defer server.Close()

	s := newTestService(t, server, "")
	if _, err := s.GetDailyContributions(context.Background(), "someone"); err == nil {
		t.Fatal("expected an error for a GraphQL error response")
	}
}

// TestValidateToken は /user 呼び出しによるトークン検証をテストします。
func TestValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"login": "someone"}`))
	}))
	defer server.Close()

	s := newTestService(t, server, "gho_testtoken")
	login, err := s.ValidateToken(context.Background())
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if login != "someone" {
		t.Errorf("expected login %q, got %q", "someone", login)
	}
}

// TestValidateToken_Invalid は無効なトークンがエラーになることをテストします。
func TestValidateToken_Invalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	s := newTestService(t, server, "gho_badtoken")
	if _, err := s.ValidateToken(context.Background()); err == nil {
		t.Fatal("expected an error for an invalid token")
	}
}

// TestFetchUserData は全データの取り込みとスコア算出の結合動作をテストします。
func TestFetchUserData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/someone", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"login": "someone",
			"name": "Someone",
			"avatar_url": "https://example.com/a.png",
			"bio": "hello",
			"followers": 50,
			"following": 10,
			"public_repos": 12,
			"created_at": "2015-01-01T00:00:00Z"
		}`))
	})
	mux.HandleFunc("/users/someone/repos", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sort"); got != "updated" {
			t.Errorf("expected sort=updated, got %q", got)
		}
		w.Write([]byte(`[
			{"id": 1, "name": "salnameh", "language": "Go", "stargazers_count": 30, "forks_count": 10, "html_url": "https://example.com/r1"},
			{"id": 2, "name": "wrap", "language": "Go", "stargazers_count": 60, "forks_count": 0, "html_url": "https://example.com/r2"}
		]`))
	})
	mux.HandleFunc("/users/someone/events/public", func(w http.ResponseWriter, r *http.Request) {
		events := []map[string]interface{}{
			eventJSON("PushEvent", "someone/salnameh", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
			eventJSON("WatchEvent", "someone/wrap", time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)),
		}
		json.NewEncoder(w).Encode(events)
	})
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": {"user": {"contributionsCollection": {"contributionCalendar": {"weeks": [
				{"contributionDays": [{"date": "2024-06-01", "contributionCount": 300}]}
			]}}}}
		}`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	s := newTestService(t, server, "")
	data, err := s.FetchUserData(context.Background(), "someone")
	if err != nil {
		t.Fatalf("FetchUserData failed: %v", err)
	}

	if data.Profile.Login != "someone" || data.Profile.Followers != 50 {
		t.Errorf("unexpected profile: %+v", data.Profile)
	}
	if len(data.TopRepositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(data.TopRepositories))
	}
	if len(data.RecentActivity) != 2 {
		t.Fatalf("expected 2 recent activities, got %d", len(data.RecentActivity))
	}
	if data.Languages["Go"] != 2 {
		t.Errorf("expected 2 Go repos in languages, got %d", data.Languages["Go"])
	}
	// repoScore = min(100/10, 40) = 10, activityScore = min(2*2, 20) = 4,
	// contributionScore = min(300/100, 30) = 3, followerScore = min(50/10, 10) = 5
	if data.PerformanceScore != 22 {
		t.Errorf("expected performance score 22, got %d", data.PerformanceScore)
	}
}
