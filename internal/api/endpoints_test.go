package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

func jsonHandler(t *testing.T, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestLoginStoresToken(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"flag": true, "data": {"token": "session-token"}}`))
	defer ts.Close()

	tokens := &memTokens{}
	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Tokens: tokens}
	if err := c.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !tokens.has || tokens.token != "session-token" {
		t.Fatalf("token not stored: %+v", tokens)
	}
}

func TestLoginRejectedByBackend(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"flag": false, "data": null, "message": "bad credentials"}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Tokens: &memTokens{}}
	err := c.Login(context.Background(), "a@b.c", "wrong")
	if err == nil || !strings.Contains(err.Error(), "bad credentials") {
		t.Fatalf("expected backend rejection, got %v", err)
	}
}

func TestFetchProfileUnwrappedObject(t *testing.T) {
	t.Parallel()
	// Older backend versions return the profile bare; the hint keys claim it.
	ts := httptest.NewServer(jsonHandler(t, `{
  "unitSystem": "Metric",
  "weight": {"kg": 80},
  "height": {"cm": 175},
  "dateOfBirth": "1990-01-01",
  "gender": "male",
  "activityLevel": "moderate",
  "goal": "lose"
}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	profile, env := c.FetchProfile(context.Background())
	if !env.Success {
		t.Fatalf("fetch profile failed: %+v", env)
	}
	want := model.OnboardingProfile{
		UnitSystem:    model.UnitMetric,
		Weight:        model.Weight{Kg: 80},
		Height:        model.Height{Cm: 175},
		DateOfBirth:   "1990-01-01",
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
	}
	if diff := cmp.Diff(want, profile); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateProfileEchoesSavedProfile(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"flag": true, "data": %s}`, body)
	}))
	defer ts.Close()

	submitted := model.OnboardingProfile{
		UnitSystem:    model.UnitMetric,
		Weight:        model.Weight{Kg: 78},
		Height:        model.Height{Cm: 175},
		DateOfBirth:   "1990-01-01",
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
	}
	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	updated, err := c.UpdateProfile(context.Background(), submitted)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if diff := cmp.Diff(submitted, updated); diff != "" {
		t.Fatalf("updated profile mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateProfileRejectedByBackend(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"flag": false, "data": null, "message": "weight out of range"}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.UpdateProfile(context.Background(), model.OnboardingProfile{})
	if err == nil || !strings.Contains(err.Error(), "weight out of range") {
		t.Fatalf("expected backend rejection, got %v", err)
	}
}

func TestFetchCalendarDefaultsToEmpty(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	entries, env := c.FetchCalendar(context.Background(), 2024, 6)
	if env.Success {
		t.Fatalf("expected failure envelope")
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty default, got %v", entries)
	}
}

func TestFetchCalendarParsesEntries(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"data": [
  {"date": "2024-06-05", "log": ["0xff015724", "0xff5EDF7E"]}
]}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	entries, env := c.FetchCalendar(context.Background(), 2024, 6)
	if !env.Success {
		t.Fatalf("fetch calendar failed: %+v", env)
	}
	want := []model.CalendarEntry{{Date: "2024-06-05", Log: []string{"0xff015724", "0xff5EDF7E"}}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchWeightLogsBareArray(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `[{"weight": 80.5, "date": "2024-06-01"}]`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	resp, env := c.FetchWeightLogs(context.Background(), "Weekly", 0)
	if !env.Success {
		t.Fatalf("fetch weight logs failed: %+v", env)
	}
	if len(resp.Logs) != 1 || resp.Logs[0]["weight"] != 80.5 {
		t.Fatalf("unexpected logs: %+v", resp.Logs)
	}
}

func TestFetchWeightLogsWrappedObject(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"data": {
  "logs": [{"weight": "12", "date": "12"}],
  "startDate": "2024-06-01",
  "average": 79.4,
  "goal": 75
}}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	resp, env := c.FetchWeightLogs(context.Background(), "Weekly", -2)
	if !env.Success {
		t.Fatalf("fetch weight logs failed: %+v", env)
	}
	if len(resp.Logs) != 1 {
		t.Fatalf("expected one log, got %+v", resp.Logs)
	}
	if resp.StartDate != "2024-06-01" || resp.Average != 79.4 || resp.GoalKg != 75 {
		t.Fatalf("window metadata wrong: %+v", resp)
	}
}

func TestScanPhotoParsesResult(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(jsonHandler(t, `{"data": {
  "name": "Chicken rice", "calories": 607, "protein": 25, "carbs": 75, "fats": 22
}}`))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	result, err := c.ScanPhoto(context.Background(), strings.NewReader("img"), "lunch.jpg", "2024-06-01")
	if err != nil {
		t.Fatalf("scan photo: %v", err)
	}
	if result.Name != "Chicken rice" || result.Calories != 607 {
		t.Fatalf("unexpected scan result: %+v", result)
	}
}
