package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

// Typed endpoint wrappers. Read-style fetches return their value together
// with the normalized Envelope so callers can render fallback data while
// still seeing that it is degraded. Mutations return plain errors: there is
// nothing sensible to fall back to when a write is rejected.

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPayload struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token and stores it, replacing
// any previous token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/user/login", email, password)
}

// SignUp registers a new account; the backend returns a session token
// immediately, same shape as login.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/user/signup", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	env := c.call(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, "token")
	if !env.Success {
		return fmt.Errorf("authenticate: %s", env.Err)
	}
	var payload tokenPayload
	if err := Remarshal(env.Payload, &payload); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if strings.TrimSpace(payload.Token) == "" {
		return fmt.Errorf("authenticate: no token in response")
	}
	if c.Tokens == nil {
		return fmt.Errorf("authenticate: no token store configured")
	}
	return c.Tokens.SetToken(payload.Token)
}

// Logout discards the local session. The backend keeps no session state
// beyond the token itself.
func (c *Client) Logout() error {
	if c.Tokens == nil {
		return nil
	}
	return c.Tokens.Clear()
}

// FetchProfile loads the onboarding profile used as macro-calculation input.
func (c *Client) FetchProfile(ctx context.Context) (model.OnboardingProfile, Envelope) {
	env := c.call(ctx, http.MethodGet, "/user/profile", nil, "unitSystem", "weight", "height")
	var profile model.OnboardingProfile
	if env.Success {
		if err := Remarshal(env.Payload, &profile); err != nil {
			env.Success = false
			env.Degraded = true
			env.Err = err.Error()
		}
	}
	return profile, env
}

// UpdateProfile saves edited onboarding fields, driven by the settings
// commands. The backend echoes the saved profile; fields it omits keep the
// submitted values.
func (c *Client) UpdateProfile(ctx context.Context, profile model.OnboardingProfile) (model.OnboardingProfile, error) {
	env := c.call(ctx, http.MethodPost, "/user/profile", profile, "unitSystem", "weight", "height")
	if !env.Success {
		return profile, fmt.Errorf("update profile: %s", env.Err)
	}
	updated := profile
	if err := Remarshal(env.Payload, &updated); err != nil {
		return profile, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

type calendarQuery struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// FetchCalendar returns the month's log entries. The backend posts even for
// reads; an unusable response degrades to an empty list.
func (c *Client) FetchCalendar(ctx context.Context, year, month int) ([]model.CalendarEntry, Envelope) {
	env := c.call(ctx, http.MethodPost, "/calendar/logs", calendarQuery{Year: year, Month: month})
	entries := []model.CalendarEntry{}
	if env.Success {
		if err := Remarshal(env.Payload, &entries); err != nil {
			env.Success = false
			env.Degraded = true
			env.Err = err.Error()
			entries = []model.CalendarEntry{}
		}
	}
	return entries, env
}

type weightQuery struct {
	Granularity string `json:"granularity"`
	Offset      int    `json:"offset"`
}

// WeightLogResponse keeps the raw per-entry maps: key names vary per backend
// version, so resolution happens in the metrics layer.
type WeightLogResponse struct {
	Logs      []map[string]any
	StartDate string
	Average   float64
	GoalKg    float64
}

// FetchWeightLogs loads raw weight entries for one chart window. The payload
// is either a bare array of entries or an object carrying the array plus a
// startDate anchor and an optional precomputed average.
func (c *Client) FetchWeightLogs(ctx context.Context, granularity string, offset int) (WeightLogResponse, Envelope) {
	env := c.call(ctx, http.MethodPost, "/weight/logs",
		weightQuery{Granularity: granularity, Offset: offset},
		"weight", "currentWeight", "logs")

	out := WeightLogResponse{Logs: []map[string]any{}}
	if !env.Success {
		return out, env
	}

	switch payload := env.Payload.(type) {
	case []any:
		out.Logs = entryMaps(payload)
	case map[string]any:
		for _, key := range []string{"logs", "weights", "data"} {
			if arr, ok := payload[key].([]any); ok {
				out.Logs = entryMaps(arr)
				break
			}
		}
		if s, ok := payload["startDate"].(string); ok {
			out.StartDate = s
		}
		if avg, ok := floatField(payload, "average"); ok {
			out.Average = avg
		}
		if goal, ok := floatField(payload, "goal"); ok {
			out.GoalKg = goal
		}
	}
	return out, env
}

func entryMaps(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func floatField(obj map[string]any, key string) (float64, bool) {
	v, ok := obj[key].(float64)
	return v, ok
}

type weightEntryBody struct {
	WeightKg float64 `json:"weight"`
	Date     string  `json:"date"`
}

func (c *Client) AddWeight(ctx context.Context, kg float64, date string) error {
	if kg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	env := c.call(ctx, http.MethodPost, "/weight/log", weightEntryBody{WeightKg: kg, Date: date})
	if !env.Success {
		return fmt.Errorf("add weight: %s", env.Err)
	}
	return nil
}

func (c *Client) DeleteWeight(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("weight entry id is required")
	}
	env := c.call(ctx, http.MethodDelete, "/weight/log/"+id, nil)
	if !env.Success {
		return fmt.Errorf("delete weight %s: %s", id, env.Err)
	}
	return nil
}

// FetchWaterSettings is one of the few GET endpoints on this backend.
func (c *Client) FetchWaterSettings(ctx context.Context) (model.WaterSettings, Envelope) {
	env := c.call(ctx, http.MethodGet, "/water/settings", nil, "dailyGoal", "glassSize")
	var settings model.WaterSettings
	if env.Success {
		if err := Remarshal(env.Payload, &settings); err != nil {
			env.Success = false
			env.Degraded = true
			env.Err = err.Error()
		}
	}
	return settings, env
}

type waterLogBody struct {
	AmountMl int    `json:"amount"`
	Date     string `json:"date"`
}

func (c *Client) LogWater(ctx context.Context, ml int, date string) error {
	if ml <= 0 {
		return fmt.Errorf("water amount must be > 0")
	}
	env := c.call(ctx, http.MethodPost, "/water/log", waterLogBody{AmountMl: ml, Date: date})
	if !env.Success {
		return fmt.Errorf("log water: %s", env.Err)
	}
	return nil
}

// ScanPhoto submits a food photo for recognition.
func (c *Client) ScanPhoto(ctx context.Context, file io.Reader, filename, date string) (model.ScanResult, error) {
	return c.scan(ctx, "/scan/food", file, filename, date)
}

// ScanLabel submits a nutrition-label photo for parsing.
func (c *Client) ScanLabel(ctx context.Context, file io.Reader, filename, date string) (model.ScanResult, error) {
	return c.scan(ctx, "/scan/label", file, filename, date)
}

func (c *Client) scan(ctx context.Context, path string, file io.Reader, filename, date string) (model.ScanResult, error) {
	env := c.upload(ctx, path, file, filename, date, "calories", "name")
	var result model.ScanResult
	if !env.Success {
		return result, fmt.Errorf("scan: %s", env.Err)
	}
	if err := Remarshal(env.Payload, &result); err != nil {
		return result, fmt.Errorf("scan: %w", err)
	}
	return result, nil
}
