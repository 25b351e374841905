package tokens

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// UsageEntry records the token spend of one completed generation request.
type UsageEntry struct {
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"request_id"`
	Model            string    `json:"model"`
	Provider         string    `json:"provider"`
	ContentType      string    `json:"content_type"` // "article" or "keywords"
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	PromptCost       float64   `json:"prompt_cost"`
	CompletionCost   float64   `json:"completion_cost"`
	TotalCost        float64   `json:"total_cost"`
}

// UsageTracker accumulates per-day token costs. Entries are optionally
// persisted to Redis; the daily aggregate lives in memory. Tracking is
// accounting only and never influences generation decisions.
type UsageTracker struct {
	redisClient *redis.Client
	keyPrefix   string
	dailyBudget float64

	mu         sync.RWMutex
	currentDay string
	dailyUsage float64
}

// NewUsageTracker creates a tracker. client may be nil, in which case entries
// are only aggregated in memory. dailyBudget of 0 disables budget reporting.
func NewUsageTracker(client *redis.Client, dailyBudget float64) *UsageTracker {
	return &UsageTracker{
		redisClient: client,
		keyPrefix:   "seoforge:usage:",
		dailyBudget: dailyBudget,
		currentDay:  time.Now().Format("2006-01-02"),
	}
}

// Cost converts a token count pair into prompt, completion, and total cost
// for the given model. Unknown models cost nothing.
func Cost(model string, promptTokens, completionTokens int) (float64, float64, float64) {
	profile, err := Lookup(model)
	if err != nil {
		return 0, 0, 0
	}
	promptCost := float64(promptTokens) / 1000 * profile.PromptCostPer1K
	completionCost := float64(completionTokens) / 1000 * profile.CompletionCostPer1K
	return promptCost, completionCost, promptCost + completionCost
}

// Record stores a usage entry and rolls it into the daily aggregate.
func (t *UsageTracker) Record(ctx context.Context, entry UsageEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.TotalCost == 0 {
		entry.PromptCost, entry.CompletionCost, entry.TotalCost =
			Cost(entry.Model, entry.PromptTokens, entry.CompletionTokens)
	}

	day := entry.Timestamp.Format("2006-01-02")

	t.mu.Lock()
	if day != t.currentDay {
		t.currentDay = day
		t.dailyUsage = 0
	}
	t.dailyUsage += entry.TotalCost
	t.mu.Unlock()

	if t.redisClient == nil {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return t.redisClient.RPush(ctx, t.keyPrefix+day, data).Err()
}

// DailyUsage returns the tracked cost for the current day.
func (t *UsageTracker) DailyUsage() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dailyUsage
}

// BudgetExceeded reports whether the daily budget, if set, has been spent.
func (t *UsageTracker) BudgetExceeded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.dailyBudget > 0 && t.dailyUsage >= t.dailyBudget
}
