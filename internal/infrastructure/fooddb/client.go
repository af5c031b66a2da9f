// Package fooddb talks to the external food-composition database used to
// categorize ingredient names the static keyword tables don't know.
package fooddb

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prepsense/backend/internal/domain"
)

// Client implements domain.FoodDataSource against the food database's HTTP
// API. Requests are rate limited client-side and retried on transient
// failures.
type Client struct {
	http        *resty.Client
	apiKey      string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// searchResponse is the wire shape of the food search endpoint
type searchResponse struct {
	Foods []struct {
		Description  string `json:"description"`
		FoodCategory string `json:"foodCategory"`
	} `json:"foods"`
	TotalHits int `json:"totalHits"`
}

// NewClient creates a food database client. requestsPerHour is the API
// quota (typically 1000); the limiter keeps us under it with a small burst.
// Zero or negative falls back to the 1000/hour default.
func NewClient(apiKey, baseURL string, requestsPerHour int, logger *zap.Logger) *Client {
	if requestsPerHour <= 0 {
		requestsPerHour = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "PrepSense/1.0").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:        httpClient,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600.0), 10),
		logger:      logger,
	}
}

// CategoryFor looks up the food group for an ingredient name and maps it to
// an internal category. Returns domain.ErrCategoryNotFound when the database
// has no entry for the name.
func (c *Client) CategoryFor(ctx context.Context, name string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	var result searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    name,
			"api_key":  c.apiKey,
			"pageSize": "1",
		}).
		SetResult(&result).
		Get("/v1/foods/search")
	if err != nil {
		c.logger.Warn("food database request failed", zap.String("name", name), zap.Error(err))
		return "", fmt.Errorf("%w: %v", domain.ErrFoodDataUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return "", domain.ErrCategoryNotFound
	case resp.StatusCode() != http.StatusOK:
		c.logger.Warn("food database returned error status",
			zap.String("name", name),
			zap.Int("status", resp.StatusCode()),
		)
		return "", fmt.Errorf("%w: status %d", domain.ErrFoodDataUnavailable, resp.StatusCode())
	}

	if len(result.Foods) == 0 {
		return "", domain.ErrCategoryNotFound
	}

	category, ok := MapFoodGroup(result.Foods[0].FoodCategory)
	if !ok {
		c.logger.Debug("unmapped food group",
			zap.String("name", name),
			zap.String("foodGroup", result.Foods[0].FoodCategory),
		)
		return "", domain.ErrCategoryNotFound
	}
	return category, nil
}
