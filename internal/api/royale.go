package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"royale-tracker/internal/config"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// BattleTimeLayout is the upstream battle-log timestamp format.
const BattleTimeLayout = "20060102T150405.000Z"

// Error carries the upstream HTTP status so callers can distinguish an
// unknown player tag from rate limiting or infrastructure failure.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("battle API error: %d - %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is an upstream 404, i.e. an invalid tag.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusNotFound
}

// IsRateLimited reports whether err looks like upstream throttling, either
// by status code or by message content, since errors may cross component
// boundaries as plain strings.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests")
}

type RoyaleClient struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoyaleClient(cfg *config.Config) *RoyaleClient {
	return &RoyaleClient{
		apiKey:  cfg.RoyaleAPIKey,
		baseURL: strings.TrimSuffix(cfg.RoyaleAPIBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *RoyaleClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RoyaleClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("Retry-After")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetPlayerInfo returns profile metadata for a player tag.
func (c *RoyaleClient) GetPlayerInfo(ctx context.Context, tag string) (*Player, error) {
	// PathEscape converts the leading # to %23
	u := fmt.Sprintf("%s/players/%s", c.baseURL, url.PathEscape(tag))
	return doRequest[Player](ctx, c, u)
}

// GetPlayerBattleLog returns the player's recent battles, most recent first.
func (c *RoyaleClient) GetPlayerBattleLog(ctx context.Context, tag string) ([]Battle, error) {
	u := fmt.Sprintf("%s/players/%s/battlelog", c.baseURL, url.PathEscape(tag))
	battles, err := doRequest[[]Battle](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *battles, nil
}

func doRequest[T any](ctx context.Context, client *RoyaleClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("Content-Type", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		body := resp.Body()
		if len(body) > 256 {
			body = body[:256]
		}
		return nil, &Error{StatusCode: resp.StatusCode(), Body: string(body)}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type Player struct {
	Tag            string `json:"tag"`
	Name           string `json:"name"`
	ExpLevel       int    `json:"expLevel"`
	Trophies       int    `json:"trophies"`
	BestTrophies   int    `json:"bestTrophies"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
	BattleCount    int    `json:"battleCount"`
	ThreeCrownWins int    `json:"threeCrownWins"`
	Arena          struct {
		Name string `json:"name"`
	} `json:"arena"`
}

type Battle struct {
	Type       string `json:"type"`
	BattleTime string `json:"battleTime"`
	GameMode   struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"gameMode"`
	Arena struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"arena"`
	Team               []BattleParticipant `json:"team"`
	Opponent           []BattleParticipant `json:"opponent"`
	DeckSelection      string              `json:"deckSelection"`
	IsLadderTournament bool                `json:"isLadderTournament"`
	IsHostedMatch      bool                `json:"isHostedMatch"`
}

type BattleParticipant struct {
	Tag    string `json:"tag"`
	Name   string `json:"name"`
	Crowns int    `json:"crowns"`
}

// ParseBattleTime parses an upstream battle timestamp into UTC.
func ParseBattleTime(s string) (time.Time, error) {
	t, err := time.Parse(BattleTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid battle time %q: %w", s, err)
	}
	return t.UTC(), nil
}
