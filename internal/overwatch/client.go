package overwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// APIClient is the HTTP client for the stats API. It implements the StatsClient interface.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	BaseURL    string
}

// NewClient creates a new stats client. Outbound requests are limited to ratePerSec
// and each request is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration, ratePerSec float64) StatsClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
		BaseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Ensure APIClient implements the StatsClient interface.
var _ StatsClient = (*APIClient)(nil)

// FetchStats fetches the complete stats document for an account handle such as "Name#1234".
func (c *APIClient) FetchStats(ctx context.Context, platform, region, accountHandle string) (StatsDocument, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return StatsDocument{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/stats/%s/%s/%s/complete", c.BaseURL, platform, region, url.PathEscape(ConvertHandle(accountHandle)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StatsDocument{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "SquadupGoClient/1.0")

	log.Debug("Requesting player stats", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StatsDocument{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return StatsDocument{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, accountHandle)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error("Received non-OK HTTP status from stats API", "status", resp.StatusCode, "body", string(body))
		return StatsDocument{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var statsResp statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&statsResp); err != nil {
		return StatsDocument{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return statsResp.toDocument()
}

func (r statsResponse) toDocument() (StatsDocument, error) {
	if r.Profile == nil {
		return StatsDocument{}, fmt.Errorf("%w: missing profile", ErrIncompleteStats)
	}
	if r.Quickplay == nil || r.Quickplay.Global == nil {
		return StatsDocument{}, fmt.Errorf("%w: missing quickplay totals", ErrIncompleteStats)
	}

	doc := StatsDocument{
		Profile: Profile{
			Nick:   r.Profile.Nick,
			Level:  r.Profile.Level,
			Tier:   r.Profile.Tier,
			Avatar: r.Profile.Avatar,
		},
		Global: GlobalStats{
			Eliminations: r.Quickplay.Global.Eliminations,
			Deaths:       r.Quickplay.Global.Deaths,
			GamesWon:     r.Quickplay.Global.GamesWon,
			TimePlayed:   r.Quickplay.Global.TimePlayed,
			MedalsGold:   r.Quickplay.Global.MedalsGold,
			MedalsSilver: r.Quickplay.Global.MedalsSilver,
			MedalsBronze: r.Quickplay.Global.MedalsBronze,
		},
		Heroes: make(map[string]HeroStats, len(r.Quickplay.Heroes)),
	}
	for name, h := range r.Quickplay.Heroes {
		// the API keys heroes in lower case, but not every mirror does
		doc.Heroes[strings.ToLower(name)] = HeroStats{TimePlayed: h.TimePlayed, HealingDone: h.HealingDone}
	}
	return doc, nil
}

// ConvertHandle turns a battle tag into the form the stats API expects:
// "sOmE#1234" becomes "Some-1234".
func ConvertHandle(handle string) string {
	runes := []rune(strings.ToLower(handle))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return strings.ReplaceAll(string(runes), "#", "-")
}
