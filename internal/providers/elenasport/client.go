package elenasport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/football-tracker/internal/domain/matches"
	"github.com/preston-bernstein/football-tracker/internal/logging"
	"github.com/preston-bernstein/football-tracker/internal/providers"
)

// Config controls how the client reaches the ElenaSport API on RapidAPI.
type Config struct {
	BaseURL    string
	APIKey     string
	Host       string
	HTTPClient *http.Client
	MaxPages   int
	Names      translator
	Logger     *slog.Logger
	// Pacer takes one slot per HTTP request, pages included.
	Pacer providers.Pacer
	// Retry retries each HTTP request on its own, so a failed page does not refetch
	// earlier pages. Nil means a single attempt.
	Retry *providers.RetryPolicy
}

// Client fetches fixtures from ElenaSport and maps them to domain matches.
type Client struct {
	baseURL    string
	apiKey     string
	host       string
	httpClient httpDoer
	maxPages   int
	names      translator
	logger     *slog.Logger
	pacer      providers.Pacer
	retry      *providers.RetryPolicy
}

// NewClient constructs an ElenaSport client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		host:       resolveHost(cfg.Host),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		maxPages:   resolveMaxPages(cfg.MaxPages),
		names:      cfg.Names,
		logger:     cfg.Logger,
		pacer:      cfg.Pacer,
		retry:      cfg.Retry,
	}
}

// FetchMatch retrieves a single fixture by id.
func (c *Client) FetchMatch(ctx context.Context, id int) (matches.Match, error) {
	var payload fixturesResponse
	if err := c.get(ctx, "/v2/fixtures/"+strconv.Itoa(id), nil, &payload); err != nil {
		return matches.Match{}, fmt.Errorf("fixture %d: %w", id, err)
	}
	if len(payload.Data) == 0 {
		return matches.Match{}, fmt.Errorf("fixture %d: %w", id, providers.ErrNotFound)
	}
	return mapFixture(payload.Data[0], c.names), nil
}

// FetchSeasonFixtures retrieves every fixture of a season, following pagination up to maxPages.
func (c *Client) FetchSeasonFixtures(ctx context.Context, seasonID int) ([]matches.Match, error) {
	path := "/v2/seasons/" + strconv.Itoa(seasonID) + "/fixtures"
	all := make([]matches.Match, 0)

	for page := 1; ; page++ {
		var payload fixturesResponse
		if err := c.get(ctx, path, map[string]string{"page": strconv.Itoa(page)}, &payload); err != nil {
			return nil, fmt.Errorf("season %d page %d: %w", seasonID, page, err)
		}
		for _, f := range payload.Data {
			all = append(all, mapFixture(f, c.names))
		}
		if !payload.Pagination.HasNextPage {
			break
		}
		if page >= c.maxPages {
			logging.Warn(c.logger, "season fixtures truncated at page limit",
				slog.Int(logging.FieldSeasonID, seasonID),
				slog.Int("max_pages", c.maxPages),
				slog.String(logging.FieldProvider, providerName),
			)
			break
		}
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("season %d: %w", seasonID, providers.ErrNotFound)
	}
	return all, nil
}

// CurrentSeasonID returns the most recent season of a league.
func (c *Client) CurrentSeasonID(ctx context.Context, leagueID int) (int, error) {
	var payload seasonsResponse
	if err := c.get(ctx, "/v2/leagues/"+strconv.Itoa(leagueID)+"/seasons", nil, &payload); err != nil {
		return 0, fmt.Errorf("league %d seasons: %w", leagueID, err)
	}
	if len(payload.Data) == 0 {
		return 0, fmt.Errorf("league %d seasons: %w", leagueID, providers.ErrNotFound)
	}
	return payload.Data[0].ID, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, dest any) error {
	op := "GET " + path
	if p := query["page"]; p != "" {
		op += " page " + p
	}
	return c.retry.Do(ctx, op, func(ctx context.Context) error {
		if c.pacer != nil {
			if err := c.pacer.Wait(ctx); err != nil {
				return err
			}
		}
		return c.request(ctx, path, query, dest)
	})
}

func (c *Client) request(ctx context.Context, path string, query map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if c.apiKey != "" {
		req.Header.Set("x-rapidapi-key", c.apiKey)
	}
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return providers.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
			Remaining:  resp.Header.Get("X-RateLimit-Requests-Remaining"),
			Message:    "elenasport rate limited",
		}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &providers.RequestError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
