package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/metrics"
	"github.com/patrickmn/go-cache"
)

// Location is the coarse position of an address. Fields are empty when
// the lookup failed.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

func (l Location) IsZero() bool {
	return l.Country == "" && l.Region == "" && l.City == ""
}

// Locator resolves an ip address to a Location. Implementations never fail:
// an unknown address yields an empty Location.
type Locator interface {
	Locate(ctx context.Context, ip string) Location
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Client queries an ipinfo-style HTTP service at {BaseURL}/{ip}/json.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
	}
}

func (c *Client) Locate(ctx context.Context, ip string) Location {
	if ip == "" {
		return Location{}
	}
	if cached, found := c.cache.Get(ip); found {
		return cached.(Location)
	}

	loc, err := c.fetch(ctx, ip)
	if err != nil {
		slog.Warn("geoip lookup failed", "ip", ip, "error", err)
		return Location{}
	}

	c.cache.Set(ip, loc, cache.DefaultExpiration)
	return loc
}

func (c *Client) fetch(ctx context.Context, ip string) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json", c.baseURL, ip), nil)
	if err != nil {
		metrics.GeoLookupFailures.WithLabelValues("request").Inc()
		return Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GeoLookupFailures.WithLabelValues("transport").Inc()
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeoLookupFailures.WithLabelValues("status").Inc()
		return Location{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		metrics.GeoLookupFailures.WithLabelValues("decode").Inc()
		return Location{}, fmt.Errorf("decode response: %w", err)
	}
	return loc, nil
}

// Static is a Locator that answers every lookup with the same Location.
type Static Location

func (s Static) Locate(context.Context, string) Location {
	return Location(s)
}
