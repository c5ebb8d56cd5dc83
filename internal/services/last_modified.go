package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/codyseavey/optcg-api/backend/internal/metrics"
)

// DefaultLastModifiedTTL is how long a looked-up timestamp is served from cache.
const DefaultLastModifiedTTL = 10 * time.Minute

const (
	githubBaseURL          = "https://api.github.com"
	lastModifiedTimeout    = 10 * time.Second
	lastModifiedMaxRetries = 2
	lastModifiedBackoff    = 500 * time.Millisecond
	lastModifiedMaxBackoff = 4 * time.Second
	lastModifiedCacheSize  = 16
	lastModifiedMinTTL     = time.Millisecond

	// Upper bound for one lookup, retries and backoff included.
	lastModifiedDeadline = lastModifiedTimeout * (lastModifiedMaxRetries + 1)

	// Unauthenticated GitHub clients get 60 requests per hour.
	lastModifiedRateEvery = time.Minute
	lastModifiedRateBurst = 5
)

var (
	// ErrLastModifiedDisabled is returned when no repository is configured.
	ErrLastModifiedDisabled = errors.New("last-modified lookup is not configured")
	// ErrLastModifiedRateLimited is returned instead of waiting for a token.
	ErrLastModifiedRateLimited = errors.New("last-modified lookup rate limit exceeded")
)

// LastModifiedService looks up when the card data file last changed by asking
// the GitHub commits API for the newest commit touching it.
type LastModifiedService struct {
	client      *http.Client
	rateLimiter *rate.Limiter
	cache       *expirable.LRU[string, string]
	group       singleflight.Group
	baseURL     string
	repo        string
	path        string
	token       string
	backoff     time.Duration
	deadline    time.Duration
}

type githubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Committer struct {
			Date string `json:"date"`
		} `json:"committer"`
		Author struct {
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// NewLastModifiedService creates the lookup for path inside repo ("owner/name").
// An empty repo yields a service whose lookups return ErrLastModifiedDisabled.
func NewLastModifiedService(repo, path, token string, ttl time.Duration) *LastModifiedService {
	if ttl <= 0 {
		ttl = DefaultLastModifiedTTL
	}
	// expirable sweeps every ttl/100 and cannot tick at zero.
	ttl = max(ttl, lastModifiedMinTTL)

	return &LastModifiedService{
		client: &http.Client{
			Timeout: lastModifiedTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(lastModifiedRateEvery), lastModifiedRateBurst),
		cache:       expirable.NewLRU[string, string](lastModifiedCacheSize, nil, ttl),
		baseURL:     githubBaseURL,
		repo:        strings.Trim(repo, "/ "),
		path:        strings.TrimPrefix(path, "/"),
		token:       token,
		backoff:     lastModifiedBackoff,
		deadline:    lastModifiedDeadline,
	}
}

func (s *LastModifiedService) IsEnabled() bool {
	return s != nil && s.repo != ""
}

func (s *LastModifiedService) cacheKey() string {
	return s.repo + ":" + s.path
}

// LastModified returns the committer timestamp of the newest commit touching
// the data file. Results are cached for the configured TTL. Concurrent misses
// share one upstream lookup; each caller stops waiting when its own ctx ends.
func (s *LastModifiedService) LastModified(ctx context.Context) (string, error) {
	if !s.IsEnabled() {
		return "", ErrLastModifiedDisabled
	}

	key := s.cacheKey()
	if value, ok := s.cache.Get(key); ok {
		metrics.LastModifiedLookupsTotal.WithLabelValues("cache").Inc()
		return value, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		// The shared lookup outlives any single caller but not the deadline.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.deadline)
		defer cancel()

		start := time.Now()
		value, err := s.fetch(fetchCtx)
		metrics.LastModifiedLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.LastModifiedLookupsTotal.WithLabelValues("error").Inc()
			return "", err
		}

		metrics.LastModifiedLookupsTotal.WithLabelValues("api").Inc()
		s.cache.Add(key, value)
		return value, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *LastModifiedService) fetch(ctx context.Context) (string, error) {
	q := url.Values{}
	q.Set("per_page", "1")
	if s.path != "" {
		q.Set("path", s.path)
	}
	reqURL := fmt.Sprintf("%s/repos/%s/commits?%s", s.baseURL, s.repo, q.Encode())

	var commits []githubCommit
	if err := s.doRequest(ctx, reqURL, &commits); err != nil {
		return "", err
	}
	if len(commits) == 0 {
		return "", fmt.Errorf("no commits found for %s in %s", s.path, s.repo)
	}

	date := commits[0].Commit.Committer.Date
	if date == "" {
		date = commits[0].Commit.Author.Date
	}
	if date == "" {
		return "", fmt.Errorf("commit %s has no date", commits[0].SHA)
	}
	return date, nil
}

// doRequest performs a GET with rate limiting, retrying network errors,
// 429 and 5xx responses with exponential backoff.
func (s *LastModifiedService) doRequest(ctx context.Context, reqURL string, result any) error {
	var lastErr error
	backoff := s.backoff

	for attempt := 0; attempt <= lastModifiedMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, lastModifiedMaxBackoff)
		}

		if !s.rateLimiter.Allow() {
			if lastErr != nil {
				return fmt.Errorf("%w after: %v", ErrLastModifiedRateLimited, lastErr)
			}
			return ErrLastModifiedRateLimited
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("User-Agent", "optcg-api")
		if s.token != "" {
			req.Header.Set("Authorization", "Bearer "+s.token)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response body: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
			continue
		default:
			return fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
