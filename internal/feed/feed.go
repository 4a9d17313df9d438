package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent      = "ob1-scout/feed"
	defaultTimeout = 10 * time.Second
)

var ErrNoSource = errors.New("feed source is not configured")

type Client struct {
	source     string
	logger     *zap.Logger
	cache      Cache
	cacheTTL   time.Duration
	HTTPClient *http.Client
	UserAgent  string

	mu    sync.Mutex
	stale []byte
}

// Option customizes a Client.
type Option func(*Client)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.HTTPClient.Timeout = timeout
		}
	}
}

// New creates a feed client for source, which is either an http(s) URL or a local path.
func New(source string, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		source: strings.TrimSpace(source),
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the current feed. Cached documents are served while fresh; when
// fetching fails the last document this client fetched successfully is reused.
func (c *Client) Load(ctx context.Context) (*Opportunities, error) {
	if c.source == "" {
		return nil, ErrNoSource
	}

	if c.cache != nil {
		data, ok, err := c.cache.Get(ctx, c.source)
		if err != nil {
			c.logger.Warn("reading feed cache", zap.String("source", c.source), zap.Error(err))
		}
		if ok {
			c.logger.Debug("feed served from cache", zap.String("source", c.source))
			return decode(data, c.logger)
		}
	}

	data, err := c.fetch(ctx)
	if err != nil {
		stale := c.lastGood()
		if stale == nil {
			return nil, fmt.Errorf("fetch feed: %w", err)
		}
		c.logger.Warn("feed fetch failed, using previous document",
			zap.String("source", c.source),
			zap.Error(err),
		)
		return decode(stale, c.logger)
	}

	opps, err := decode(data, c.logger)
	if err != nil {
		return nil, err
	}

	c.remember(data)
	if c.cache != nil {
		if err := c.cache.Set(ctx, c.source, data, c.cacheTTL); err != nil {
			c.logger.Warn("writing feed cache", zap.String("source", c.source), zap.Error(err))
		}
	}

	c.logger.Info("feed loaded",
		zap.String("source", c.source),
		zap.Int("count", opps.Len()),
		zap.String("last_update", opps.LastUpdate),
	)
	return opps, nil
}

func (c *Client) remember(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = data
}

func (c *Client) lastGood() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}
