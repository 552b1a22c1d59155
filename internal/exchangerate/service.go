package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Service caches rates in Redis and converts amounts between currencies.
type Service struct {
	fetcher Fetcher
	redis   *redis.Client
	base    string
	ttl     time.Duration
	logger  *slog.Logger
	group   singleflight.Group
}

// Conversion is the result of converting an amount.
type Conversion struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
	Date   string  `json:"date"`
	Source string  `json:"source"`
}

// NewService constructs a Service. A nil Redis client disables caching.
func NewService(fetcher Fetcher, client *redis.Client, base string, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		base = "USD"
	}
	return &Service{fetcher: fetcher, redis: client, base: base, ttl: ttl, logger: logger}
}

// Base is the currency all rates are quoted against.
func (s *Service) Base() string { return s.base }

func (s *Service) cacheKey() string {
	return "fx:rates:" + s.base
}

// Latest returns cached rates, fetching once when the cache is cold.
// Concurrent cold callers share one upstream request.
func (s *Service) Latest(ctx context.Context) (Rates, error) {
	if rates, ok := s.cached(ctx); ok {
		return rates, nil
	}
	ch := s.group.DoChan(s.base, func() (any, error) {
		return s.load(context.WithoutCancel(ctx)), nil
	})
	select {
	case <-ctx.Done():
		return Rates{}, ctx.Err()
	case res := <-ch:
		return res.Val.(Rates), res.Err
	}
}

// Refresh fetches new rates regardless of the cache and stores them.
func (s *Service) Refresh(ctx context.Context) (Rates, error) {
	rates := s.load(ctx)
	if rates.Source == SourceDemo {
		return rates, errors.New("exchangerate: upstream unavailable, demo rates cached")
	}
	return rates, nil
}

// Rate returns the conversion factor from one currency to another.
func (s *Service) Rate(ctx context.Context, from, to string) (float64, Rates, error) {
	rates, err := s.Latest(ctx)
	if err != nil {
		return 0, Rates{}, err
	}
	rate, err := rates.Rate(strings.ToUpper(from), strings.ToUpper(to))
	if err != nil {
		return 0, Rates{}, err
	}
	return rate, rates, nil
}

// Convert converts amount and rounds the result to two decimals.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) (Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rate, rates, err := s.Rate(ctx, from, to)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{
		Amount: amount,
		From:   from,
		To:     to,
		Rate:   rate,
		Result: Round2(amount * rate),
		Date:   rates.Date,
		Source: rates.Source,
	}, nil
}

func (s *Service) load(ctx context.Context) Rates {
	rates := s.fetcher.Latest(ctx, s.base)
	s.store(ctx, rates)
	return rates
}

func (s *Service) cached(ctx context.Context) (Rates, bool) {
	if s.redis == nil {
		return Rates{}, false
	}
	payload, err := s.redis.Get(ctx, s.cacheKey()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read cached rates", slog.Any("error", err))
		}
		return Rates{}, false
	}
	var rates Rates
	if err := json.Unmarshal(payload, &rates); err != nil {
		s.logger.Warn("decode cached rates", slog.Any("error", err))
		return Rates{}, false
	}
	return rates, true
}

func (s *Service) store(ctx context.Context, rates Rates) {
	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(rates)
	if err != nil {
		return
	}
	ttl := s.ttl
	if rates.Source == SourceDemo && (ttl <= 0 || ttl > 5*time.Minute) {
		ttl = 5 * time.Minute
	}
	if err := s.redis.Set(ctx, s.cacheKey(), payload, ttl).Err(); err != nil {
		s.logger.Warn("cache rates", slog.Any("error", err))
	}
}
