package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shrimpsizemoose/poangtavla/internal/decode"
	"github.com/shrimpsizemoose/poangtavla/internal/grid"
	"github.com/shrimpsizemoose/poangtavla/internal/metrics"
	"github.com/shrimpsizemoose/poangtavla/internal/scoring"
	"github.com/shrimpsizemoose/poangtavla/internal/store"
)

// Service wires one scoreboard run: config, the fact store and the selected
// ruleset, plus an optional Redis publisher for the rendered report.
type Service struct {
	Config  *Config
	Store   store.FactStore
	Ruleset scoring.Ruleset

	cache *redis.Client
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	factStore, err := NewStore(config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	ruleset, err := scoring.NewRuleset(config.Scoring.Ruleset, config.Scoring.PenaltyMinutes)
	if err != nil {
		return nil, err
	}

	var cache *redis.Client
	if config.Cache.RedisURL != "" {
		opts, err := redis.ParseURL(config.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		cache = redis.NewClient(opts)
	}

	return &Service{
		Config:  config,
		Store:   factStore,
		Ruleset: ruleset,
		cache:   cache,
	}, nil
}

// LoadFacts decodes one fact dump into the store. A decode.LoadError aborts
// the run with nothing computed.
func (s *Service) LoadFacts(r io.Reader) error {
	dec := decode.NewDecoder(r, s.Config.Scoring.CorrectStatusID)
	if err := dec.Load(s.Store); err != nil {
		return err
	}

	subs, err := s.Store.Submissions()
	if err != nil {
		return err
	}
	metrics.SubmissionsLoaded.WithLabelValues(s.Ruleset.Name()).Add(float64(len(subs)))
	return nil
}

// ComputeReport runs the pipeline once and formats both grids.
func (s *Service) ComputeReport() (banner, scoreboard grid.Grid, err error) {
	start := time.Now()
	standings, err := scoring.Compute(s.Store, s.Ruleset)
	if err != nil {
		return grid.Grid{}, grid.Grid{}, err
	}
	metrics.ComputeDuration.WithLabelValues(s.Ruleset.Name()).Observe(time.Since(start).Seconds())
	metrics.RankedUsers.WithLabelValues(standings.Contest.Code, s.Ruleset.Name()).Set(float64(len(standings.Ranked)))

	banner = grid.Banner(standings.Contest, s.Config.Display.TimestampFormat)
	scoreboard = grid.Scoreboard(standings, s.Ruleset)
	return banner, scoreboard, nil
}

// PublishReport drops the serialized report into Redis for sibling consumers
// (bots, exporters). No-op when no cache is configured.
func (s *Service) PublishReport(ctx context.Context, contestCode, report string) error {
	if s.cache == nil {
		return nil
	}
	key := fmt.Sprintf("scoreboard:%s:%s", contestCode, s.Ruleset.Name())
	ttl := time.Duration(s.Config.Cache.TTLSeconds) * time.Second
	if err := s.cache.Set(ctx, key, report, ttl).Err(); err != nil {
		return fmt.Errorf("failed to publish report to redis: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cache: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
