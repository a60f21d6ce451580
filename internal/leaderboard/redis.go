// Package leaderboard keeps the gamification ranking in a Redis sorted
// set so leaderboard reads never touch the primary database. Postgres
// remains the source of truth; the ZSET is a cache rebuilt on startup.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/opsdesk/helpdesk-engine/internal/models"
)

// ErrNotRanked is returned when a team has no leaderboard entry yet.
var ErrNotRanked = errors.New("team not ranked")

const rankingKey = "helpdesk:leaderboard"

// Cache is a Redis-backed leaderboard
type Cache struct {
	client *redis.Client
}

// Entry is one leaderboard row
type Entry struct {
	TeamID string `json:"team_id"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

// New connects to Redis and returns a leaderboard cache
func New(address, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Sync rebuilds the sorted set from the authoritative accounts
func (c *Cache) Sync(ctx context.Context, accounts []*models.GamificationAccount) error {
	if len(accounts) == 0 {
		return nil
	}

	members := make([]redis.Z, 0, len(accounts))
	for _, acct := range accounts {
		members = append(members, redis.Z{
			Score:  float64(acct.Points),
			Member: acct.TeamID,
		})
	}

	if err := c.client.ZAdd(ctx, rankingKey, members...).Err(); err != nil {
		return fmt.Errorf("failed to sync leaderboard: %w", err)
	}

	slog.Info("leaderboard synced", "teams", len(accounts))
	return nil
}

// Record adds awarded points to a team's leaderboard score
func (c *Cache) Record(ctx context.Context, teamID string, points int) error {
	if err := c.client.ZIncrBy(ctx, rankingKey, float64(points), teamID).Err(); err != nil {
		return fmt.Errorf("failed to record points: %w", err)
	}
	return nil
}

// Top returns the n highest-scoring teams, best first
func (c *Cache) Top(ctx context.Context, n int64) ([]Entry, error) {
	members, err := c.client.ZRevRangeWithScores(ctx, rankingKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(members))
	for i, m := range members {
		teamID, _ := m.Member.(string)
		entries = append(entries, Entry{
			TeamID: teamID,
			Points: int(m.Score),
			Rank:   i + 1,
		})
	}
	return entries, nil
}

// Rank returns a team's 1-based position
func (c *Cache) Rank(ctx context.Context, teamID string) (int, error) {
	rank, err := c.client.ZRevRank(ctx, rankingKey, teamID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotRanked
		}
		return 0, fmt.Errorf("failed to read rank: %w", err)
	}
	return int(rank) + 1, nil
}

// HealthCheck verifies Redis connectivity
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
