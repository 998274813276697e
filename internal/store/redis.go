package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"coin-alert-bot-go/internal/logger"
)

// Redis key layout
const (
	coinKeyPrefix     = "coins:"
	positionKeyPrefix = "account_performance:"
	ledgerKey         = "simulation"
	failCountsKey     = "criteria_fail_counts"
)

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

// RedisStore implements Store on top of Redis
type RedisStore struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisStore creates a Redis-backed store and verifies the connection
func NewRedisStore(config RedisConfig, log *logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.LogConnection("redis", "connected", client.Options().Addr)

	return &RedisStore{
		client: client,
		logger: log,
	}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests.
func NewRedisStoreFromClient(client *redis.Client, log *logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: log,
	}
}

// Close releases the underlying connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// PutCoin writes the full coin record
func (s *RedisStore) PutCoin(ctx context.Context, record *CoinRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal coin record %s: %w", record.Mint, err)
	}
	if err := s.client.Set(ctx, coinKeyPrefix+record.Mint, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write coin record %s: %w", record.Mint, err)
	}
	return nil
}

// GetCoin reads a coin record, returning (nil, nil) when absent
func (s *RedisStore) GetCoin(ctx context.Context, mint string) (*CoinRecord, error) {
	data, err := s.client.Get(ctx, coinKeyPrefix+mint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read coin record %s: %w", mint, err)
	}

	var record CoinRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("malformed coin record %s: %w", mint, err)
	}
	return &record, nil
}

// DeleteCoin removes a coin record
func (s *RedisStore) DeleteCoin(ctx context.Context, mint string) error {
	if err := s.client.Del(ctx, coinKeyPrefix+mint).Err(); err != nil {
		return fmt.Errorf("failed to delete coin record %s: %w", mint, err)
	}
	return nil
}

// ListCoins returns all coin records. Malformed entries are logged and skipped.
func (s *RedisStore) ListCoins(ctx context.Context) ([]*CoinRecord, error) {
	keys, err := s.client.Keys(ctx, coinKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list coin keys: %w", err)
	}

	records := make([]*CoinRecord, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read coin record %s: %w", key, err)
		}

		var record CoinRecord
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.WithComponent("store").WithError(err).Warnf("skipping malformed coin record %s", key)
			continue
		}
		if record.Mint == "" {
			record.Mint = strings.TrimPrefix(key, coinKeyPrefix)
		}
		records = append(records, &record)
	}
	return records, nil
}

// PutPosition writes the full position record
func (s *RedisStore) PutPosition(ctx context.Context, record *PositionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal position record %s: %w", record.Mint, err)
	}
	if err := s.client.Set(ctx, positionKeyPrefix+record.Mint, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write position record %s: %w", record.Mint, err)
	}
	return nil
}

// GetPosition reads a position record, returning (nil, nil) when absent
func (s *RedisStore) GetPosition(ctx context.Context, mint string) (*PositionRecord, error) {
	data, err := s.client.Get(ctx, positionKeyPrefix+mint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read position record %s: %w", mint, err)
	}

	var record PositionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("malformed position record %s: %w", mint, err)
	}
	return &record, nil
}

// ListOpenPositions returns all positions with open status. Malformed entries
// are logged and skipped.
func (s *RedisStore) ListOpenPositions(ctx context.Context) ([]*PositionRecord, error) {
	keys, err := s.client.Keys(ctx, positionKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list position keys: %w", err)
	}

	records := make([]*PositionRecord, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read position record %s: %w", key, err)
		}

		var record PositionRecord
		if err := json.Unmarshal(data, &record); err != nil {
			s.logger.WithComponent("store").WithError(err).Warnf("skipping malformed position record %s", key)
			continue
		}
		if record.Status != StatusOpen {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// PutLedger writes the full simulation ledger in one operation
func (s *RedisStore) PutLedger(ctx context.Context, record *LedgerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}
	if err := s.client.Set(ctx, ledgerKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// GetLedger reads the simulation ledger, returning (nil, nil) when absent
func (s *RedisStore) GetLedger(ctx context.Context) (*LedgerRecord, error) {
	data, err := s.client.Get(ctx, ledgerKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var record LedgerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("malformed ledger: %w", err)
	}
	return &record, nil
}

// IncrCriterionFail increments the failure counter for a criterion
func (s *RedisStore) IncrCriterionFail(ctx context.Context, criterion string) error {
	if err := s.client.HIncrBy(ctx, failCountsKey, criterion, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment fail counter %s: %w", criterion, err)
	}
	return nil
}

// GetCriterionFails returns all criterion failure counters
func (s *RedisStore) GetCriterionFails(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, failCountsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read fail counters: %w", err)
	}

	counts := make(map[string]int64, len(raw))
	for criterion, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			s.logger.WithComponent("store").WithError(err).Warnf("skipping malformed fail counter %s=%s", criterion, value)
			continue
		}
		counts[criterion] = n
	}
	return counts, nil
}
