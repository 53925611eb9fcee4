package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// KeyValueStore - хранилище строк по ключу, аналог localStorage.
type KeyValueStore interface {
	// GetItem возвращает значение и признак его наличия.
	GetItem(ctx context.Context, key string) (string, bool, error)
	// SetItem заменяет значение целиком.
	SetItem(ctx context.Context, key, value string) error
}

// SQLiteKV хранит пары в таблице KeyValue.
type SQLiteKV struct {
	db *sqlx.DB
}

func NewSQLiteKV(db *sqlx.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT Value FROM KeyValue WHERE Key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetItem: ошибка чтения ключа %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) SetItem(ctx context.Context, key, value string) error {
	query := `INSERT INTO KeyValue (Key, Value, UpdatedAt) VALUES (?, ?, ?)
	          ON CONFLICT(Key) DO UPDATE SET Value = excluded.Value, UpdatedAt = excluded.UpdatedAt`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("SetItem: ошибка записи ключа %s: %w", key, err)
	}
	return nil
}

const redisNamespace = "profile_form"

// RedisKV хранит пары в Redis под префиксом profile_form:.
type RedisKV struct {
	client redis.UniversalClient
}

func NewRedisKV(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, redisNamespace+":"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetItem: redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *RedisKV) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, redisNamespace+":"+key, value, 0).Err(); err != nil {
		return fmt.Errorf("SetItem: redis set %s: %w", key, err)
	}
	return nil
}

// MemoryKV - хранилище в памяти процесса.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

func (m *MemoryKV) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryKV) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
