// Package fixtures loads the read-only catalog and order tables from files
// or Redis.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

const (
	SourceFile  = "file"
	SourceRedis = "redis"
)

var (
	ErrUnknownSource = errors.New("unknown fixture source")
	ErrUnknownFormat = errors.New("unsupported fixture format")
)

// Tables holds the two fixed tables the tools read from.
type Tables struct {
	Products []model.Product
	Orders   []model.Order
}

// Source yields the fixture tables.
type Source interface {
	Load(ctx context.Context) (Tables, error)
}

// NewSource picks the source named by cfg.Source. client is only needed for
// the redis source.
func NewSource(cfg model.FixtureConfig, client redis.Cmdable) (Source, error) {
	switch strings.ToLower(cfg.Source) {
	case "", SourceFile:
		return &FileSource{CatalogPath: cfg.CatalogPath, OrdersPath: cfg.OrdersPath}, nil
	case SourceRedis:
		if client == nil {
			return nil, fmt.Errorf("redis fixture source needs a redis client")
		}
		return &RedisSource{Client: client, CatalogKey: cfg.CatalogKey, OrdersKey: cfg.OrdersKey}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// FileSource reads JSON (.json) or YAML (.yaml, .yml) files.
type FileSource struct {
	CatalogPath string
	OrdersPath  string
}

func (s *FileSource) Load(ctx context.Context) (Tables, error) {
	var t Tables
	if err := decodeFile(s.CatalogPath, &t.Products); err != nil {
		return Tables{}, errx.Fixture(err)
	}
	if err := decodeFile(s.OrdersPath, &t.Orders); err != nil {
		return Tables{}, errx.Fixture(err)
	}
	if err := Validate(t); err != nil {
		return Tables{}, errx.Fixture(err)
	}

	logx.Debug().
		Str("catalog", s.CatalogPath).
		Str("orders", s.OrdersPath).
		Int("products", len(t.Products)).
		Int("order_rows", len(t.Orders)).
		Msg("Fixtures loaded from files")
	return t, nil
}

func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// RedisSource reads two string keys holding JSON arrays.
type RedisSource struct {
	Client     redis.Cmdable
	CatalogKey string
	OrdersKey  string
}

func (s *RedisSource) Load(ctx context.Context) (Tables, error) {
	var t Tables
	if err := s.decodeKey(ctx, s.CatalogKey, &t.Products); err != nil {
		return Tables{}, err
	}
	if err := s.decodeKey(ctx, s.OrdersKey, &t.Orders); err != nil {
		return Tables{}, err
	}
	if err := Validate(t); err != nil {
		return Tables{}, errx.Fixture(err)
	}

	logx.Debug().
		Str("catalog_key", s.CatalogKey).
		Str("orders_key", s.OrdersKey).
		Int("products", len(t.Products)).
		Int("order_rows", len(t.Orders)).
		Msg("Fixtures loaded from redis")
	return t, nil
}

func (s *RedisSource) decodeKey(ctx context.Context, key string, v any) error {
	raw, err := s.Client.Get(ctx, key).Bytes()
	if err != nil {
		logx.Error().Err(err).Str("key", key).Msg("Failed to read fixture key")
		return errx.WrapRedis(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errx.Fixture(fmt.Errorf("decode %s: %w", key, err))
	}
	return nil
}

// Save writes the tables as JSON to the source's keys. It is used to seed
// Redis from file fixtures.
func (s *RedisSource) Save(ctx context.Context, t Tables) error {
	if err := Validate(t); err != nil {
		return errx.Fixture(err)
	}
	products, err := json.Marshal(t.Products)
	if err != nil {
		return err
	}
	orders, err := json.Marshal(t.Orders)
	if err != nil {
		return err
	}
	_, err = s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.CatalogKey, products, 0)
		pipe.Set(ctx, s.OrdersKey, orders, 0)
		return nil
	})
	if err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

// Validate rejects rows the tools cannot work with.
func Validate(t Tables) error {
	var errs []error
	for i, p := range t.Products {
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("product %d: empty title", i))
		}
		if p.Price < 0 {
			errs = append(errs, fmt.Errorf("product %d (%s): negative price %v", i, p.Title, p.Price))
		}
	}
	for i, o := range t.Orders {
		if strings.TrimSpace(o.OrderID) == "" {
			errs = append(errs, fmt.Errorf("order %d: empty order_id", i))
		}
		if strings.TrimSpace(o.Email) == "" {
			errs = append(errs, fmt.Errorf("order %d (%s): empty email", i, o.OrderID))
		}
		if o.CreatedAt.IsZero() {
			errs = append(errs, fmt.Errorf("order %d (%s): missing created_at", i, o.OrderID))
		}
	}
	return errors.Join(errs...)
}
