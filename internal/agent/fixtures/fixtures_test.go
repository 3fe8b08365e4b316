package fixtures

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	errx "github.com/Chative-core-poc-v1/storefront/internal/core/error"
)

const productsJSON = `[
  {"title": "Sage Midi", "price": 98, "sizes": ["S", "M"], "color": "sage", "tags": ["wedding", "midi"]},
  {"title": "Day Dress", "price": 45, "sizes": ["M"], "color": "yellow", "tags": ["daywear"]}
]`

const ordersJSON = `[
  {"order_id": "A1003", "email": "mira@example.com", "created_at": "2025-01-15T10:00:00Z"}
]`

const productsYAML = `
- title: Sage Midi
  price: 98
  sizes: [S, M]
  color: sage
  tags: [wedding, midi]
`

const ordersYAML = `
- order_id: A1003
  email: mira@example.com
  created_at: 2025-01-15T10:00:00Z
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestFileSource_JSON(t *testing.T) {
	dir := t.TempDir()
	src := &FileSource{
		CatalogPath: writeFile(t, dir, "products.json", productsJSON),
		OrdersPath:  writeFile(t, dir, "orders.json", ordersJSON),
	}

	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables.Products, 2)
	assert.Equal(t, "Sage Midi", tables.Products[0].Title)
	assert.Equal(t, []string{"wedding", "midi"}, tables.Products[0].Tags)
	require.Len(t, tables.Orders, 1)
	assert.Equal(t, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), tables.Orders[0].CreatedAt.UTC())
}

func TestFileSource_YAML(t *testing.T) {
	dir := t.TempDir()
	src := &FileSource{
		CatalogPath: writeFile(t, dir, "products.yaml", productsYAML),
		OrdersPath:  writeFile(t, dir, "orders.yml", ordersYAML),
	}

	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables.Products, 1)
	assert.Equal(t, 98.0, tables.Products[0].Price)
	require.Len(t, tables.Orders, 1)
	assert.Equal(t, "mira@example.com", tables.Orders[0].Email)
	assert.True(t, tables.Orders[0].CreatedAt.Equal(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)))
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	orders := writeFile(t, dir, "orders.json", ordersJSON)

	tests := []struct {
		name    string
		catalog string
	}{
		{name: "missing file", catalog: filepath.Join(dir, "absent.json")},
		{name: "malformed json", catalog: writeFile(t, dir, "bad.json", `[{"title": `)},
		{name: "unknown extension", catalog: writeFile(t, dir, "products.csv", "title,price")},
		{name: "negative price", catalog: writeFile(t, dir, "neg.json", `[{"title": "X", "price": -1}]`)},
		{name: "empty title", catalog: writeFile(t, dir, "untitled.json", `[{"title": " ", "price": 10}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &FileSource{CatalogPath: tt.catalog, OrdersPath: orders}
			_, err := src.Load(context.Background())
			require.Error(t, err)
			assert.Equal(t, http.StatusInternalServerError, errx.StatusOf(err))
		})
	}
}

func TestValidate_Orders(t *testing.T) {
	err := Validate(Tables{Orders: []model.Order{{OrderID: "A1", Email: ""}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty email")
	assert.Contains(t, err.Error(), "missing created_at")

	assert.NoError(t, Validate(Tables{}))
}

func TestRedisSource_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	src := &RedisSource{Client: rdb, CatalogKey: "fx:products", OrdersKey: "fx:orders"}
	want := Tables{
		Products: []model.Product{{Title: "Sage Midi", Price: 98, Sizes: []string{"S"}, Color: "sage", Tags: []string{"midi"}}},
		Orders:   []model.Order{{OrderID: "A1003", Email: "mira@example.com", CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}},
	}
	require.NoError(t, src.Save(ctx, want))

	got, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Products, got.Products)
	require.Len(t, got.Orders, 1)
	assert.True(t, want.Orders[0].CreatedAt.Equal(got.Orders[0].CreatedAt))
}

func TestRedisSource_MissingKey(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	src := &RedisSource{Client: rdb, CatalogKey: "fx:products", OrdersKey: "fx:orders"}
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errx.StatusOf(err))
}

func TestNewSource(t *testing.T) {
	cfg := model.FixtureConfig{Source: "file", CatalogPath: "p.json", OrdersPath: "o.json"}
	src, err := NewSource(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileSource{}, src)

	cfg.Source = "redis"
	_, err = NewSource(cfg, nil)
	assert.Error(t, err)

	cfg.Source = "s3"
	_, err = NewSource(cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestFileSource_ShippedData(t *testing.T) {
	src := &FileSource{
		CatalogPath: filepath.Join("..", "..", "..", "data", "products.json"),
		OrdersPath:  filepath.Join("..", "..", "..", "data", "orders.json"),
	}
	tables, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Products)
	assert.NotEmpty(t, tables.Orders)
}
