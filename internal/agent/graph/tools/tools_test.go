package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/advisory"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	cat := catalog.New([]model.Product{
		{Title: "Sage Midi", Price: 98, Sizes: []string{"S", "M"}, Color: "sage", Tags: []string{"wedding", "midi"}},
		{Title: "Blush Midi", Price: 112, Sizes: []string{"M"}, Color: "pink", Tags: []string{"wedding", "midi"}},
		{Title: "Red Party", Price: 89, Color: "red", Tags: []string{"party"}},
	})
	dir := orders.NewDirectory([]model.Order{
		{OrderID: "A1003", Email: "mira@example.com", CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)},
	})
	reg, err := NewRegistry(context.Background(), GetQueryTools(cat, dir)...)
	require.NoError(t, err)
	return reg
}

func TestRegistry_Names(t *testing.T) {
	reg := newTestRegistry(t)
	assert.Equal(t, []string{ToolProductSearch, ToolSizeRecommender, ToolETA, ToolOrderLookup}, reg.Names())
}

func TestRegistry_DuplicateTool(t *testing.T) {
	ts := GetQueryTools(catalog.New(nil), orders.NewDirectory(nil))
	_, err := NewRegistry(context.Background(), append(ts, ts[0])...)
	assert.ErrorContains(t, err, "duplicate tool")
}

func TestRegistry_UnknownTool(t *testing.T) {
	reg := newTestRegistry(t)
	err := reg.Invoke(context.Background(), "refund", struct{}{}, nil)
	assert.ErrorContains(t, err, "unknown tool")
}

func TestProductSearchTool(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	var out ProductSearchOutput
	require.NoError(t, reg.Invoke(ctx, ToolProductSearch, ProductSearchInput{Query: "wedding midi under $120"}, &out))
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "Sage Midi", out.Products[0].Title)
	assert.Equal(t, "Blush Midi", out.Products[1].Title)

	max := 100.0
	require.NoError(t, reg.Invoke(ctx, ToolProductSearch, ProductSearchInput{Query: "anything", MaxPrice: &max, Tags: []string{"wedding"}}, &out))
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Sage Midi", out.Products[0].Title)

	require.NoError(t, reg.Invoke(ctx, ToolProductSearch, ProductSearchInput{Query: "wedding under $10"}, &out))
	assert.Zero(t, out.Total)
	assert.NotNil(t, out.Products)

	err := reg.Invoke(ctx, ToolProductSearch, ProductSearchInput{Query: "  "}, &out)
	assert.Error(t, err)
}

func TestSizeRecommenderTool(t *testing.T) {
	reg := newTestRegistry(t)

	var out advisory.SizeAdvice
	require.NoError(t, reg.Invoke(context.Background(), ToolSizeRecommender, SizeRecommenderInput{Text: "slim, loose"}, &out))
	assert.Equal(t, "M", out.Size)
	assert.Equal(t, advisory.BuildSlim, out.Build)
	assert.NotEmpty(t, out.Message)
}

func TestETATool(t *testing.T) {
	reg := newTestRegistry(t)

	var out ETAOutput
	require.NoError(t, reg.Invoke(context.Background(), ToolETA, ETAInput{ZIP: "94105"}, &out))
	assert.Equal(t, "West", out.Region)
	assert.Equal(t, "5-7 days", out.Estimate)

	require.NoError(t, reg.Invoke(context.Background(), ToolETA, ETAInput{}, &out))
	assert.Equal(t, "4-7 days", out.Estimate)
}

func TestOrderLookupTool(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	var out OrderLookupOutput
	require.NoError(t, reg.Invoke(ctx, ToolOrderLookup, OrderLookupInput{OrderID: "a1003", Email: "Mira@Example.com"}, &out))
	assert.True(t, out.Found)
	require.NotNil(t, out.Order)
	assert.Equal(t, "A1003", out.Order.OrderID)
	assert.True(t, out.Order.CreatedAt.Equal(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)))

	out = OrderLookupOutput{}
	require.NoError(t, reg.Invoke(ctx, ToolOrderLookup, OrderLookupInput{OrderID: "A1003", Email: "alex@example.com"}, &out))
	assert.False(t, out.Found)
	assert.Nil(t, out.Order)
}

func TestGetToolInfos(t *testing.T) {
	ts := GetQueryTools(catalog.New(nil), orders.NewDirectory(nil))
	infos, err := GetToolInfos(context.Background(), ts)
	require.NoError(t, err)
	require.Len(t, infos, 4)
	for _, info := range infos {
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Desc)
	}
}
