package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textile/internal/domain/reports"
)

type fakeRedis struct {
	data    map[string]string
	getErr  error
	sets    int
	deleted []string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.sets++
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
		f.deleted = append(f.deleted, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

type countingReader struct {
	values reports.StaticDefaults
	calls  int
	err    error
}

func (r *countingReader) GetGlobalDefault(ctx context.Context, key string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.values[key], nil
}

func TestDefaultsCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	next := &countingReader{values: reports.StaticDefaults{reports.DefaultItemNamingBy: "Naming Series"}}
	c := NewDefaultsCache(next, rdb, time.Minute)

	v, err := c.GetGlobalDefault(ctx, reports.DefaultItemNamingBy)
	require.NoError(t, err)
	assert.Equal(t, "Naming Series", v)

	v, err = c.GetGlobalDefault(ctx, reports.DefaultItemNamingBy)
	require.NoError(t, err)
	assert.Equal(t, "Naming Series", v)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, rdb.sets)
}

func TestDefaultsCache_RedisDown(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	next := &countingReader{values: reports.StaticDefaults{reports.DefaultCustMasterName: "Customer Name"}}
	c := NewDefaultsCache(next, rdb, time.Minute)

	v, err := c.GetGlobalDefault(context.Background(), reports.DefaultCustMasterName)
	require.NoError(t, err)
	assert.Equal(t, "Customer Name", v)
	assert.Equal(t, 1, next.calls)
}

func TestDefaultsCache_ReaderError(t *testing.T) {
	next := &countingReader{err: errors.New("db down")}
	c := NewDefaultsCache(next, newFakeRedis(), time.Minute)

	_, err := c.GetGlobalDefault(context.Background(), reports.DefaultItemNamingBy)
	assert.Error(t, err)
}

func TestDefaultsCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	next := &countingReader{values: reports.StaticDefaults{}}
	c := NewDefaultsCache(next, rdb, time.Minute)

	_, err := c.GetGlobalDefault(ctx, reports.DefaultItemNamingBy)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, reports.DefaultItemNamingBy))
	assert.Equal(t, []string{"textile:defaults:item_naming_by"}, rdb.deleted)

	_, err = c.GetGlobalDefault(ctx, reports.DefaultItemNamingBy)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}
