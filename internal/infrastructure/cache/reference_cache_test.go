package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/cache"
)

type countingLookup struct {
	ids   map[string]string
	calls int
}

func (l *countingLookup) LookupID(_ context.Context, _ entity.ReferenceKind, name string) (*string, error) {
	l.calls++
	if id, ok := l.ids[name]; ok {
		return &id, nil
	}
	return nil, nil
}

func TestCachedLookup_NilClientPassesThrough(t *testing.T) {
	next := &countingLookup{ids: map[string]string{"Acme": "sup-1"}}
	c := cache.NewCachedLookup(next, nil, time.Minute, zerolog.Nop())

	id, err := c.LookupID(context.Background(), entity.ReferenceSupplier, "Acme")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "sup-1", *id)

	id, err = c.LookupID(context.Background(), entity.ReferenceSupplier, "Otro")
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Equal(t, 2, next.calls)
}

func TestCachedLookup_UnreachableRedisDegrades(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingLookup{ids: map[string]string{"Bodega Norte": "loc-1"}}
	c := cache.NewCachedLookup(next, client, time.Minute, zerolog.Nop())

	id, err := c.LookupID(context.Background(), entity.ReferenceLocation, "Bodega Norte")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "loc-1", *id)
	assert.Equal(t, 1, next.calls)
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := cache.NewClient(context.Background(), "no-es-una-url")
	assert.Error(t, err)
}
