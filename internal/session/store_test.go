package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lueurxax/seva-desk/internal/core/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute, nil)
	ctx := context.Background()

	got, err := store.GetContext(ctx, "tg:42")
	require.NoError(t, err)
	assert.Nil(t, got)

	convCtx := &domain.ConversationContext{
		Category:     domain.CategoryBloodRequest,
		Slots:        domain.SlotMap{domain.SlotBloodType: "AB-"},
		AwaitingSlot: domain.SlotHospitalName,
		FollowUps:    1,
	}
	require.NoError(t, store.PutContext(ctx, "tg:42", convCtx))

	got, err = store.GetContext(ctx, "tg:42")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.CategoryBloodRequest, got.Category)
	assert.Equal(t, "AB-", got.Slots[domain.SlotBloodType])
	assert.Equal(t, domain.SlotHospitalName, got.AwaitingSlot)
	assert.Equal(t, 1, got.FollowUps)
}

func TestRedisStoreExpiresContext(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, store.PutContext(ctx, "tg:7", &domain.ConversationContext{Category: domain.CategoryComplaint}))
	assert.Equal(t, time.Minute, mr.TTL(contextKeyPrefix+"tg:7"))

	mr.FastForward(2 * time.Minute)

	got, err := store.GetContext(ctx, "tg:7")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStoreNilContextDeletes(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, 0, nil)
	ctx := context.Background()

	require.NoError(t, store.PutContext(ctx, "tg:1", &domain.ConversationContext{Category: domain.CategoryElderSupport}))
	assert.Equal(t, defaultSessionTTL, mr.TTL(contextKeyPrefix+"tg:1"))

	require.NoError(t, store.PutContext(ctx, "tg:1", nil))
	assert.False(t, mr.Exists(contextKeyPrefix+"tg:1"))
}

func TestRedisStoreDropsCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute, nil)

	require.NoError(t, mr.Set(contextKeyPrefix+"tg:9", "{not json"))

	got, err := store.GetContext(context.Background(), "tg:9")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists(contextKeyPrefix+"tg:9"))
}

func TestRedisStoreReportsConnectionErrors(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, time.Minute, nil)

	mr.Close()

	_, err := store.GetContext(context.Background(), "tg:1")
	require.Error(t, err)
}
