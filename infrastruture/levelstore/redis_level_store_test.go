package levelstore

import (
	"testing"
	"time"

	pb "github.com/beka-birhanu/vinom-maze/game/pb_encoder"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisLevelStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	t.Run("Requires client and encoder", func(t *testing.T) {
		_, err := NewRedisLevelStore(nil, &pb.Protobuf{}, nil)
		assert.Error(t, err)
		_, err = NewRedisLevelStore(client, nil, nil)
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		cache, err := NewRedisLevelStore(client, &pb.Protobuf{}, nil)
		require.NoError(t, err)
		store := cache.(*RedisLevelStore)
		assert.Equal(t, defaultPrefix, store.opts.Prefix)
		assert.Equal(t, defaultLockTTL, store.opts.LockTTL)
		assert.Zero(t, store.opts.TTL)
	})

	t.Run("Keys are namespaced", func(t *testing.T) {
		cache, err := NewRedisLevelStore(client, &pb.Protobuf{}, &Options{Prefix: "test", TTL: time.Minute})
		require.NoError(t, err)
		id := uuid.MustParse("4b1f9a52-7d4e-4c61-9d8e-3f3a2f1d6b10")
		assert.Equal(t, "test:level:4b1f9a52-7d4e-4c61-9d8e-3f3a2f1d6b10", cache.(*RedisLevelStore).levelKey(id))
	})
}
