package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/superindo-api/internal/domain/entity"
	"github.com/jhoicas/superindo-api/internal/infrastructure/memory"
	"github.com/jhoicas/superindo-api/internal/infrastructure/redis"
	"github.com/jhoicas/superindo-api/pkg/config"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379.
func TestNumberGenerator_SeedsFromTableAndIncrements(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	// Día aleatorio para no chocar con ejecuciones previas.
	at := time.Date(2000+int(uuid.New().ID()%900), 1, 1, 12, 0, 0, 0, time.UTC)
	day := at.Format("20060102")
	t.Cleanup(func() { rdb.Del(ctx, "seq:IN:"+day) })

	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Incomings.Create(ctx, &entity.Incoming{
		ID: uuid.NewString(), IncomingNumber: "IN" + day + "0007",
		Quantity: decimal.NewFromInt(1), IncomingDate: at, CreatedAt: at, UpdatedAt: at,
	}))

	gen := redis.NewNumberGenerator(rdb)
	n1, err := gen.Next(ctx, repos, "IN", at)
	require.NoError(t, err)
	n2, err := gen.Next(ctx, repos, "IN", at)
	require.NoError(t, err)

	assert.Equal(t, "IN"+day+"0008", n1)
	assert.Equal(t, "IN"+day+"0009", n2)

	// Un número asignado a mano adelanta el contador; uno menor no lo retrocede.
	require.NoError(t, gen.Observe(ctx, repos, "IN", "IN"+day+"0020"))
	require.NoError(t, gen.Observe(ctx, repos, "IN", "IN"+day+"0003"))
	n3, err := gen.Next(ctx, repos, "IN", at)
	require.NoError(t, err)
	assert.Equal(t, "IN"+day+"0021", n3)
}
