package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/domain/numbering"
	"github.com/jhoicas/superindo-api/internal/domain/repository"
)

const (
	counterTTL = 48 * time.Hour
	lockTTL    = 5 * time.Second
)

var _ ledger.NumberGenerator = (*NumberGenerator)(nil)

// NumberGenerator asigna consecutivos con INCR sobre seq:<prefijo>:<día>.
// La primera vez del día el contador se siembra, bajo un lock, con el último número de la tabla.
// Un rollback de la transición deja un hueco en la secuencia; la restricción única de la tabla
// sigue siendo la garantía final contra duplicados.
type NumberGenerator struct {
	rdb    goredis.UniversalClient
	locker *redislock.Client
}

// NewNumberGenerator construye el generador sobre un cliente ya conectado.
func NewNumberGenerator(rdb goredis.UniversalClient) *NumberGenerator {
	return &NumberGenerator{rdb: rdb, locker: redislock.New(rdb)}
}

// raiseScript sube el contador hasta ARGV[1] si ya existe, conservando su TTL.
var raiseScript = goredis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then return 0 end
if tonumber(redis.call("GET", KEYS[1])) < tonumber(ARGV[1]) then
	redis.call("SET", KEYS[1], ARGV[1], "KEEPTTL")
end
return 1
`)

func counterKey(prefix, day string) string { return "seq:" + prefix + ":" + day }

// Next implementa ledger.NumberGenerator.
func (g *NumberGenerator) Next(ctx context.Context, repos repository.Repositories, prefix string, at time.Time) (string, error) {
	key := counterKey(prefix, numbering.Day(at))
	if err := g.ensureSeeded(ctx, repos, key, prefix, at); err != nil {
		return "", err
	}
	seq, err := g.rdb.Incr(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("redis incr %s: %w", key, err)
	}
	return numbering.Format(prefix, at, int(seq))
}

// Observe implementa ledger.NumberGenerator: un número asignado a mano adelanta el contador
// de su día. Si el contador aún no existe, la siembra lo leerá de la tabla.
func (g *NumberGenerator) Observe(ctx context.Context, _ repository.Repositories, prefix, number string) error {
	day, seq, ok := numbering.Split(number, prefix)
	if !ok {
		return nil
	}
	key := counterKey(prefix, day)
	if err := raiseScript.Run(ctx, g.rdb, []string{key}, seq).Err(); err != nil {
		return fmt.Errorf("redis raise %s: %w", key, err)
	}
	return nil
}

func (g *NumberGenerator) ensureSeeded(ctx context.Context, repos repository.Repositories, key, prefix string, at time.Time) error {
	n, err := g.rdb.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis exists %s: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	lock, err := g.locker.Obtain(ctx, "lock:"+key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("could not obtain lock for %s", key)
	} else if err != nil {
		return fmt.Errorf("redis lock %s: %w", key, err)
	}
	defer func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}()

	seed, err := ledger.LastSequence(ctx, repos, prefix, at)
	if err != nil {
		return err
	}
	// SETNX: si otro proceso sembró mientras esperábamos el lock, se respeta su valor.
	if err := g.rdb.SetNX(ctx, key, seed, counterTTL).Err(); err != nil {
		return fmt.Errorf("redis seed %s: %w", key, err)
	}
	return nil
}
