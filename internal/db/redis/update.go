package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/lang2lang/vocabd/internal/db"
)

// maxUpdateAttempts bounds the WATCH retry loop. Contention on a single
// vocabulary key is rare (two users resolving the same word in the same
// instant), so a handful of retries is plenty.
const maxUpdateAttempts = 5

// HUpdate implements db.HashUpdater with an optimistic WATCH/MULTI/EXEC
// cycle on a dedicated connection. The update callback sees nil when the
// key does not exist. EXEC aborts (nil reply) when another client wrote
// the watched key; the cycle then re-reads and retries.
func (s *Store) HUpdate(
	ctx context.Context,
	key string,
	update func(current map[string]string) (map[string]string, error),
) (map[string]string, error) {
	var out map[string]string

	err := s.client.Dedicated(func(c rueidis.DedicatedClient) error {
		for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
			if err := c.Do(ctx, c.B().Watch().Key(key).Build()).Error(); err != nil {
				return &db.Error{Op: db.OpWatch, Err: err}
			}

			current, err := c.Do(ctx, c.B().Hgetall().Key(key).Build()).AsStrMap()
			if err != nil {
				return &db.Error{Op: db.OpHGetAll, Err: err}
			}
			if len(current) == 0 {
				current = nil
			}

			next, err := update(current)
			if err != nil {
				_ = c.Do(ctx, c.B().Unwatch().Build()).Error()
				return err
			}

			hset := c.B().Hset().Key(key).FieldValue()
			for k, v := range next {
				hset = hset.FieldValue(k, v)
			}

			results := c.DoMulti(ctx,
				c.B().Multi().Build(),
				hset.Build(),
				c.B().Exec().Build(),
			)
			execErr := results[len(results)-1].Error()
			if execErr == nil {
				out = next
				return nil
			}
			if rueidis.IsRedisNil(execErr) {
				continue // watched key changed under us, retry
			}
			return &db.Error{Op: db.OpExec, Err: execErr}
		}
		return db.ErrUpdateContention
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
