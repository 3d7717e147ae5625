package cache

import (
	"context"
	"time"
)

// Aside returns the value cached at key, or calls load and stores its result for ttl.
// When force is set the key is cleared first and load always runs.
// A cache failure is not fatal: the loader result is still returned.
func Aside[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	force bool,
	load func(context.Context) (T, error),
) (value T, hit bool, err error) {

	if force {
		_, _ = c.Delete(ctx, key)
	} else {
		var cached T
		if ok, gerr := c.GetJSON(ctx, key, &cached); gerr == nil && ok {
			return cached, true, nil
		}
	}

	value, err = load(ctx)
	if err != nil {
		return value, false, err
	}

	_ = c.SetJSON(ctx, key, value, ttl)
	return value, false, nil
}
