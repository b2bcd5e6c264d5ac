// Package redis connects to Redis for the session store.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := session.NewRedisStore(client)
//
// Connect retries the initial ping according to Config. Healthcheck adapts a
// client to a readiness probe.
package redis
