package kvstore

import (
	"github.com/go-redis/redis/v8"
	wbfredis "github.com/wb-go/wbf/redis"
)

// The wbf wrapper overrides Get and Set with string-returning variants, so
// the wrapper itself does not satisfy redis.Cmdable; wiring must hand over
// the embedded go-redis client.
var _ redis.Cmdable = new(wbfredis.Client).Client
