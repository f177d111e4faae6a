package rdx

import (
	"log"
	"os"
	"time"

	"pitchbook/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared Redis client. REDIS_URL defaults to a local
// instance so development works without configuration.
func Init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Println("Redis unavailable:", err)
	}
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func SetWithExpiry(key, value string, expiry time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, expiry).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}

// RdxSetNX is used for once-a-day jobs: it returns true only for the
// first caller to claim the key within the expiry window.
func RdxSetNX(key, value string, expiry time.Duration) (bool, error) {
	return Conn.SetNX(globals.Ctx, key, value, expiry).Result()
}

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}
