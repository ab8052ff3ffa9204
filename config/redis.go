package config

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis is an optional cache client for public donation listings. It stays
// nil when REDIS_URL is not set; callers must tolerate a nil client.
var Redis *redis.Client

func InitRedis() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, list caching disabled")
		return
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL, list caching disabled: %v", err)
		return
	}

	Redis = redis.NewClient(opt)
	log.Println("Redis cache connected")
}
