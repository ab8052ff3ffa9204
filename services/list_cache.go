package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
)

// The public donation listings are the hottest read path (the landing page
// polls them), so they get a short-lived Redis cache when a client is
// configured. Everything here degrades to a no-op without Redis.

const listCacheTTL = time.Minute

func listCacheKey(submissionType models.SubmissionType, statusCode string) string {
	return fmt.Sprintf("listing:%s:%s", submissionType, statusCode)
}

// GetCachedList loads a cached listing into dest. Returns false on miss,
// decode failure or when caching is disabled.
func GetCachedList(ctx context.Context, submissionType models.SubmissionType, statusCode string, dest interface{}) bool {
	if config.Redis == nil {
		return false
	}

	data, err := config.Redis.Get(ctx, listCacheKey(submissionType, statusCode)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("list cache decode failed (%s/%s): %v", submissionType, statusCode, err)
		return false
	}
	return true
}

// StoreCachedList writes a listing to the cache. Best effort.
func StoreCachedList(ctx context.Context, submissionType models.SubmissionType, statusCode string, value interface{}) {
	if config.Redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := config.Redis.Set(ctx, listCacheKey(submissionType, statusCode), data, listCacheTTL).Err(); err != nil {
		log.Printf("list cache store failed (%s/%s): %v", submissionType, statusCode, err)
	}
}

// InvalidateListCache drops all cached listings for a submission type.
// Called after creates and transitions.
func InvalidateListCache(ctx context.Context, submissionType models.SubmissionType) {
	if config.Redis == nil {
		return
	}

	keys := []string{
		listCacheKey(submissionType, "0"),
		listCacheKey(submissionType, "1"),
		listCacheKey(submissionType, "2"),
	}
	if err := config.Redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("list cache invalidation failed (%s): %v", submissionType, err)
	}
}
