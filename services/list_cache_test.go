package services

import (
	"context"
	"testing"

	"donation-management-api/config"
	"donation-management-api/models"

	"github.com/stretchr/testify/assert"
)

func TestListCacheDisabledWithoutRedis(t *testing.T) {
	config.Redis = nil

	ctx := context.Background()
	var dest []models.MaterialDonation
	assert.False(t, GetCachedList(ctx, models.SubmissionTypeMaterialDonation, "1", &dest))

	// Must not panic with no client configured.
	StoreCachedList(ctx, models.SubmissionTypeMaterialDonation, "1", dest)
	InvalidateListCache(ctx, models.SubmissionTypeMaterialDonation)
}
