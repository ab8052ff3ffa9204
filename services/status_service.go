package services

import (
	"fmt"
	"sync"
	"time"

	"donation-management-api/config"
	"donation-management-api/models"
)

var (
	statusCacheMu sync.RWMutex
	statusCache   *statusCacheEntry
	statusTTL     = 5 * time.Minute
)

type statusCacheEntry struct {
	statuses  []models.SubmissionStatus
	byType    map[models.SubmissionType][]models.SubmissionStatus
	fetchedAt time.Time
}

func loadStatuses(force bool) (*statusCacheEntry, error) {
	statusCacheMu.RLock()
	cached := statusCache
	statusCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < statusTTL {
		return cached, nil
	}

	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()

	if statusCache != nil && !force && time.Since(statusCache.fetchedAt) < statusTTL {
		return statusCache, nil
	}

	var rows []models.SubmissionStatus
	if err := config.DB.Where("delete_at IS NULL").Order("submission_type, status_code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load submission statuses: %w", err)
	}

	byType := make(map[models.SubmissionType][]models.SubmissionStatus)
	for _, status := range rows {
		byType[status.SubmissionType] = append(byType[status.SubmissionType], status)
	}

	entry := &statusCacheEntry{
		statuses:  rows,
		byType:    byType,
		fetchedAt: time.Now(),
	}
	statusCache = entry
	return entry, nil
}

// ClearStatusCache invalidates the in-memory status list cache.
func ClearStatusCache() {
	statusCacheMu.Lock()
	defer statusCacheMu.Unlock()
	statusCache = nil
}

// GetStatuses returns all statuses with caching support.
func GetStatuses() ([]models.SubmissionStatus, error) {
	entry, err := loadStatuses(false)
	if err != nil {
		return nil, err
	}
	return entry.statuses, nil
}

// GetStatusesByType returns the status set defined for one submission type.
func GetStatusesByType(submissionType models.SubmissionType) ([]models.SubmissionStatus, error) {
	entry, err := loadStatuses(false)
	if err != nil {
		return nil, err
	}
	return entry.byType[submissionType], nil
}
