package utils

import (
	"fmt"
	"strings"
	"sync"

	"donation-management-api/config"
	"donation-management-api/models"

	"gorm.io/gorm"
)

const (
	// Canonical status codes mirror submission_statuses.status_code.
	// Volunteer rows reuse the same codes under their own labels
	// (Requested/Approved/Rejected).
	StatusCodePending   = "0" // Pending / Requested
	StatusCodeApproved  = "1" // Approved
	StatusCodeCancelled = "2" // Cancelled / Rejected
)

var (
	statusCodeSynonyms = map[string][]string{
		StatusCodePending: {
			"0",
			"pending",
			"requested",
		},
		StatusCodeApproved: {
			"1",
			"approved",
		},
		StatusCodeCancelled: {
			"2",
			"cancelled",
			"canceled",
			"rejected",
		},
	}
	statusAliasToCanonical = buildStatusAliasMap()
)

func buildStatusAliasMap() map[string]string {
	aliasMap := make(map[string]string)
	for canonical, synonyms := range statusCodeSynonyms {
		canonicalKey := normalizeStatusCode(canonical)
		if canonicalKey != "" {
			aliasMap[canonicalKey] = canonical
		}
		for _, alias := range synonyms {
			if normalized := normalizeStatusCode(alias); normalized != "" {
				aliasMap[normalized] = canonical
			}
		}
	}
	return aliasMap
}

func normalizeStatusCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// CanonicalStatusCode resolves display labels and legacy aliases
// ("Approved", "canceled", "1") to the canonical status code.
func CanonicalStatusCode(code string) string {
	normalized := normalizeStatusCode(code)
	if canonical, ok := statusAliasToCanonical[normalized]; ok {
		return canonical
	}
	return normalized
}

type statusCacheKey struct {
	submissionType models.SubmissionType
	code           string
}

type statusCache struct {
	sync.RWMutex
	byCode map[statusCacheKey]models.SubmissionStatus
	byID   map[int]models.SubmissionStatus
}

var submissionStatusCache = statusCache{
	byCode: make(map[statusCacheKey]models.SubmissionStatus),
	byID:   make(map[int]models.SubmissionStatus),
}

func cacheStatus(status models.SubmissionStatus) {
	submissionStatusCache.Lock()
	defer submissionStatusCache.Unlock()

	if status.StatusID != 0 {
		submissionStatusCache.byID[status.StatusID] = status
	}

	key := statusCacheKey{status.SubmissionType, CanonicalStatusCode(status.StatusCode)}
	submissionStatusCache.byCode[key] = status
}

func getCachedStatusByCode(submissionType models.SubmissionType, code string) (models.SubmissionStatus, bool) {
	key := statusCacheKey{submissionType, CanonicalStatusCode(code)}

	submissionStatusCache.RLock()
	defer submissionStatusCache.RUnlock()

	status, ok := submissionStatusCache.byCode[key]
	return status, ok && status.StatusID != 0
}

func getCachedStatusByID(id int) (models.SubmissionStatus, bool) {
	submissionStatusCache.RLock()
	defer submissionStatusCache.RUnlock()

	status, ok := submissionStatusCache.byID[id]
	return status, ok && status.StatusID != 0
}

// ResetStatusCache clears the lookup cache. Intended for tests and for the
// admin endpoint that reseeds the status table.
func ResetStatusCache() {
	submissionStatusCache.Lock()
	defer submissionStatusCache.Unlock()
	submissionStatusCache.byCode = make(map[statusCacheKey]models.SubmissionStatus)
	submissionStatusCache.byID = make(map[int]models.SubmissionStatus)
}

// GetSubmissionStatusByCode resolves a status row for a submission type from
// a code, display label or legacy alias.
func GetSubmissionStatusByCode(submissionType models.SubmissionType, code string) (models.SubmissionStatus, error) {
	canonical := CanonicalStatusCode(code)
	if canonical == "" {
		return models.SubmissionStatus{}, fmt.Errorf("status code is required")
	}

	if status, ok := getCachedStatusByCode(submissionType, canonical); ok {
		return status, nil
	}

	var status models.SubmissionStatus
	err := config.DB.
		Where("submission_type = ? AND status_code = ? AND delete_at IS NULL", submissionType, canonical).
		First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.SubmissionStatus{}, fmt.Errorf("status '%s' not found for %s", code, submissionType)
		}
		return models.SubmissionStatus{}, err
	}

	cacheStatus(status)
	return status, nil
}

// GetSubmissionStatusByID resolves a status row from its primary key.
func GetSubmissionStatusByID(id int) (models.SubmissionStatus, error) {
	if status, ok := getCachedStatusByID(id); ok {
		return status, nil
	}

	var status models.SubmissionStatus
	err := config.DB.Where("status_id = ? AND delete_at IS NULL", id).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.SubmissionStatus{}, fmt.Errorf("status with id %d not found", id)
		}
		return models.SubmissionStatus{}, err
	}

	cacheStatus(status)
	return status, nil
}

// GetStatusIDByCode resolves the status_id for a submission type and code.
func GetStatusIDByCode(submissionType models.SubmissionType, code string) (int, error) {
	status, err := GetSubmissionStatusByCode(submissionType, code)
	if err != nil {
		return 0, err
	}
	return status.StatusID, nil
}

// StatusMatchesCodes reports whether the status row identified by statusID
// matches any of the provided codes or aliases.
func StatusMatchesCodes(statusID int, codes ...string) (bool, error) {
	status, err := GetSubmissionStatusByID(statusID)
	if err != nil {
		return false, err
	}
	statusKey := CanonicalStatusCode(status.StatusCode)

	for _, code := range codes {
		if statusKey == CanonicalStatusCode(code) {
			return true, nil
		}
	}
	return false, nil
}
