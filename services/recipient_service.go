package services

import (
	"fmt"
	"sync"
	"time"

	"collab-platform-api/config"
	"collab-platform-api/models"
)

var (
	recipientCacheMu sync.RWMutex
	recipientCache   *recipientCacheEntry
	recipientTTL     = 5 * time.Minute
)

type recipientCacheEntry struct {
	labAdmins []models.User
	fetchedAt time.Time
}

func loadLabAdmins(force bool) (*recipientCacheEntry, error) {
	recipientCacheMu.RLock()
	cached := recipientCache
	recipientCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < recipientTTL {
		return cached, nil
	}

	recipientCacheMu.Lock()
	defer recipientCacheMu.Unlock()

	if recipientCache != nil && !force && time.Since(recipientCache.fetchedAt) < recipientTTL {
		return recipientCache, nil
	}

	var rows []models.User
	if err := config.DB.Where("role_id = ? AND delete_at IS NULL", models.RoleLabAdmin).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load lab admin recipients: %w", err)
	}

	entry := &recipientCacheEntry{
		labAdmins: rows,
		fetchedAt: time.Now(),
	}
	recipientCache = entry
	return entry, nil
}

// ClearRecipientCache invalidates the in-memory recipient cache.
func ClearRecipientCache() {
	recipientCacheMu.Lock()
	defer recipientCacheMu.Unlock()
	recipientCache = nil
}

// GetLabAdminRecipients returns the lab admin users that receive workflow
// notifications, with caching support.
func GetLabAdminRecipients() ([]models.User, error) {
	entry, err := loadLabAdmins(false)
	if err != nil {
		return nil, err
	}
	return entry.labAdmins, nil
}
