package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"feesetu_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler prunes blacklist and refresh-token rows
// whose natural expiry has passed. Runs hourly for the process lifetime.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if err := db.Unscoped().
				Where("expired_at < ?", now).
				Delete(&model.TokenBlacklist{}).Error; err != nil {
				log.Printf("[WARN] blacklist cleanup: %v", err)
			}
			if err := db.Unscoped().
				Where("expires_at < ?", now).
				Delete(&model.RefreshToken{}).Error; err != nil {
				log.Printf("[WARN] refresh token cleanup: %v", err)
			}
		}
	}()
}
