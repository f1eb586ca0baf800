package model

import (
	"time"

	"gorm.io/gorm"
)

// TokenBlacklist stores the HMAC hex of revoked access tokens until they
// would have expired anyway.
type TokenBlacklist struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Token     string         `gorm:"column:token;type:text;uniqueIndex;not null" json:"-"`
	ExpiredAt time.Time      `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
