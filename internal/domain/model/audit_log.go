package model

import "time"

type AuditAction string

const (
	AuditActionCreateOrder AuditAction = "CREATE_ORDER"
	AuditActionPayOrder    AuditAction = "PAY_ORDER"
	AuditActionCancelOrder AuditAction = "CANCEL_ORDER"
)

type AuditResourceType string

const (
	AuditResourceOrder AuditResourceType = "order"
)

// AuditLog records who changed which resource and how.
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	// JSON strings
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
