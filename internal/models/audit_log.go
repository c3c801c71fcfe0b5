package models

// AuditLog records mutating operations for traceability, including the
// administrative schema reset.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"size:50;not null" json:"action"`
	ResourceType string `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `gorm:"size:45" json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
