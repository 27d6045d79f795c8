package model

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle actions recorded in the audit trail
const (
	ActionSubmitRequest     = "SUBMIT_REQUEST"
	ActionApproveRequest    = "APPROVE_REQUEST"
	ActionRejectRequest     = "REJECT_REQUEST"
	ActionAssignPickup      = "ASSIGN_PICKUP"
	ActionAcceptPickup      = "ACCEPT_PICKUP"
	ActionDeclinePickup     = "DECLINE_PICKUP"
	ActionExpireAssignment  = "EXPIRE_ASSIGNMENT"
	ActionIssueCode         = "ISSUE_COMPLETION_CODE"
	ActionCompleteRequest   = "COMPLETE_REQUEST"
	ActionCreditWallet      = "CREDIT_WALLET"
)

// AuditLog tracks Who, What, and When for every lifecycle transition
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable when the sweeper acts
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Request id as string
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable label
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
