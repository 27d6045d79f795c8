package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestStatus enum constants
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
)

// PickupResponseStatus enum constants — the nested sub-state a scheduled
// request tracks while waiting for the assigned agent's answer.
const (
	ResponseAwaiting = "AWAITING_RESPONSE"
	ResponseAccepted = "ACCEPTED"
	ResponseDeclined = "DECLINED"
)

// DeviceCondition enum constants
const (
	ConditionWorking          = "WORKING"
	ConditionPartiallyWorking = "PARTIALLY_WORKING"
	ConditionNotWorking       = "NOT_WORKING"
)

// PickupAssignment binds a request to a specific agent and pickup time.
// The sub-record is considered present iff ResponseStatus is non-empty;
// every rollback path clears it through PickupRequest.ClearAssignment so
// a request outside Scheduled never carries a live assignment.
type PickupAssignment struct {
	AgentID          *uuid.UUID `gorm:"type:uuid;index" json:"agent_id,omitempty"`
	AgentName        string     `gorm:"type:varchar(100)" json:"agent_name,omitempty"`
	PickupAt         *time.Time `json:"pickup_at,omitempty"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	ResponseStatus   string     `gorm:"type:varchar(20);index" json:"response_status,omitempty"`
	ResponseDeadline *time.Time `gorm:"index" json:"response_deadline,omitempty"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
}

// PickupRequest is one device pickup lifecycle record, from submission
// through approval, scheduling and completion. Requester contact fields are
// immutable after creation.
type PickupRequest struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequesterID    uuid.UUID `gorm:"type:uuid;not null;index" json:"requester_id"`
	RequesterName  string    `gorm:"type:varchar(100);not null" json:"requester_name"`
	RequesterEmail string    `gorm:"type:varchar(150);not null" json:"requester_email"`
	PickupAddress  string    `gorm:"type:varchar(255);not null" json:"pickup_address"`

	DeviceType string `gorm:"type:varchar(50);not null" json:"device_type"`
	Brand      string `gorm:"type:varchar(100)" json:"brand"`
	Model      string `gorm:"type:varchar(100)" json:"model"`
	Condition  string `gorm:"type:varchar(30)" json:"condition"` // WORKING, PARTIALLY_WORKING, NOT_WORKING
	Quantity   int    `gorm:"type:int;not null;default:1" json:"quantity"`
	Remarks    string `gorm:"type:text" json:"remarks,omitempty"`
	ImagePaths string `gorm:"type:text" json:"image_paths,omitempty"` // comma-separated evidence references

	Status          string `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	RejectionReason string `gorm:"type:text" json:"rejection_reason,omitempty"`

	AllocatedRange  string           `gorm:"type:varchar(50)" json:"allocated_range,omitempty"`
	AllocatedAmount *decimal.Decimal `gorm:"type:decimal(18,2)" json:"allocated_amount,omitempty"`

	Assignment PickupAssignment `gorm:"embedded;embeddedPrefix:pickup_" json:"assignment"`

	// Single-use secret gating the Completed transition. Never serialized.
	CompletionCode string `gorm:"type:varchar(6)" json:"-"`

	PaymentStatus string           `gorm:"type:varchar(20)" json:"payment_status,omitempty"` // PAID once settled
	PaidAmount    *decimal.Decimal `gorm:"type:decimal(18,2)" json:"paid_amount,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAssignment reports whether the assignment sub-record is present.
func (r *PickupRequest) HasAssignment() bool {
	return r.Assignment.ResponseStatus != ""
}

// ClearAssignment unsets the assignment sub-record. respondedAt survives as
// the only trace distinguishing an explicit decline (set) from a sweeper
// expiry (nil); the next AssignPickup overwrites it wholesale.
func (r *PickupRequest) ClearAssignment(respondedAt *time.Time) {
	r.Assignment = PickupAssignment{RespondedAt: respondedAt}
}
