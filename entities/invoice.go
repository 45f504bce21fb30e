package entities

import (
	"time"
)

const (
	AIStatusNone    = "none"
	AIStatusPending = "pending"
	AIStatusDone    = "done"
	AIStatusError   = "error"
)

type LineItem struct {
	Name     string  `json:"name" firestore:"name"`
	Quantity float64 `json:"quantity" firestore:"quantity"`
	Price    float64 `json:"price" firestore:"price"`
}

// Invoice is created by the mobile client. This service only writes the ai_* fields.
type Invoice struct {
	ID               string     `gorm:"primaryKey" json:"id" firestore:"id,omitempty"`
	CustomerName     string     `gorm:"column:customer_name" json:"customerName" firestore:"customerName"`
	Items            []LineItem `gorm:"column:items;serializer:json;type:jsonb" json:"items" firestore:"items"`
	Total            float64    `gorm:"column:total" json:"total" firestore:"total"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp" json:"createdAt" firestore:"createdAt"`
	DueDate          *time.Time `gorm:"column:due_date;type:timestamp" json:"dueDate,omitempty" firestore:"dueDate,omitempty"`
	Note             string     `gorm:"column:note;type:text" json:"note" firestore:"note"`
	Tags             []string   `gorm:"column:tags;serializer:json;type:jsonb" json:"tags" firestore:"tags"`
	Status           string     `gorm:"column:status" json:"status" firestore:"status"`
	AIStatus         string     `gorm:"column:ai_status" json:"ai_status" firestore:"ai_status"`
	AISummary        string     `gorm:"column:ai_summary;type:text" json:"ai_summary" firestore:"ai_summary"`
	AIClassification string     `gorm:"column:ai_classification" json:"ai_classification" firestore:"ai_classification"`
	AISuggestedTags  []string   `gorm:"column:ai_suggested_tags;serializer:json;type:jsonb" json:"ai_suggested_tags" firestore:"ai_suggested_tags"`
	AIUpdatedAt      *time.Time `gorm:"column:ai_updated_at;type:timestamp" json:"ai_updated_at,omitempty" firestore:"ai_updated_at,omitempty"`
	AIErrorReason    string     `gorm:"column:ai_error_reason;type:text" json:"ai_error_reason,omitempty" firestore:"ai_error_reason,omitempty"`
}

func (Invoice) TableName() string { return "invoices" }

// CurrentAIStatus treats a missing ai_status as "none".
func (i *Invoice) CurrentAIStatus() string {
	if i.AIStatus == "" {
		return AIStatusNone
	}
	return i.AIStatus
}
