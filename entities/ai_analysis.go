package entities

import (
	"time"
)

type ModelInfo struct {
	Provider        string `json:"provider" firestore:"provider"`
	ModelID         string `json:"model_id" firestore:"model_id"`
	Version         string `json:"version" firestore:"version"`
	APIEndpoint     string `json:"api_endpoint,omitempty" firestore:"api_endpoint,omitempty"`
	MetadataJSONURL string `json:"metadata_json_url,omitempty" firestore:"metadata_json_url,omitempty"`
}

// InvoiceSnapshot is the inline invoice data a tag suggestion was computed from.
type InvoiceSnapshot struct {
	CustomerName string     `json:"customerName" firestore:"customerName"`
	Items        []LineItem `json:"items" firestore:"items"`
	Total        float64    `json:"total" firestore:"total"`
	Description  string     `json:"description" firestore:"description"`
	Tags         []string   `json:"tags,omitempty" firestore:"tags,omitempty"`
}

// AIAnalysis is written once per analysis call and overwritten wholesale on retrigger.
type AIAnalysis struct {
	ID             string           `gorm:"primaryKey" json:"id" firestore:"id"`
	InvoiceID      string           `gorm:"column:invoice_id;index" json:"invoice_id,omitempty" firestore:"invoice_id,omitempty"`
	InvoiceData    *InvoiceSnapshot `gorm:"column:invoice_data;serializer:json;type:jsonb" json:"invoice_data,omitempty" firestore:"invoice_data,omitempty"`
	UserMessage    string           `gorm:"column:user_message;type:text" json:"user_message,omitempty" firestore:"user_message,omitempty"`
	Summary        string           `gorm:"column:summary;type:text" json:"summary" firestore:"summary"`
	Tags           []string         `gorm:"column:tags;serializer:json;type:jsonb" json:"tags" firestore:"tags"`
	Classification string           `gorm:"column:classification" json:"classification" firestore:"classification"`
	Confidence     float64          `gorm:"column:confidence" json:"confidence" firestore:"confidence"`
	ModelInfo      ModelInfo        `gorm:"column:model_info;serializer:json;type:jsonb" json:"model_info" firestore:"model_info"`
	RawResponse    string           `gorm:"column:raw_response;type:text" json:"raw_response" firestore:"raw_response"`
	GeneratedAt    time.Time        `gorm:"column:generated_at;type:timestamp" json:"generated_at" firestore:"generated_at,serverTimestamp"`
}

func (AIAnalysis) TableName() string { return "ai_analyses" }
