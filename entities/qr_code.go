package entities

import (
	"time"
)

const QRTypeInvoiceLookup = "invoice_lookup"

type QRCode struct {
	InvoiceID   string    `gorm:"primaryKey;column:invoice_id" json:"invoice_id" firestore:"invoice_id"`
	Data        string    `gorm:"column:data;type:text" json:"data" firestore:"data"`
	GeneratedAt time.Time `gorm:"column:generated_at;type:timestamp" json:"generated_at" firestore:"generated_at,serverTimestamp"`
	Type        string    `gorm:"column:type" json:"type" firestore:"type"`
}

func (QRCode) TableName() string { return "qr_codes" }
