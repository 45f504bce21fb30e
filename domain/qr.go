package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessResolveQR  = "invoice resolved"
	MessageSuccessGenerateQR = "QR code generated"

	MessageQRPayloadRequired = "QR code payload is required"
	MessageInvalidQRFormat   = "Invalid QR code format"

	ErrQRPayloadRequired = errors.New("qr code payload is required")
	ErrInvalidQRPayload  = errors.New("invalid qr code format")
)

type (
	QRPayload struct {
		Type      string `json:"type"`
		InvoiceID string `json:"invoice_id"`
		Version   int    `json:"version"`
	}

	EncodedQRPayload struct {
		T  string `json:"t"`
		ID string `json:"id"`
		V  int    `json:"v"`
	}

	GenerateQRRequest struct {
		InvoiceID string `json:"invoiceId" validate:"required"`
	}

	GenerateQRResponse struct {
		QRData    EncodedQRPayload `json:"qr_data"`
		QRString  string           `json:"qr_string"`
		LookupURL string           `json:"lookup_url"`
	}

	PublicAIAnalysis struct {
		Summary        string    `json:"summary"`
		Tags           []string  `json:"tags"`
		Classification string    `json:"classification"`
		Confidence     float64   `json:"confidence"`
		GeneratedAt    time.Time `json:"generated_at"`
	}

	// PublicInvoice is the view of an invoice exposed to anyone holding its QR code.
	PublicInvoice struct {
		ID               string            `json:"id"`
		CustomerName     string            `json:"customer_name"`
		TotalAmount      float64           `json:"total_amount"`
		CreatedDate      time.Time         `json:"created_date"`
		DueDate          *time.Time        `json:"due_date,omitempty"`
		Status           string            `json:"status"`
		ItemsCount       int               `json:"items_count"`
		Tags             []string          `json:"tags"`
		AISummary        string            `json:"ai_summary,omitempty"`
		AIClassification string            `json:"ai_classification,omitempty"`
		AIStatus         string            `json:"ai_status,omitempty"`
		AIAnalysis       *PublicAIAnalysis `json:"ai_analysis,omitempty"`
	}

	ResolveQRResponse struct {
		Invoice PublicInvoice `json:"invoice"`
		QRData  QRPayload     `json:"qr_data"`
	}
)
