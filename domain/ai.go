package domain

import (
	"billora-backend/entities"
	"errors"
)

var (
	MessageSuccessSuggestTags    = "tags suggested successfully"
	MessageSuccessTriggerAnalyze = "AI analysis triggered"
	MessageSuccessAnalyzeInvoice = "AI analysis completed"

	MessageFailedSuggestTags    = "Failed to suggest tags"
	MessageInvoiceDataRequired  = "Invoice data is required"
	MessageInvoiceNotFound      = "Invoice not found"
	MessageFailedTriggerAnalyze = "Failed to trigger AI analysis"
	MessageFailedAnalyzeInvoice = "Failed to record AI analysis"

	ErrInvoiceDataRequired = errors.New("invoice data is required")
)

type (
	SuggestTagsRequest struct {
		InvoiceID   string       `json:"invoiceId" validate:"required_without=InvoiceData"`
		InvoiceData *InvoiceData `json:"invoiceData" validate:"required_without=InvoiceID"`
		Message     string       `json:"message"`
		UserMessage string       `json:"userMessage"`
	}

	InvoiceData struct {
		CustomerName string              `json:"customerName"`
		Items        []entities.LineItem `json:"items"`
		Total        float64             `json:"total"`
		Description  string              `json:"description"`
		Note         string              `json:"note"`
		Tags         []string            `json:"tags"`
	}

	SuggestTagsData struct {
		SuggestedTags  []string `json:"suggested_tags"`
		Summary        string   `json:"summary"`
		Classification string   `json:"classification"`
		Confidence     float64  `json:"confidence"`
		AnalysisID     string   `json:"analysis_id"`
	}

	SuggestTagsResult struct {
		Response string
		Data     SuggestTagsData
	}

	SuggestTagsResponse struct {
		Success  bool            `json:"success"`
		Message  string          `json:"message"`
		Response string          `json:"response"`
		Data     SuggestTagsData `json:"data"`
	}

	TriggerAnalyzeRequest struct {
		InvoiceID string `json:"invoiceId" validate:"required"`
	}

	InvoiceCreatedEvent struct {
		InvoiceID string            `json:"invoiceId" validate:"required"`
		Invoice   *entities.Invoice `json:"invoice"`
	}

	// AnalysisOutcome reports how far the trigger pipeline got. The analysis
	// document and the invoice update are separate writes, so AnalysisWritten
	// can be true while Status is "error".
	AnalysisOutcome struct {
		InvoiceID       string `json:"invoice_id"`
		Status          string `json:"status"`
		AnalysisWritten bool   `json:"analysis_written"`
		InvoiceUpdated  bool   `json:"invoice_updated"`
		ErrorReason     string `json:"error_reason,omitempty"`
	}

	CallableMessage struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	TriggerAnalyzeResult struct {
		CallableMessage
		Analysis AnalysisOutcome `json:"analysis"`
	}
)

// Intent returns the free-text user request, accepting the legacy userMessage key.
func (r SuggestTagsRequest) Intent() string {
	if r.Message != "" {
		return r.Message
	}
	return r.UserMessage
}

// Snapshot converts inline invoice data into its stored form.
func (d InvoiceData) Snapshot() *entities.InvoiceSnapshot {
	description := d.Description
	if description == "" {
		description = d.Note
	}
	return &entities.InvoiceSnapshot{
		CustomerName: d.CustomerName,
		Items:        d.Items,
		Total:        d.Total,
		Description:  description,
		Tags:         d.Tags,
	}
}

func InvoiceDataFromEntity(inv *entities.Invoice) InvoiceData {
	return InvoiceData{
		CustomerName: inv.CustomerName,
		Items:        inv.Items,
		Total:        inv.Total,
		Description:  inv.Note,
		Note:         inv.Note,
		Tags:         inv.Tags,
	}
}
