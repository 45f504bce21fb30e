package domain

import (
	"errors"
)

var (
	MessageSuccessSendEmail = "Email sent successfully"

	MessageMissingRequiredFields = "Missing required fields"
	MessageInvalidPDFData        = "Invalid PDF data"
	MessageFailedSendEmail       = "Failed to send email"

	ErrMissingEmailFields = errors.New("missing required fields")
	ErrInvalidPDFData     = errors.New("pdfData is not valid base64")
)

type SendInvoiceEmailRequest struct {
	ToEmail  string `json:"toEmail" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Body     string `json:"body" validate:"required"`
	PDFData  string `json:"pdfData" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
}

// HasRequiredFields reports whether every field needed for delivery is present.
func (r SendInvoiceEmailRequest) HasRequiredFields() bool {
	return r.ToEmail != "" && r.Subject != "" && r.Body != "" && r.PDFData != "" && r.FileName != ""
}
