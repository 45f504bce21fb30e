package email

import (
	"billora-backend/domain"
	"billora-backend/internal/utils/logger"
	"billora-backend/internal/utils/mailing"
	"billora-backend/internal/utils/storage"
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	pdfContentType = "application/pdf"
	pdfDataURLHead = "data:application/pdf;base64,"
	archivePrefix  = "invoice-emails"
)

//go:embed invoice_email.html
var invoiceEmailHTML string

var invoiceEmailTemplate = template.Must(template.New("invoice_email").Parse(invoiceEmailHTML))

type (
	EmailService interface {
		SendInvoiceEmail(ctx context.Context, req domain.SendInvoiceEmailRequest) error
	}

	emailService struct {
		mailer   mailing.Mailer
		archive  storage.AwsS3
		fromName string
		now      func() time.Time
		log      zerolog.Logger
	}
)

// NewEmailService sends through mailer. archive may be nil, which disables
// archiving sent PDFs.
func NewEmailService(mailer mailing.Mailer, archive storage.AwsS3, fromName string) EmailService {
	return &emailService{
		mailer:   mailer,
		archive:  archive,
		fromName: fromName,
		now:      time.Now,
		log:      logger.WithComponent("email"),
	}
}

func (s *emailService) SendInvoiceEmail(ctx context.Context, req domain.SendInvoiceEmailRequest) error {
	if !req.HasRequiredFields() {
		return domain.ErrMissingEmailFields
	}

	pdf, err := decodePDF(req.PDFData)
	if err != nil {
		return err
	}

	html, err := s.renderHTML(req.Body)
	if err != nil {
		return err
	}

	if err := s.mailer.SendMail(mailing.Mail{
		To:       req.ToEmail,
		Subject:  req.Subject,
		TextBody: req.Body,
		HTMLBody: html,
		Attachments: []mailing.Attachment{{
			FileName:    req.FileName,
			ContentType: pdfContentType,
			Content:     pdf,
		}},
	}); err != nil {
		return err
	}

	s.log.Info().Str("to", req.ToEmail).Str("file_name", req.FileName).Msg("invoice email sent")
	s.archivePDF(ctx, req.FileName, pdf)
	return nil
}

func (s *emailService) renderHTML(body string) (string, error) {
	var buf bytes.Buffer
	err := invoiceEmailTemplate.Execute(&buf, struct {
		Body     string
		FromName string
		Year     int
	}{
		Body:     body,
		FromName: s.fromName,
		Year:     s.now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("render invoice email: %w", err)
	}
	return buf.String(), nil
}

// archivePDF never fails the send; the mail is already out.
func (s *emailService) archivePDF(ctx context.Context, fileName string, pdf []byte) {
	if s.archive == nil {
		return
	}

	key := fmt.Sprintf("%s/%s/%s", archivePrefix, uuid.NewString(), fileName)
	url, err := s.archive.UploadFile(ctx, key, pdf, pdfContentType)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to archive invoice pdf")
		return
	}
	s.log.Debug().Str("url", url).Msg("invoice pdf archived")
}

func decodePDF(data string) ([]byte, error) {
	data = strings.TrimPrefix(strings.TrimSpace(data), pdfDataURLHead)
	pdf, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDFData, err)
	}
	return pdf, nil
}
