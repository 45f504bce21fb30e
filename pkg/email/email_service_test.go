package email

import (
	"billora-backend/domain"
	"billora-backend/internal/utils/mailing"
	"billora-backend/internal/utils/storage"
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []mailing.Mail
	err  error
}

func (m *fakeMailer) SendMail(mail mailing.Mail) error {
	m.sent = append(m.sent, mail)
	return m.err
}

type fakeArchive struct {
	keys []string
	err  error
}

func (a *fakeArchive) UploadFile(_ context.Context, key string, _ []byte, _ string) (string, error) {
	a.keys = append(a.keys, key)
	return "https://archive/" + key, a.err
}

var pdfBytes = []byte("%PDF-1.4 fake")

func validRequest() domain.SendInvoiceEmailRequest {
	return domain.SendInvoiceEmailRequest{
		ToEmail:  "client@example.com",
		Subject:  "Invoice HD001",
		Body:     "Thanks for your <business>",
		PDFData:  base64.StdEncoding.EncodeToString(pdfBytes),
		FileName: "HD001.pdf",
	}
}

func newTestService(mailer *fakeMailer, archive storage.AwsS3) *emailService {
	service := NewEmailService(mailer, archive, "Billora Invoice System").(*emailService)
	service.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return service
}

func TestSendInvoiceEmail(t *testing.T) {
	mailer := &fakeMailer{}
	archive := &fakeArchive{}
	service := newTestService(mailer, archive)

	require.NoError(t, service.SendInvoiceEmail(context.Background(), validRequest()))
	require.Len(t, mailer.sent, 1)

	mail := mailer.sent[0]
	assert.Equal(t, "client@example.com", mail.To)
	assert.Equal(t, "Invoice HD001", mail.Subject)
	assert.Equal(t, "Thanks for your <business>", mail.TextBody)
	assert.Contains(t, mail.HTMLBody, "Thanks for your &lt;business&gt;")
	assert.Contains(t, mail.HTMLBody, "This email was sent from Billora Invoice System")
	assert.Contains(t, mail.HTMLBody, "2026 Billora")

	require.Len(t, mail.Attachments, 1)
	assert.Equal(t, "HD001.pdf", mail.Attachments[0].FileName)
	assert.Equal(t, "application/pdf", mail.Attachments[0].ContentType)
	assert.Equal(t, pdfBytes, mail.Attachments[0].Content)

	require.Len(t, archive.keys, 1)
	assert.Regexp(t, `^invoice-emails/[0-9a-f-]{36}/HD001\.pdf$`, archive.keys[0])
}

func TestSendInvoiceEmail_DataURLPrefix(t *testing.T) {
	mailer := &fakeMailer{}
	req := validRequest()
	req.PDFData = "data:application/pdf;base64," + req.PDFData

	require.NoError(t, newTestService(mailer, nil).SendInvoiceEmail(context.Background(), req))
	assert.Equal(t, pdfBytes, mailer.sent[0].Attachments[0].Content)
}

func TestSendInvoiceEmail_MissingFieldsRejectedBeforeSend(t *testing.T) {
	missing := map[string]func(*domain.SendInvoiceEmailRequest){
		"toEmail":  func(r *domain.SendInvoiceEmailRequest) { r.ToEmail = "" },
		"subject":  func(r *domain.SendInvoiceEmailRequest) { r.Subject = "" },
		"body":     func(r *domain.SendInvoiceEmailRequest) { r.Body = "" },
		"pdfData":  func(r *domain.SendInvoiceEmailRequest) { r.PDFData = "" },
		"fileName": func(r *domain.SendInvoiceEmailRequest) { r.FileName = "" },
	}

	for field, clear := range missing {
		t.Run(field, func(t *testing.T) {
			mailer := &fakeMailer{}
			req := validRequest()
			clear(&req)

			err := newTestService(mailer, nil).SendInvoiceEmail(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrMissingEmailFields)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestSendInvoiceEmail_InvalidPDF(t *testing.T) {
	mailer := &fakeMailer{}
	req := validRequest()
	req.PDFData = "not base64!!"

	err := newTestService(mailer, nil).SendInvoiceEmail(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidPDFData)
	assert.Empty(t, mailer.sent)
}

func TestSendInvoiceEmail_ProviderErrorPassesThrough(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("550 mailbox unavailable")}
	archive := &fakeArchive{}

	err := newTestService(mailer, archive).SendInvoiceEmail(context.Background(), validRequest())
	assert.EqualError(t, err, "550 mailbox unavailable")
	assert.Empty(t, archive.keys)
}

func TestSendInvoiceEmail_ArchiveFailureIsNotReturned(t *testing.T) {
	archive := &fakeArchive{err: errors.New("access denied")}

	err := newTestService(&fakeMailer{}, archive).SendInvoiceEmail(context.Background(), validRequest())
	assert.NoError(t, err)
	assert.Len(t, archive.keys, 1)
}
