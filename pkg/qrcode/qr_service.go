package qrcode

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"billora-backend/internal/utils/logger"
	"billora-backend/pkg/analysis"
	"billora-backend/pkg/invoice"
	"context"
	"strings"

	"github.com/rs/zerolog"
)

type (
	QRService interface {
		Resolve(ctx context.Context, code string) (*domain.ResolveQRResponse, error)
		Generate(ctx context.Context, invoiceID string) (*domain.GenerateQRResponse, error)
	}

	qrService struct {
		qrRepository       QRRepository
		invoiceRepository  invoice.InvoiceRepository
		analysisRepository analysis.AnalysisRepository
		publicBaseURL      string
		log                zerolog.Logger
	}
)

func NewQRService(
	qrRepository QRRepository,
	invoiceRepository invoice.InvoiceRepository,
	analysisRepository analysis.AnalysisRepository,
	publicBaseURL string,
) QRService {
	return &qrService{
		qrRepository:       qrRepository,
		invoiceRepository:  invoiceRepository,
		analysisRepository: analysisRepository,
		publicBaseURL:      strings.TrimRight(publicBaseURL, "/"),
		log:                logger.WithComponent("qr"),
	}
}

func (s *qrService) Resolve(ctx context.Context, code string) (*domain.ResolveQRResponse, error) {
	if code == "" {
		return nil, domain.ErrQRPayloadRequired
	}

	payload, ok := ParsePayload(code)
	if !ok || payload.InvoiceID == "" {
		return nil, domain.ErrInvalidQRPayload
	}

	inv, err := s.invoiceRepository.GetInvoiceByID(ctx, payload.InvoiceID)
	if err != nil {
		return nil, err
	}

	view := publicInvoice(inv)

	// The analysis is optional in the public view.
	record, err := s.analysisRepository.GetAnalysisByID(ctx, payload.InvoiceID)
	if err != nil {
		s.log.Warn().Err(err).Str("invoice_id", payload.InvoiceID).Msg("AI analysis not available")
	}
	if record != nil {
		view.AIAnalysis = &domain.PublicAIAnalysis{
			Summary:        record.Summary,
			Tags:           record.Tags,
			Classification: record.Classification,
			Confidence:     record.Confidence,
			GeneratedAt:    record.GeneratedAt,
		}
	}

	return &domain.ResolveQRResponse{
		Invoice: view,
		QRData:  *payload,
	}, nil
}

func (s *qrService) Generate(ctx context.Context, invoiceID string) (*domain.GenerateQRResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvoiceIDRequired
	}

	if _, err := s.invoiceRepository.GetInvoiceByID(ctx, invoiceID); err != nil {
		return nil, err
	}

	payload, encoded, err := Encode(invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.qrRepository.SaveQRCode(ctx, &entities.QRCode{
		InvoiceID: invoiceID,
		Data:      encoded,
		Type:      entities.QRTypeInvoiceLookup,
	}); err != nil {
		return nil, err
	}

	return &domain.GenerateQRResponse{
		QRData:    payload,
		QRString:  encoded,
		LookupURL: s.publicBaseURL + "/invoice/" + invoiceID,
	}, nil
}

// publicInvoice drops everything but the fields safe to show a QR holder.
func publicInvoice(inv *entities.Invoice) domain.PublicInvoice {
	tags := inv.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.PublicInvoice{
		ID:               inv.ID,
		CustomerName:     inv.CustomerName,
		TotalAmount:      inv.Total,
		CreatedDate:      inv.CreatedAt,
		DueDate:          inv.DueDate,
		Status:           inv.Status,
		ItemsCount:       len(inv.Items),
		Tags:             tags,
		AISummary:        inv.AISummary,
		AIClassification: inv.AIClassification,
		AIStatus:         inv.AIStatus,
	}
}
