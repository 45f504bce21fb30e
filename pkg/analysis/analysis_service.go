package analysis

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"billora-backend/internal/utils/logger"
	"billora-backend/pkg/ai"
	"billora-backend/pkg/airesponse"
	"billora-backend/pkg/invoice"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

type (
	AnalysisService interface {
		// AnalyzeInvoice runs pending -> AI call -> analysis write -> invoice write.
		// inv may be nil, in which case the invoice is loaded after it is marked pending.
		AnalyzeInvoice(ctx context.Context, invoiceID string, inv *entities.Invoice) (domain.AnalysisOutcome, error)
		TriggerAnalyzeInvoice(ctx context.Context, invoiceID string) (domain.AnalysisOutcome, error)
	}

	analysisService struct {
		invoiceRepository  invoice.InvoiceRepository
		analysisRepository AnalysisRepository
		generator          ai.TextGenerator
		timeout            time.Duration
		log                zerolog.Logger
	}
)

func NewAnalysisService(
	invoiceRepository invoice.InvoiceRepository,
	analysisRepository AnalysisRepository,
	generator ai.TextGenerator,
	timeout time.Duration,
) AnalysisService {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &analysisService{
		invoiceRepository:  invoiceRepository,
		analysisRepository: analysisRepository,
		generator:          generator,
		timeout:            timeout,
		log:                logger.WithComponent("analysis"),
	}
}

func (s *analysisService) TriggerAnalyzeInvoice(ctx context.Context, invoiceID string) (domain.AnalysisOutcome, error) {
	if invoiceID == "" {
		return domain.AnalysisOutcome{}, domain.ErrInvoiceIDRequired
	}

	inv, err := s.invoiceRepository.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return domain.AnalysisOutcome{InvoiceID: invoiceID}, err
	}

	return s.AnalyzeInvoice(ctx, invoiceID, inv)
}

func (s *analysisService) AnalyzeInvoice(ctx context.Context, invoiceID string, inv *entities.Invoice) (domain.AnalysisOutcome, error) {
	outcome := domain.AnalysisOutcome{
		InvoiceID: invoiceID,
		Status:    entities.AIStatusPending,
	}

	if err := s.invoiceRepository.MarkAIPending(ctx, invoiceID); err != nil {
		return s.fail(ctx, outcome, err)
	}

	if inv == nil {
		loaded, err := s.invoiceRepository.GetInvoiceByID(ctx, invoiceID)
		if err != nil {
			return s.fail(ctx, outcome, err)
		}
		inv = loaded
	}

	text, err := s.generate(ctx, domain.InvoiceDataFromEntity(inv))
	if err != nil {
		return s.fail(ctx, outcome, err)
	}

	parsed := airesponse.ParseAnalysis(text)
	record := &entities.AIAnalysis{
		ID:             invoiceID,
		InvoiceID:      invoiceID,
		Summary:        parsed.Summary,
		Tags:           parsed.SuggestedTags,
		Classification: parsed.Classification,
		Confidence:     parsed.Confidence,
		ModelInfo:      s.generator.ModelInfo(),
		RawResponse:    text,
	}
	if err := s.analysisRepository.SaveAnalysis(ctx, record); err != nil {
		return s.fail(ctx, outcome, err)
	}
	outcome.AnalysisWritten = true

	if err := s.invoiceRepository.MarkAIDone(ctx, invoiceID, parsed.Summary, parsed.Classification, parsed.SuggestedTags); err != nil {
		return s.fail(ctx, outcome, err)
	}
	outcome.InvoiceUpdated = true
	outcome.Status = entities.AIStatusDone

	s.log.Info().Str("invoice_id", invoiceID).Msg("AI analysis completed")
	return outcome, nil
}

func (s *analysisService) generate(ctx context.Context, data domain.InvoiceData) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.GenerateText(ctx, ai.GenerationRequest{
		Prompt:      buildAnalysisPrompt(data),
		MaxTokens:   analysisMaxTokens,
		Temperature: promptTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("AI analysis failed: %w", err)
	}
	return text, nil
}

// fail records cause on the invoice. The returned error is non-nil only when
// that write fails too.
func (s *analysisService) fail(ctx context.Context, outcome domain.AnalysisOutcome, cause error) (domain.AnalysisOutcome, error) {
	outcome.Status = entities.AIStatusError
	outcome.ErrorReason = cause.Error()

	event := s.log.Error()
	if outcome.AnalysisWritten {
		event = s.log.Warn().Bool("analysis_written", true)
	}
	event.Err(cause).Str("invoice_id", outcome.InvoiceID).Msg("AI analysis failed")

	if err := s.invoiceRepository.MarkAIError(ctx, outcome.InvoiceID, outcome.ErrorReason); err != nil {
		s.log.Error().Err(err).Str("invoice_id", outcome.InvoiceID).Msg("failed to record AI analysis error")
		return outcome, errors.Join(cause, err)
	}
	return outcome, nil
}
