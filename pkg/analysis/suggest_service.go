package analysis

import (
	"billora-backend/domain"
	"billora-backend/entities"
	"billora-backend/internal/utils/logger"
	"billora-backend/pkg/ai"
	"billora-backend/pkg/airesponse"
	"billora-backend/pkg/invoice"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	suggestDefaultSummary        = "Analysis completed successfully"
	suggestDefaultClassification = "General"
	suggestDefaultConfidence     = 0.8
)

type (
	SuggestService interface {
		SuggestTags(ctx context.Context, req domain.SuggestTagsRequest) (*domain.SuggestTagsResult, error)
	}

	suggestService struct {
		invoiceRepository  invoice.InvoiceRepository
		analysisRepository AnalysisRepository
		generator          ai.TextGenerator
		timeout            time.Duration
		log                zerolog.Logger
	}
)

func NewSuggestService(
	invoiceRepository invoice.InvoiceRepository,
	analysisRepository AnalysisRepository,
	generator ai.TextGenerator,
	timeout time.Duration,
) SuggestService {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &suggestService{
		invoiceRepository:  invoiceRepository,
		analysisRepository: analysisRepository,
		generator:          generator,
		timeout:            timeout,
		log:                logger.WithComponent("suggest"),
	}
}

func (s *suggestService) SuggestTags(ctx context.Context, req domain.SuggestTagsRequest) (*domain.SuggestTagsResult, error) {
	data, err := s.resolveInvoiceData(ctx, req)
	if err != nil {
		return nil, err
	}

	intent := req.Intent()
	text, err := s.generate(ctx, buildSuggestPrompt(data, intent))
	if err != nil {
		return nil, err
	}

	summary := strings.TrimSpace(text)
	if summary == "" {
		summary = suggestDefaultSummary
	}

	result := &domain.SuggestTagsResult{
		Response: text,
		Data: domain.SuggestTagsData{
			SuggestedTags:  airesponse.ParseTags(text),
			Summary:        summary,
			Classification: suggestDefaultClassification,
			Confidence:     suggestDefaultConfidence,
			AnalysisID:     uuid.NewString(),
		},
	}

	record := &entities.AIAnalysis{
		ID:             result.Data.AnalysisID,
		InvoiceID:      req.InvoiceID,
		InvoiceData:    data.Snapshot(),
		UserMessage:    intent,
		Summary:        result.Data.Summary,
		Tags:           result.Data.SuggestedTags,
		Classification: result.Data.Classification,
		Confidence:     result.Data.Confidence,
		ModelInfo:      s.generator.ModelInfo(),
		RawResponse:    text,
	}
	if err := s.analysisRepository.SaveAnalysis(ctx, record); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	s.log.Info().
		Str("analysis_id", record.ID).
		Int("tags", len(record.Tags)).
		Msg("tags suggested")
	return result, nil
}

// resolveInvoiceData prefers inline data over a stored invoice.
func (s *suggestService) resolveInvoiceData(ctx context.Context, req domain.SuggestTagsRequest) (domain.InvoiceData, error) {
	if req.InvoiceData != nil {
		return *req.InvoiceData, nil
	}
	if req.InvoiceID == "" {
		return domain.InvoiceData{}, domain.ErrInvoiceDataRequired
	}

	inv, err := s.invoiceRepository.GetInvoiceByID(ctx, req.InvoiceID)
	if err != nil {
		return domain.InvoiceData{}, err
	}
	return domain.InvoiceDataFromEntity(inv), nil
}

func (s *suggestService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.GenerateText(ctx, ai.GenerationRequest{
		SystemPrompt: suggestSystemPrompt,
		Prompt:       prompt,
		MaxTokens:    suggestMaxTokens,
		Temperature:  promptTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("AI analysis failed: %w", err)
	}
	return text, nil
}
