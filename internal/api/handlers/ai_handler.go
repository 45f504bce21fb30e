package handlers

import (
	"billora-backend/domain"
	"billora-backend/internal/api/presenters"
	"billora-backend/pkg/analysis"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AIHandler interface {
		SuggestTags(c *fiber.Ctx) error
		TriggerAnalyzeInvoice(c *fiber.Ctx) error
		InvoiceCreated(c *fiber.Ctx) error
	}

	aiHandler struct {
		analysisService analysis.AnalysisService
		suggestService  analysis.SuggestService
		validator       *validator.Validate
	}
)

func NewAIHandler(analysisService analysis.AnalysisService, suggestService analysis.SuggestService, validator *validator.Validate) AIHandler {
	return &aiHandler{
		analysisService: analysisService,
		suggestService:  suggestService,
		validator:       validator,
	}
}

func (h *aiHandler) SuggestTags(c *fiber.Ctx) error {
	req := new(domain.SuggestTagsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvoiceDataRequired, err)
	}

	result, err := h.suggestService.SuggestTags(c.Context(), *req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvoiceDataRequired):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvoiceDataRequired, err)
		case errors.Is(err, domain.ErrInvoiceNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageInvoiceNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSuggestTags, err)
	}

	return c.Status(fiber.StatusOK).JSON(domain.SuggestTagsResponse{
		Success:  true,
		Message:  domain.MessageSuccessSuggestTags,
		Response: result.Response,
		Data:     result.Data,
	})
}

func (h *aiHandler) TriggerAnalyzeInvoice(c *fiber.Ctx) error {
	req := new(domain.CallableRequest[domain.TriggerAnalyzeRequest])
	if err := c.BodyParser(req); err != nil {
		return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageFailedBodyRequest, err.Error())
	}

	if err := h.validator.Struct(req.Data); err != nil {
		return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageInvoiceIDRequired, nil)
	}

	outcome, err := h.analysisService.TriggerAnalyzeInvoice(c.Context(), req.Data.InvoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return presenters.CallableErrorResponse(c, presenters.StatusNotFound, domain.MessageInvoiceNotFound, nil)
		}
		return presenters.CallableErrorResponse(c, presenters.StatusInternal, err.Error(), nil)
	}

	return presenters.CallableResult(c, domain.TriggerAnalyzeResult{
		CallableMessage: domain.CallableMessage{
			Success: true,
			Message: domain.MessageSuccessTriggerAnalyze,
		},
		Analysis: outcome,
	})
}

// InvoiceCreated is the invoice-created document event. Provider failures are
// recorded on the invoice, so they still answer 200 with the outcome.
func (h *aiHandler) InvoiceCreated(c *fiber.Ctx) error {
	event := new(domain.InvoiceCreatedEvent)
	if err := c.BodyParser(event); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(event); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvoiceIDRequired, err)
	}

	if event.Invoice != nil && event.Invoice.ID == "" {
		event.Invoice.ID = event.InvoiceID
	}

	outcome, err := h.analysisService.AnalyzeInvoice(c.Context(), event.InvoiceID, event.Invoice)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAnalyzeInvoice, err)
	}

	return presenters.SuccessResponse(c, outcome, fiber.StatusOK, domain.MessageSuccessAnalyzeInvoice)
}
