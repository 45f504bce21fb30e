package handlers

import (
	"billora-backend/domain"
	"billora-backend/internal/api/presenters"
	"billora-backend/pkg/email"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	EmailHandler interface {
		SendInvoiceEmail(c *fiber.Ctx) error
		SendInvoiceEmailHTTP(c *fiber.Ctx) error
	}

	emailHandler struct {
		emailService email.EmailService
		validator    *validator.Validate
	}
)

func NewEmailHandler(emailService email.EmailService, validator *validator.Validate) EmailHandler {
	return &emailHandler{
		emailService: emailService,
		validator:    validator,
	}
}

// SendInvoiceEmail is the callable variant; AuthMiddleware has already
// verified the caller.
func (h *emailHandler) SendInvoiceEmail(c *fiber.Ctx) error {
	req := new(domain.CallableRequest[domain.SendInvoiceEmailRequest])
	if err := c.BodyParser(req); err != nil {
		return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageFailedBodyRequest, err.Error())
	}

	if err := h.validator.Struct(req.Data); err != nil {
		return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageMissingRequiredFields, nil)
	}

	if err := h.emailService.SendInvoiceEmail(c.Context(), req.Data); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingEmailFields):
			return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageMissingRequiredFields, nil)
		case errors.Is(err, domain.ErrInvalidPDFData):
			return presenters.CallableErrorResponse(c, presenters.StatusInvalidArgument, domain.MessageInvalidPDFData, err.Error())
		}
		return presenters.CallableErrorResponse(c, presenters.StatusInternal, err.Error(), nil)
	}

	return presenters.CallableResult(c, domain.CallableMessage{
		Success: true,
		Message: domain.MessageSuccessSendEmail,
	})
}

func (h *emailHandler) SendInvoiceEmailHTTP(c *fiber.Ctx) error {
	req := new(domain.SendInvoiceEmailRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageMissingRequiredFields, err)
	}

	if err := h.emailService.SendInvoiceEmail(c.Context(), *req); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingEmailFields):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageMissingRequiredFields, err)
		case errors.Is(err, domain.ErrInvalidPDFData):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidPDFData, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSendEmail, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendEmail)
}
