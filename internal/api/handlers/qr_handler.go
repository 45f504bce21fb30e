package handlers

import (
	"billora-backend/domain"
	"billora-backend/internal/api/presenters"
	"billora-backend/pkg/qrcode"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	QRHandler interface {
		Resolve(c *fiber.Ctx) error
		Generate(c *fiber.Ctx) error
	}

	qrHandler struct {
		qrService qrcode.QRService
		validator *validator.Validate
	}
)

func NewQRHandler(qrService qrcode.QRService, validator *validator.Validate) QRHandler {
	return &qrHandler{
		qrService: qrService,
		validator: validator,
	}
}

func (h *qrHandler) Resolve(c *fiber.Ctx) error {
	resp, err := h.qrService.Resolve(c.Context(), c.Query("code"))
	if err != nil {
		return h.errorResponse(c, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessResolveQR)
}

func (h *qrHandler) Generate(c *fiber.Ctx) error {
	req := new(domain.GenerateQRRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvoiceIDRequired, err)
	}

	resp, err := h.qrService.Generate(c.Context(), req.InvoiceID)
	if err != nil {
		return h.errorResponse(c, err)
	}

	return presenters.SuccessResponse(c, resp, fiber.StatusOK, domain.MessageSuccessGenerateQR)
}

func (h *qrHandler) errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrQRPayloadRequired):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageQRPayloadRequired, err)
	case errors.Is(err, domain.ErrInvalidQRPayload):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidQRFormat, err)
	case errors.Is(err, domain.ErrInvoiceIDRequired):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvoiceIDRequired, err)
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageInvoiceNotFound, err)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageInternalServerError, err)
}
