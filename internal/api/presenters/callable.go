package presenters

import (
	"github.com/gofiber/fiber/v2"
)

// Status values of the callable protocol error envelope.
const (
	StatusInvalidArgument = "INVALID_ARGUMENT"
	StatusUnauthenticated = "UNAUTHENTICATED"
	StatusNotFound        = "NOT_FOUND"
	StatusInternal        = "INTERNAL"
)

var callableHTTPStatus = map[string]int{
	StatusInvalidArgument: fiber.StatusBadRequest,
	StatusUnauthenticated: fiber.StatusUnauthorized,
	StatusNotFound:        fiber.StatusNotFound,
	StatusInternal:        fiber.StatusInternalServerError,
}

type (
	CallableError struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	}

	callableSuccess struct {
		Result any `json:"result"`
	}

	callableFailure struct {
		Error CallableError `json:"error"`
	}
)

func CallableResult(c *fiber.Ctx, result any) error {
	return c.Status(fiber.StatusOK).JSON(callableSuccess{Result: result})
}

func CallableErrorResponse(c *fiber.Ctx, status string, message string, details any) error {
	code, ok := callableHTTPStatus[status]
	if !ok {
		status, code = StatusInternal, fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(callableFailure{Error: CallableError{
		Status:  status,
		Message: message,
		Details: details,
	}})
}
