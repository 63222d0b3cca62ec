// Package common holds the response envelope, problem-details rendering, and
// request binding shared by the webapi handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/finledger/accounts/pkg/domain/account"
	"github.com/finledger/accounts/pkg/domain/user"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON writes a problem+json response with an explicit status.
func ErrorResponseJSON(c *fiber.Ctx, status int, title, detail string) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ProblemDetailsJSON writes a problem+json response for a domain error,
// deriving the status from the error kind.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error) error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return ErrorResponseJSON(c, ErrorToStatusCode(err), title, detail)
}

// ErrorToStatusCode maps domain error kinds to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, account.ErrTransactionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrOwnerMismatch):
		return fiber.StatusForbidden
	case errors.Is(err, account.ErrAccountLimitExceeded),
		errors.Is(err, account.ErrAlreadyClosed),
		errors.Is(err, account.ErrBalanceNotEmpty),
		errors.Is(err, account.ErrTransactionAccountMismatch):
		return fiber.StatusConflict
	case errors.Is(err, account.ErrAmountExceedsBalance),
		errors.Is(err, account.ErrCancelMustBeFull),
		errors.Is(err, account.ErrTooOldToCancel):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it. On failure it
// writes the error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
