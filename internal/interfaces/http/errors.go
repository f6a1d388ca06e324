package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/pkg/i18n"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
	"github.com/jhoicas/Invoicing-api/pkg/validation"
)

// apiError HTTP shape of an error: status, stable code and message key.
type apiError struct {
	status int
	code   string
	msg    string
}

// Order matters: a reference error wraps both ErrInvalidInput and a
// not-found error and must resolve to 400.
var notFoundErrors = []struct {
	err  error
	code string
	msg  string
}{
	{domain.ErrCompanyNotFound, "COMPANY_NOT_FOUND", i18n.MsgCompanyNotFound},
	{domain.ErrCustomerNotFound, "CUSTOMER_NOT_FOUND", i18n.MsgCustomerNotFound},
	{domain.ErrItemNotFound, "ITEM_NOT_FOUND", i18n.MsgItemNotFound},
	{domain.ErrInvoiceNotFound, "INVOICE_NOT_FOUND", i18n.MsgInvoiceNotFound},
	{domain.ErrRoleNotFound, "ROLE_NOT_FOUND", i18n.MsgRoleNotFound},
	{domain.ErrUserNotFound, "USER_NOT_FOUND", i18n.MsgUserNotFound},
	{domain.ErrNotFound, "NOT_FOUND", i18n.MsgNotFound},
}

func classify(err error) (apiError, bool) {
	if errors.Is(err, domain.ErrInvalidInput) {
		for _, nf := range notFoundErrors {
			if errors.Is(err, nf.err) {
				return apiError{fiber.StatusBadRequest, nf.code, nf.msg}, true
			}
		}
		return apiError{fiber.StatusBadRequest, "INVALID_INPUT", i18n.MsgInvalidInput}, true
	}
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf.err) {
			return apiError{fiber.StatusNotFound, nf.code, nf.msg}, true
		}
	}
	switch {
	case errors.Is(err, domain.ErrInvalidTenant):
		return apiError{fiber.StatusBadRequest, "INVALID_TENANT", i18n.MsgInvalidTenant}, true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{fiber.StatusUnauthorized, "INVALID_CREDENTIALS", i18n.MsgInvalidCredentials}, true
	case errors.Is(err, domain.ErrUnauthorized):
		return apiError{fiber.StatusUnauthorized, "UNAUTHORIZED", i18n.MsgInvalidToken}, true
	case errors.Is(err, domain.ErrForbidden):
		return apiError{fiber.StatusForbidden, "FORBIDDEN", i18n.MsgForbidden}, true
	case errors.Is(err, domain.ErrDuplicate):
		return apiError{fiber.StatusConflict, "DUPLICATE", i18n.MsgDuplicate}, true
	case errors.Is(err, domain.ErrInUse):
		return apiError{fiber.StatusConflict, "IN_USE", i18n.MsgInUse}, true
	case errors.Is(err, domain.ErrConflict):
		return apiError{fiber.StatusConflict, "CONFLICT", i18n.MsgConflict}, true
	}
	return apiError{}, false
}

// respond writes a localized error body.
func respond(c *fiber.Ctx, status int, code, msgKey string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: i18n.T(GetLang(c), msgKey)})
}

// ErrorHandler central fiber error handler. Domain errors become their
// status/code; fiber errors (unknown route, bad method, oversized body) keep
// their status; anything else is a 500 whose details are shown only outside
// production.
func ErrorHandler(log *logger.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang := GetLang(c)
		if ae, ok := classify(err); ok {
			body := dto.ErrorResponse{Code: ae.code, Message: i18n.T(lang, ae.msg)}
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				for _, f := range verrs {
					body.Fields = append(body.Fields, dto.FieldError{Field: f.Field, Rule: f.Rule, Param: f.Param})
				}
			}
			return c.Status(ae.status).JSON(body)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch fe.Code {
			case fiber.StatusNotFound:
				return respond(c, fe.Code, "NOT_FOUND", i18n.MsgNotFound)
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				return respond(c, fiber.StatusBadRequest, "INVALID_BODY", i18n.MsgInvalidInput)
			default:
				if fe.Code < fiber.StatusInternalServerError {
					return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
				}
			}
		}

		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled error")
		body := dto.ErrorResponse{Code: "INTERNAL", Message: i18n.T(lang, i18n.MsgInternal)}
		if !production {
			body.Details = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}

// badBody wraps a body/query parse failure as invalid input.
func badBody(err error) error {
	return errors.Join(domain.ErrInvalidInput, err)
}
