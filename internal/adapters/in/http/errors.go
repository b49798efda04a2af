package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"footprint/internal/core/application/usecases/commands"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	codeValidation        = "validation_error"
	codeNotFound          = "not_found"
	codeIllegalTransition = "illegal_transition"
	codeConflict          = "conflict"
	codeRateLimited       = "rate_limited"
	codeInternal          = "internal_error"

	internalMessage = "internal server error"
)

// classify maps an application error onto the wire error and its status code.
// Store failures and anything unrecognised become a generic internal error.
func classify(err error) (int, errorDetail) {
	// A store failure may wrap a domain error decoding a bad row; it is still ours.
	if errors.Is(err, errs.ErrPersistence) {
		return http.StatusInternalServerError, errorDetail{Code: codeInternal, Message: internalMessage}
	}

	var illegal *order.IllegalTransitionError
	if errors.As(err, &illegal) {
		return http.StatusUnprocessableEntity, errorDetail{
			Code:    codeIllegalTransition,
			Message: illegal.Reason,
			Final:   illegal.Final(),
		}
	}

	if errs.IsValidation(err) {
		return http.StatusBadRequest, errorDetail{
			Code:    codeValidation,
			Message: err.Error(),
			Field:   errs.ParamOf(err),
		}
	}

	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorDetail{
			Code:    codeNotFound,
			Message: notFound.ParamName + " not found",
			Field:   notFound.ParamName,
		}
	}

	var exists *errs.AlreadyExistsError
	if errors.As(err, &exists) {
		return http.StatusConflict, errorDetail{
			Code:    codeConflict,
			Message: fmt.Sprintf("%s %v already exists", exists.ParamName, exists.ID),
			Field:   exists.ParamName,
		}
	}

	if errors.Is(err, errs.ErrConflict) {
		return http.StatusConflict, errorDetail{
			Code:    codeConflict,
			Message: commands.ReasonConcurrentChange,
		}
	}

	return http.StatusInternalServerError, errorDetail{Code: codeInternal, Message: internalMessage}
}

func (s *Server) fail(c echo.Context, err error) error {
	status, detail := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return c.JSON(status, errorResponse{Error: detail})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return codeValidation
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return codeNotFound
	case http.StatusConflict:
		return codeConflict
	case http.StatusTooManyRequests:
		return codeRateLimited
	case http.StatusUnprocessableEntity:
		return codeIllegalTransition
	default:
		return codeInternal
	}
}

// ErrorHandler renders errors that escape route handlers, such as unknown routes
// and middleware rejections, in the same envelope as handled errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := internalMessage

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
				message = m
			}
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)
		}

		body := errorResponse{Error: errorDetail{Code: codeForStatus(status), Message: message}}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", slog.Any("error", writeErr))
		}
	}
}
