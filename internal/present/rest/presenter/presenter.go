package presenter

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/wizardofoss/woss/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	ResponseAction string            `json:"response_action"`
	Errors         map[string]string `json:"errors"`
}

// OK wraps a successful JSON response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Ack is the empty acknowledgement Slack expects for handled
// interactions.
func Ack(c echo.Context) error {
	return c.String(http.StatusOK, "")
}

// Error maps an error onto the boundary responses: field validation
// failures go back to the submitter, everything else is logged and
// answered with an opaque message.
func Error(c echo.Context, err error) error {
	var verr domain.ValidationError
	if errors.As(err, &verr) {
		return ValidationFailed(c, verr)
	}
	return InternalError(c, err)
}

// ValidationFailed renders a field-level error the way the platform
// displays it under the form field. The platform expects a success
// status carrying an error map, not an HTTP failure code.
func ValidationFailed(c echo.Context, verr domain.ValidationError) error {
	slog.Debug("rejecting submission",
		slog.String("field", verr.Field),
		slog.String("message", verr.Message),
	)

	return c.JSON(http.StatusOK, validationResponse{
		ResponseAction: "errors",
		Errors:         map[string]string{verr.Field: verr.Message},
	})
}

// InternalError logs the full failure and answers with a generic
// message. Internal detail never reaches the chat surface.
func InternalError(c echo.Context, err error) error {
	slog.Error("returning error response",
		slog.String("error", err.Error()),
	)

	return c.JSON(http.StatusInternalServerError, errorResponse{
		Error: "Something went wrong. See logs for details.",
	})
}
