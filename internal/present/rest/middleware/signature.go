package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("signature")

const (
	signatureHeader = "X-Slack-Signature"
	timestampHeader = "X-Slack-Request-Timestamp"

	// maxClockSkew bounds how old a signed request may be, so captured
	// webhooks cannot be replayed later.
	maxClockSkew = 5 * time.Minute
)

// SignatureMiddleware verifies the v0 HMAC-SHA256 signature Slack puts
// on every webhook request.
type SignatureMiddleware struct {
	secret string
	now    func() time.Time
}

func NewSignatureMiddleware(secret string) *SignatureMiddleware {
	return &SignatureMiddleware{
		secret: secret,
		now:    time.Now,
	}
}

func (m *SignatureMiddleware) Verify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Signature.Middleware.Verify")
		defer span.End()

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			span.RecordError(errors.Wrap(err, "failed to read request body"))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
		}
		// Hand the body back for the actual handler to bind.
		c.Request().Body = io.NopCloser(bytes.NewReader(body))

		tsHeader := c.Request().Header.Get(timestampHeader)
		ts, err := strconv.ParseInt(tsHeader, 10, 64)
		if err != nil {
			span.RecordError(errors.Wrap(err, "invalid signature timestamp"))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		age := m.now().Sub(time.Unix(ts, 0))
		if age > maxClockSkew || age < -maxClockSkew {
			span.RecordError(errors.Errorf("stale signature timestamp: %s", tsHeader))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		expected := m.sign(tsHeader, body)
		provided := c.Request().Header.Get(signatureHeader)

		if !hmac.Equal([]byte(expected), []byte(provided)) {
			span.RecordError(errors.New("signature mismatch"))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (m *SignatureMiddleware) sign(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(m.secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}
