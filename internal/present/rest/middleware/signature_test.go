package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

const secret = "8f742231b10e8888abcd99yyyzzz85a5"

func signature(ts, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", ts, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func request(ts, sig, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", sig)
	return req
}

func serve(m *SignatureMiddleware, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/command", func(c echo.Context) error {
		body, _ := io.ReadAll(c.Request().Body)
		return c.String(http.StatusOK, string(body))
	}, m.Verify)

	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

func TestVerifyAcceptsValidSignature(t *testing.T) {
	m := NewSignatureMiddleware(secret)
	body := "command=/woss&text=stats"
	ts := fmt.Sprintf("%d", time.Now().Unix())

	res := serve(m, request(ts, signature(ts, body), body))

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}
	if res.Body.String() != body {
		t.Fatalf("body not restored for the handler: %q", res.Body.String())
	}
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	m := NewSignatureMiddleware(secret)
	ts := fmt.Sprintf("%d", time.Now().Unix())
	sig := signature(ts, "command=/woss&text=stats")

	res := serve(m, request(ts, sig, "command=/woss&text=tampered"))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.Code)
	}
}

func TestVerifyRejectsStaleTimestamp(t *testing.T) {
	m := NewSignatureMiddleware(secret)
	body := "command=/woss"
	ts := fmt.Sprintf("%d", time.Now().Add(-time.Hour).Unix())

	res := serve(m, request(ts, signature(ts, body), body))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.Code)
	}
}

func TestVerifyRejectsMissingHeaders(t *testing.T) {
	m := NewSignatureMiddleware(secret)

	res := serve(m, request("", "", "command=/woss"))

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", res.Code)
	}
}
