package rest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wizardofoss/woss/slack"
)

func newInstallServer(apiBase string) *echo.Echo {
	e := echo.New()
	h := NewInstallHandler(
		slack.New("xoxb-test", apiBase),
		"client-1",
		"secret-1",
		"commands,chat:write",
		"https://woss.example.com",
	)
	h.RegisterRoutes(e)
	return e
}

func TestInstallRedirectsToAuthorize(t *testing.T) {
	e := newInstallServer("")

	req := httptest.NewRequest(http.MethodGet, "/install", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	if res.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", res.Code)
	}

	location, err := url.Parse(res.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect target: %v", err)
	}
	if !strings.HasPrefix(location.String(), "https://slack.com/oauth/v2/authorize") {
		t.Fatalf("unexpected redirect %s", location)
	}
	if got := location.Query().Get("client_id"); got != "client-1" {
		t.Errorf("wrong client_id %q", got)
	}
	if got := location.Query().Get("redirect_uri"); got != "https://woss.example.com/oauth/callback" {
		t.Errorf("wrong redirect_uri %q", got)
	}
}

func TestCallbackExchangesCode(t *testing.T) {
	var gotCode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth.v2.access" {
			t.Errorf("wrong path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		gotCode = r.PostForm.Get("code")
		w.Write([]byte(`{"ok":true,"access_token":"xoxb-new","team":{"id":"T1","name":"acme"}}`))
	}))
	defer server.Close()

	e := newInstallServer(server.URL)

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback?code=abc123", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	if res.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", res.Code)
	}
	if got := res.Header().Get("Location"); got != "/installed" {
		t.Fatalf("expected /installed got %s", got)
	}
	if gotCode != "abc123" {
		t.Fatalf("code not forwarded: %q", gotCode)
	}
}

func TestCallbackAccessDenied(t *testing.T) {
	e := newInstallServer("")

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback?error=access_denied", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	if got := res.Header().Get("Location"); got != "/cancelled" {
		t.Fatalf("expected /cancelled got %s", got)
	}
}

func TestCallbackExchangeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"invalid_code"}`))
	}))
	defer server.Close()

	e := newInstallServer(server.URL)

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback?code=bad", nil)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)

	if got := res.Header().Get("Location"); got != "/error" {
		t.Fatalf("expected /error got %s", got)
	}
}
