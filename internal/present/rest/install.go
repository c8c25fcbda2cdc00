package rest

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/wizardofoss/woss/slack"
)

const authorizeURL = "https://slack.com/oauth/v2/authorize"

// InstallHandler serves the OAuth install handshake and its landing
// pages. The app runs against one workspace, so the exchanged bot
// token is not persisted; the exchange only confirms the install and
// the configured token stays authoritative.
type InstallHandler struct {
	client       *slack.Client
	clientID     string
	clientSecret string
	scope        string
	redirectHost string
}

func NewInstallHandler(client *slack.Client, clientID, clientSecret, scope, redirectHost string) *InstallHandler {
	return &InstallHandler{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		redirectHost: redirectHost,
	}
}

func (h *InstallHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/install", h.handleInstall)
	e.GET("/oauth/callback", h.handleCallback)

	e.GET("/installed", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome")
	})
	e.GET("/cancelled", func(c echo.Context) error {
		return c.String(http.StatusOK, "Cancelled")
	})
	e.GET("/error", func(c echo.Context) error {
		return c.String(http.StatusOK, "Error while installing")
	})
}

func (h *InstallHandler) handleInstall(c echo.Context) error {
	query := url.Values{
		"client_id":    {h.clientID},
		"scope":        {h.scope},
		"redirect_uri": {h.redirectHost + "/oauth/callback"},
	}
	return c.Redirect(http.StatusFound, authorizeURL+"?"+query.Encode())
}

func (h *InstallHandler) handleCallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		if errParam == "access_denied" {
			return c.Redirect(http.StatusFound, "/cancelled")
		}
		slog.Error("install authorization failed",
			slog.String("error", errParam),
		)
		return c.Redirect(http.StatusFound, "/error")
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, "/error")
	}

	resp, err := h.client.OAuthV2Access(c.Request().Context(), h.clientID, h.clientSecret, code)
	if err != nil {
		slog.Error("install code exchange failed",
			slog.String("error", err.Error()),
		)
		return c.Redirect(http.StatusFound, "/error")
	}

	slog.Info("app installed",
		slog.String("team_id", resp.Team.ID),
		slog.String("team", resp.Team.Name),
	)
	return c.Redirect(http.StatusFound, "/installed")
}
