package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/domain"
	"github.com/wizardofoss/woss/internal/present/rest/middleware"
	"github.com/wizardofoss/woss/internal/present/rest/presenter"
	"github.com/wizardofoss/woss/internal/service"
	"github.com/wizardofoss/woss/internal/usecase"
)

const usageText = "Record your open-source hours: `/woss` opens the form, `/woss stats` shows per-user totals."

// Dispatcher hands long-running gateway work off so the webhook can be
// answered immediately.
type Dispatcher interface {
	Enqueue(name string, fn func(context.Context) error)
}

type Handler struct {
	submission *usecase.SubmissionUsecase
	stats      *usecase.StatsUsecase
	form       *usecase.FormUsecase
	phrases    *service.Phrases
	dispatcher Dispatcher
}

func NewHandler(
	submission *usecase.SubmissionUsecase,
	stats *usecase.StatsUsecase,
	form *usecase.FormUsecase,
	phrases *service.Phrases,
	dispatcher Dispatcher,
) *Handler {
	return &Handler{
		submission: submission,
		stats:      stats,
		form:       form,
		phrases:    phrases,
		dispatcher: dispatcher,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, sig *middleware.SignatureMiddleware) {
	e.POST("/push", h.handlePush, sig.Verify)
	e.POST("/command", h.handleCommand, sig.Verify)
	e.POST("/interactivity", h.handleInteraction, sig.Verify)
}

func (h *Handler) handlePush(c echo.Context) error {
	var ev woss.PushEvent
	err := c.Bind(&ev)
	if err != nil {
		return presenter.InternalError(c, errors.Wrap(err, "failed to bind push event"))
	}

	if ev.Type == woss.PushTypeURLVerification {
		return c.String(http.StatusOK, ev.Challenge)
	}

	return presenter.Ack(c)
}

func (h *Handler) handleCommand(c echo.Context) error {
	var ev woss.CommandEvent
	err := c.Bind(&ev)
	if err != nil {
		return presenter.InternalError(c, errors.Wrap(err, "failed to bind command event"))
	}

	if ev.Command != domain.SlashCommand {
		return presenter.InternalError(c, errors.Errorf("unknown command %s", ev.Command))
	}

	switch ev.Text {
	case domain.CommandStats:
		userID := ev.UserID
		h.dispatcher.Enqueue("report-stats", func(ctx context.Context) error {
			return h.stats.Report(ctx, userID)
		})
		return presenter.OK(c, h.loadingMessage())

	case "":
		return presenter.OK(c, woss.CommandResponse{Text: usageText})

	default:
		// Reserved for pre-fill parameters; for now anything else just
		// opens the form.
		userID, triggerID := ev.UserID, ev.TriggerID
		h.dispatcher.Enqueue("open-form", func(ctx context.Context) error {
			return h.form.Open(ctx, userID, triggerID)
		})
		return presenter.OK(c, h.loadingMessage())
	}
}

func (h *Handler) loadingMessage() woss.CommandResponse {
	return woss.CommandResponse{
		ResponseType: woss.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("Please wait... %s...", h.phrases.Random()),
	}
}

func (h *Handler) handleInteraction(c echo.Context) error {
	payload := c.FormValue("payload")
	if payload == "" {
		return presenter.InternalError(c, errors.New("interaction request did not contain a payload"))
	}

	var ev woss.InteractionEvent
	err := json.Unmarshal([]byte(payload), &ev)
	if err != nil {
		return presenter.InternalError(c, errors.Wrap(err, "failed to decode interaction payload"))
	}

	switch ev.Type {
	case woss.InteractionTypeShortcut:
		if ev.CallbackID != domain.ShortcutRecordHours {
			return presenter.InternalError(c, errors.Errorf("unknown shortcut callback id %s", ev.CallbackID))
		}
		userID, triggerID := ev.User.ID, ev.TriggerID
		h.dispatcher.Enqueue("open-form", func(ctx context.Context) error {
			return h.form.Open(ctx, userID, triggerID)
		})
		return presenter.Ack(c)

	case woss.InteractionTypeViewSubmission:
		return h.handleViewSubmission(c, ev)

	default:
		return presenter.InternalError(c, errors.Errorf("received unknown interaction event %s", ev.Type))
	}
}

// handleViewSubmission runs synchronously: validation errors have to
// ride back on this very response for the platform to render them
// under the form fields.
func (h *Handler) handleViewSubmission(c echo.Context, ev woss.InteractionEvent) error {
	ctx := c.Request().Context()

	if ev.View == nil || ev.View.State == nil {
		return presenter.InternalError(c, errors.New("view submission did not contain state"))
	}
	state := ev.View.State

	numberOfHours, err := state.InputValue(domain.FieldNumberOfHours)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	link, err := state.InputValue(domain.FieldURL)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	description, err := state.InputValue(domain.FieldDescription)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	country, err := state.SelectValue(domain.FieldCountry)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	sub := usecase.Submission{
		NumberOfHours: numberOfHours,
		URL:           link,
		Description:   description,
		Country:       country,
	}

	err = h.submission.Submit(ctx, ev.User.ID, sub)
	if err != nil {
		return presenter.Error(c, err)
	}

	return presenter.Ack(c)
}
