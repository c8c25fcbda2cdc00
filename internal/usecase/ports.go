package usecase

import (
	"context"

	"github.com/wizardofoss/woss"
)

// ChatGateway encapsulates the chat-platform API surface the usecases
// depend on: posting, opening forms, profile lookup and history.
type ChatGateway interface {
	PostMessage(ctx context.Context, channelID string, attachment woss.Attachment, username, iconURL string) error
	PostEphemeral(ctx context.Context, channelID, userID, text string) error
	OpenView(ctx context.Context, triggerID string, view woss.View) error
	UserInfo(ctx context.Context, userID string) (woss.User, error)
	History(ctx context.Context, channelID string, limit int) ([]woss.Message, error)
}

// PreferenceRepository remembers a user's last-selected country.
type PreferenceRepository interface {
	GetDefaultCountry(ctx context.Context, userID string) (string, error)
	SetDefaultCountry(ctx context.Context, userID, country string) error
}
