package gateway

import (
	"context"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/usecase"
	"github.com/wizardofoss/woss/slack"
)

// ChatGateway adapts the Slack Web API client to the gateway port the
// usecases consume.
type ChatGateway struct {
	client *slack.Client
}

func NewChatGateway(client *slack.Client) *ChatGateway {
	return &ChatGateway{client: client}
}

func (g *ChatGateway) PostMessage(ctx context.Context, channelID string, attachment woss.Attachment, username, iconURL string) error {
	return g.client.PostMessage(ctx, slack.ChatPostMessageRequest{
		Channel:     channelID,
		Attachments: []woss.Attachment{attachment},
		Username:    username,
		IconURL:     iconURL,
	})
}

func (g *ChatGateway) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	return g.client.PostEphemeral(ctx, slack.ChatPostEphemeralRequest{
		Channel: channelID,
		User:    userID,
		Text:    text,
	})
}

func (g *ChatGateway) OpenView(ctx context.Context, triggerID string, view woss.View) error {
	return g.client.OpenView(ctx, triggerID, view)
}

func (g *ChatGateway) UserInfo(ctx context.Context, userID string) (woss.User, error) {
	return g.client.UserInfo(ctx, userID)
}

func (g *ChatGateway) History(ctx context.Context, channelID string, limit int) ([]woss.Message, error) {
	return g.client.History(ctx, channelID, limit)
}

var _ usecase.ChatGateway = (*ChatGateway)(nil)
