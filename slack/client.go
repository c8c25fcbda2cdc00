// Package slack is a minimal Slack Web API client covering the calls
// this app makes: posting messages, opening views, profile lookup and
// channel history.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/wizardofoss/woss"
)

const (
	defaultTimeout = 10 * time.Second

	// DefaultAPIBase is the production Web API endpoint.
	DefaultAPIBase = "https://slack.com/api"
)

type Client struct {
	client  *http.Client
	cache   *cache.Cache
	apiBase string
	token   string
}

// New builds a client for the given bot token. An empty apiBase uses
// the production endpoint; tests point it at a local server.
func New(token string, apiBase string) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}

	return &Client{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		cache:   cache.New(10*time.Minute, 15*time.Minute),
		apiBase: apiBase,
		token:   token,
	}
}

// apiResponse is the envelope every Web API method shares.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (r apiResponse) status() (bool, string) {
	return r.OK, r.Error
}

type statuser interface {
	status() (bool, string)
}

func (c *Client) postJSON(ctx context.Context, method string, body any, response statuser) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, method, response)
}

func (c *Client) getJSON(ctx context.Context, method string, query url.Values, response statuser) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/"+method+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	return c.do(req, method, response)
}

func (c *Client) do(req *http.Request, method string, response statuser) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}

	if ok, apiErr := response.status(); !ok {
		return fmt.Errorf("slack api error on %s: %s", method, apiErr)
	}

	return nil
}

func (c *Client) postForm(ctx context.Context, method string, form url.Values, response statuser) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader([]byte(form.Encode())))
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, method, response)
}

// ChatPostMessageRequest is the payload for chat.postMessage.
type ChatPostMessageRequest struct {
	Channel     string            `json:"channel"`
	Text        string            `json:"text,omitempty"`
	Attachments []woss.Attachment `json:"attachments,omitempty"`
	Username    string            `json:"username,omitempty"`
	IconURL     string            `json:"icon_url,omitempty"`
}

func (c *Client) PostMessage(ctx context.Context, req ChatPostMessageRequest) error {
	var resp apiResponse
	return c.postJSON(ctx, "chat.postMessage", req, &resp)
}

// ChatPostEphemeralRequest is the payload for chat.postEphemeral.
type ChatPostEphemeralRequest struct {
	Channel string `json:"channel"`
	User    string `json:"user"`
	Text    string `json:"text"`
}

func (c *Client) PostEphemeral(ctx context.Context, req ChatPostEphemeralRequest) error {
	var resp apiResponse
	return c.postJSON(ctx, "chat.postEphemeral", req, &resp)
}

type viewsOpenRequest struct {
	TriggerID string    `json:"trigger_id"`
	View      woss.View `json:"view"`
}

func (c *Client) OpenView(ctx context.Context, triggerID string, view woss.View) error {
	var resp apiResponse
	return c.postJSON(ctx, "views.open", viewsOpenRequest{TriggerID: triggerID, View: view}, &resp)
}

type usersInfoResponse struct {
	apiResponse
	User woss.User `json:"user"`
}

// UserInfo looks up a user profile. Profiles change rarely, so
// responses are cached for a few minutes.
func (c *Client) UserInfo(ctx context.Context, userID string) (woss.User, error) {
	if cached, found := c.cache.Get(userID); found {
		return cached.(woss.User), nil
	}

	var resp usersInfoResponse
	err := c.getJSON(ctx, "users.info", url.Values{"user": {userID}}, &resp)
	if err != nil {
		return woss.User{}, err
	}

	c.cache.Set(userID, resp.User, cache.DefaultExpiration)
	return resp.User, nil
}

type historyResponse struct {
	apiResponse
	Messages []woss.Message `json:"messages"`
	HasMore  bool           `json:"has_more"`
}

// OAuthV2Response is the result of the install code exchange.
type OAuthV2Response struct {
	apiResponse
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	Team        struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

// OAuthV2Access exchanges an install authorization code for a bot
// token. Unlike the other methods this authenticates with the app
// credentials, not the bot token.
func (c *Client) OAuthV2Access(ctx context.Context, clientID, clientSecret, code string) (OAuthV2Response, error) {
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
	}

	var resp OAuthV2Response
	err := c.postForm(ctx, "oauth.v2.access", form, &resp)
	if err != nil {
		return OAuthV2Response{}, err
	}

	return resp, nil
}

// History fetches one page of channel history, newest first. There is
// no pagination loop; callers get at most one page.
func (c *Client) History(ctx context.Context, channelID string, limit int) ([]woss.Message, error) {
	query := url.Values{
		"channel": {channelID},
		"limit":   {fmt.Sprintf("%d", limit)},
	}

	var resp historyResponse
	err := c.getJSON(ctx, "conversations.history", query, &resp)
	if err != nil {
		return nil, err
	}

	return resp.Messages, nil
}
