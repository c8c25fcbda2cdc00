package woss

// Slack wire shapes shared by the API client, the webhook handlers and
// the domain layer. Only the parts of the surface this app touches are
// modeled; unknown JSON members are ignored on decode.

type Message struct {
	Type        string       `json:"type,omitempty"`
	SubType     string       `json:"subtype,omitempty"`
	User        string       `json:"user,omitempty"`
	Text        string       `json:"text,omitempty"`
	TS          string       `json:"ts,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	Color    string            `json:"color,omitempty"`
	Fallback string            `json:"fallback,omitempty"`
	Title    string            `json:"title,omitempty"`
	Fields   []AttachmentField `json:"fields,omitempty"`
}

// AttachmentField members are pointers: Slack emits fields with either
// member absent, and absence is meaningful to the decoder.
type AttachmentField struct {
	Title *string `json:"title,omitempty"`
	Value *string `json:"value,omitempty"`
	Short *bool   `json:"short,omitempty"`
}

type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type Option struct {
	Text  TextObject `json:"text"`
	Value string     `json:"value"`
}

// Block layout element types.
const (
	BlockTypeSection  = "section"
	BlockTypeHeader   = "header"
	BlockTypeDivider  = "divider"
	BlockTypeImage    = "image"
	BlockTypeActions  = "actions"
	BlockTypeContext  = "context"
	BlockTypeInput    = "input"
	BlockTypeFile     = "file"
	BlockTypeRichText = "rich_text"
)

// Block is the union of Block Kit layout blocks, discriminated by Type.
// Only the members relevant to the discriminated variant are set.
type Block struct {
	Type     string         `json:"type"`
	BlockID  string         `json:"block_id,omitempty"`
	Text     *TextObject    `json:"text,omitempty"`
	Label    *TextObject    `json:"label,omitempty"`
	Element  *BlockElement  `json:"element,omitempty"`
	Elements []BlockElement `json:"elements,omitempty"`
	Optional bool           `json:"optional,omitempty"`
	ImageURL string         `json:"image_url,omitempty"`
	AltText  string         `json:"alt_text,omitempty"`
}

// ID returns the block identifier regardless of the block variant.
func (b Block) ID() string {
	return b.BlockID
}

type BlockElement struct {
	Type          string      `json:"type"`
	ActionID      string      `json:"action_id,omitempty"`
	Placeholder   *TextObject `json:"placeholder,omitempty"`
	Multiline     bool        `json:"multiline,omitempty"`
	InitialValue  string      `json:"initial_value,omitempty"`
	Options       []Option    `json:"options,omitempty"`
	InitialOption *Option     `json:"initial_option,omitempty"`
}

type View struct {
	Type            string      `json:"type"`
	CallbackID      string      `json:"callback_id,omitempty"`
	Title           *TextObject `json:"title,omitempty"`
	Submit          *TextObject `json:"submit,omitempty"`
	Close           *TextObject `json:"close,omitempty"`
	Blocks          []Block     `json:"blocks"`
	PrivateMetadata string      `json:"private_metadata,omitempty"`
}

type ViewStateValue struct {
	Type           string  `json:"type,omitempty"`
	Value          *string `json:"value,omitempty"`
	SelectedOption *Option `json:"selected_option,omitempty"`
}

type ViewState struct {
	Values map[string]map[string]ViewStateValue `json:"values"`
}

// CommandEvent is a slash command invocation, decoded from the
// form-encoded webhook body.
type CommandEvent struct {
	Command     string `form:"command"`
	Text        string `form:"text"`
	TeamID      string `form:"team_id"`
	ChannelID   string `form:"channel_id"`
	UserID      string `form:"user_id"`
	UserName    string `form:"user_name"`
	TriggerID   string `form:"trigger_id"`
	ResponseURL string `form:"response_url"`
}

// CommandResponse is the immediate JSON reply to a slash command.
type CommandResponse struct {
	ResponseType string `json:"response_type,omitempty"`
	Text         string `json:"text,omitempty"`
}

const ResponseTypeEphemeral = "ephemeral"

// Interaction payload types.
const (
	InteractionTypeShortcut       = "shortcut"
	InteractionTypeViewSubmission = "view_submission"
)

type InteractionUser struct {
	ID   string `json:"id"`
	Name string `json:"username"`
}

type InteractionView struct {
	ID         string     `json:"id"`
	CallbackID string     `json:"callback_id"`
	State      *ViewState `json:"state,omitempty"`
}

// InteractionEvent is the payload posted to the interactivity webhook,
// discriminated by Type.
type InteractionEvent struct {
	Type       string           `json:"type"`
	CallbackID string           `json:"callback_id,omitempty"`
	TriggerID  string           `json:"trigger_id,omitempty"`
	User       InteractionUser  `json:"user"`
	View       *InteractionView `json:"view,omitempty"`
}

type UserProfile struct {
	DisplayName string `json:"display_name,omitempty"`
	RealName    string `json:"real_name,omitempty"`
	Image       string `json:"image_192,omitempty"`
}

type User struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Profile UserProfile `json:"profile"`
}

// PushEvent covers the events webhook; only url_verification is acted on.
type PushEvent struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge,omitempty"`
}

const PushTypeURLVerification = "url_verification"
