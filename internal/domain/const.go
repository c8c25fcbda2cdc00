package domain

// Attachment field titles. These are the persisted form of a record,
// so changing any of them breaks decoding of existing channel history.
const (
	TitleAuthor      = "Author"
	TitleTime        = "Time"
	TitleOffice      = "Office"
	TitleURL         = "URL"
	TitleDescription = "Description"
)

// Form field identifiers, shared between the modal blocks and the view
// submission state.
const (
	FieldNumberOfHours = "number_of_hours"
	FieldURL           = "url"
	FieldDescription   = "description"
	FieldCountry       = "country"
)

const (
	// SlashCommand is the slash command this app answers.
	SlashCommand = "/woss"

	// CommandStats triggers aggregation instead of the form.
	CommandStats = "stats"

	// ShortcutRecordHours is the callback id of the global shortcut.
	ShortcutRecordHours = "record_oss_hours"

	// AttachmentColorGood marks a posted record as a success.
	AttachmentColorGood = "good"

	// HistoryLimit is the page size for the stats history fetch.
	HistoryLimit = 100

	// UsernameSuffix is appended to the submitter's name on posted records.
	UsernameSuffix = " via Wizard of OSS"
)

// Countries is the closed set of office locations selectable in the form.
var Countries = []string{
	"Germany",
	"Netherlands",
	"Spain",
	"Sweden",
	"United Kingdom",
	"United States",
	"Remote",
}
