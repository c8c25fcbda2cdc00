package domain

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
)

// Record is one validated open-source contribution entry. There is no
// record store: the encoded attachment in the channel history is the
// durable form, and records only exist in memory between decoding and
// aggregation or between validation and posting.
type Record struct {
	Username    string
	Hours       int
	Country     string
	URL         string
	Description string
}

// Fields renders the record as its attachment field list, in the fixed
// order Author, Time, Office, URL, Description.
func (r Record) Fields() []woss.AttachmentField {
	return []woss.AttachmentField{
		field(TitleAuthor, r.Username, true),
		field(TitleTime, strconv.Itoa(r.Hours), true),
		field(TitleOffice, r.Country, true),
		field(TitleURL, r.URL, true),
		field(TitleDescription, r.Description, false),
	}
}

func field(title, value string, short bool) woss.AttachmentField {
	return woss.AttachmentField{Title: &title, Value: &value, Short: &short}
}

// RecordFromFields decodes an attachment field list back into a Record.
//
// Fields missing either a title or a value are skipped. A recognized
// title populates the corresponding member; any other title fails the
// decode outright. When the scan is done, the first member never
// populated (in the order username, hours, country, url, description)
// fails the decode. Hours <= 0 and non-http schemes are accepted here:
// only the submission path enforces those rules, historical entries are
// taken as they are.
func RecordFromFields(fields []woss.AttachmentField) (Record, error) {
	var (
		username, country, description *string
		hours                          *int
		link                           *string
		hoursErr, linkErr              error
	)

	for _, f := range fields {
		if f.Title == nil || f.Value == nil {
			continue
		}

		switch *f.Title {
		case TitleAuthor:
			v := *f.Value
			username = &v
		case TitleTime:
			n, err := strconv.Atoi(*f.Value)
			if err != nil {
				hours = nil
				hoursErr = errors.Wrap(err, *f.Value)
			} else {
				hours = &n
				hoursErr = nil
			}
		case TitleOffice:
			v := *f.Value
			country = &v
		case TitleURL:
			// Slack wraps URLs in pointy brackets when auto-linking.
			raw := strings.TrimSuffix(strings.TrimPrefix(*f.Value, "<"), ">")
			u, err := url.Parse(raw)
			if err != nil {
				link = nil
				linkErr = errors.Wrap(err, *f.Value)
			} else {
				v := u.String()
				link = &v
				linkErr = nil
			}
		case TitleDescription:
			v := *f.Value
			description = &v
		default:
			return Record{}, errors.Errorf("unknown field name '%s'", *f.Title)
		}
	}

	// Fixed evaluation order for reporting.
	if username == nil {
		return Record{}, errors.New("missing username")
	}
	if hours == nil {
		if hoursErr != nil {
			return Record{}, hoursErr
		}
		return Record{}, errors.New("missing number of hours")
	}
	if country == nil {
		return Record{}, errors.New("missing country")
	}
	if link == nil {
		if linkErr != nil {
			return Record{}, linkErr
		}
		return Record{}, errors.New("missing url")
	}
	if description == nil {
		return Record{}, errors.New("missing description")
	}

	return Record{
		Username:    *username,
		Hours:       *hours,
		Country:     *country,
		URL:         *link,
		Description: *description,
	}, nil
}
