package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/domain"
)

// Submission carries the raw form field values as submitted, before
// any validation.
type Submission struct {
	NumberOfHours string
	URL           string
	Description   string
	Country       string
}

type SubmissionUsecase struct {
	gateway   ChatGateway
	prefs     PreferenceRepository
	channelID string
}

func NewSubmissionUsecase(gateway ChatGateway, prefs PreferenceRepository, channelID string) *SubmissionUsecase {
	return &SubmissionUsecase{
		gateway:   gateway,
		prefs:     prefs,
		channelID: channelID,
	}
}

// Validate turns a raw submission plus the resolved username into a
// Record, or a field-tagged ValidationError meant for the submitter.
// Checks run in order and stop at the first failure.
func Validate(sub Submission, username string) (domain.Record, error) {
	hours, err := strconv.Atoi(sub.NumberOfHours)
	if err != nil {
		return domain.Record{}, domain.ValidationError{
			Field:   domain.FieldNumberOfHours,
			Message: "not a valid integer",
		}
	}

	if hours <= 0 {
		return domain.Record{}, domain.ValidationError{
			Field:   domain.FieldNumberOfHours,
			Message: "Number of hours must be greater than 0",
		}
	}

	parsed, err := url.Parse(sub.URL)
	if err != nil {
		return domain.Record{}, domain.ValidationError{
			Field:   domain.FieldURL,
			Message: "Not a valid URL",
		}
	}

	if !strings.HasPrefix(parsed.Scheme, "http") {
		return domain.Record{}, domain.ValidationError{
			Field:   domain.FieldURL,
			Message: "URL should point to an HTTP or HTTPS resource",
		}
	}

	return domain.Record{
		Username:    username,
		Hours:       hours,
		Country:     sub.Country,
		URL:         parsed.String(),
		Description: sub.Description,
	}, nil
}

// Submit validates the submission, posts the resulting record to the
// shared channel and remembers the selected country for the next form.
func (uc *SubmissionUsecase) Submit(ctx context.Context, userID string, sub Submission) error {
	user, err := uc.gateway.UserInfo(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to look up submitter profile")
	}
	if user.Name == "" {
		return errors.New("the user information did not contain a username")
	}

	record, err := Validate(sub, user.Name)
	if err != nil {
		return err
	}

	attachment := woss.Attachment{
		Color:  domain.AttachmentColorGood,
		Fields: record.Fields(),
	}
	username := user.Name + domain.UsernameSuffix

	err = uc.gateway.PostMessage(ctx, uc.channelID, attachment, username, user.Profile.Image)
	if err != nil {
		return errors.Wrap(err, "failed to post record")
	}

	// The preference is a convenience, not part of the record. A store
	// failure must not fail an already-posted submission.
	if err := uc.prefs.SetDefaultCountry(ctx, userID, record.Country); err != nil {
		slog.WarnContext(ctx, "failed to remember default country",
			slog.String("user", userID),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
