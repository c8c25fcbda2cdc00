package usecase

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/domain"
)

type FormUsecase struct {
	gateway ChatGateway
	prefs   PreferenceRepository
}

func NewFormUsecase(gateway ChatGateway, prefs PreferenceRepository) *FormUsecase {
	return &FormUsecase{
		gateway: gateway,
		prefs:   prefs,
	}
}

// Open shows the record-hours modal to the user behind the trigger.
func (uc *FormUsecase) Open(ctx context.Context, userID, triggerID string) error {
	view := uc.BuildView(ctx, userID)

	err := uc.gateway.OpenView(ctx, triggerID, view)
	if err != nil {
		return errors.Wrap(err, "failed to open modal")
	}
	return nil
}

// BuildView assembles the modal, pre-selecting the user's remembered
// country when there is one. A missing or unreadable preference just
// means no pre-selection.
func (uc *FormUsecase) BuildView(ctx context.Context, userID string) woss.View {
	view := recordHoursModal()

	country, err := uc.prefs.GetDefaultCountry(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.DebugContext(ctx, "could not read default country",
				slog.String("user", userID),
				slog.String("error", err.Error()),
			)
		}
		return view
	}

	return withDefaultCountry(view, country)
}

// withDefaultCountry walks the block list and sets the initial option
// on the country select. Only input blocks can carry the select; every
// other block variant passes through untouched. A stored country that
// is no longer among the options is treated as no preference.
func withDefaultCountry(view woss.View, country string) woss.View {
	for i, block := range view.Blocks {
		switch block.Type {
		case woss.BlockTypeInput:
			if block.ID() != domain.FieldCountry || block.Element == nil {
				continue
			}
			for _, opt := range block.Element.Options {
				if opt.Value == country {
					o := opt
					view.Blocks[i].Element.InitialOption = &o
					return view
				}
			}
		case woss.BlockTypeSection, woss.BlockTypeHeader, woss.BlockTypeDivider,
			woss.BlockTypeImage, woss.BlockTypeActions, woss.BlockTypeContext,
			woss.BlockTypeFile, woss.BlockTypeRichText:
			// no form state to pre-fill
		}
	}
	return view
}

func recordHoursModal() woss.View {
	countryOptions := make([]woss.Option, 0, len(domain.Countries))
	for _, country := range domain.Countries {
		countryOptions = append(countryOptions, woss.Option{
			Text:  *woss.PlainText(country),
			Value: country,
		})
	}

	return woss.View{
		Type:       "modal",
		CallbackID: domain.ShortcutRecordHours,
		Title:      woss.PlainText("Wizard of OSS"),
		Submit:     woss.PlainText("Submit"),
		Close:      woss.PlainText("Cancel"),
		Blocks: []woss.Block{
			{
				Type: woss.BlockTypeHeader,
				Text: woss.PlainText("Record open-source hours"),
			},
			{
				Type:    woss.BlockTypeInput,
				BlockID: domain.FieldNumberOfHours,
				Label:   woss.PlainText("Number of hours"),
				Element: &woss.BlockElement{
					Type:        "plain_text_input",
					ActionID:    domain.FieldNumberOfHours,
					Placeholder: woss.PlainText("e.g. 4"),
				},
			},
			{
				Type:    woss.BlockTypeInput,
				BlockID: domain.FieldURL,
				Label:   woss.PlainText("Link to your contribution"),
				Element: &woss.BlockElement{
					Type:        "plain_text_input",
					ActionID:    domain.FieldURL,
					Placeholder: woss.PlainText("https://..."),
				},
			},
			{
				Type:    woss.BlockTypeInput,
				BlockID: domain.FieldDescription,
				Label:   woss.PlainText("What did you work on?"),
				Element: &woss.BlockElement{
					Type:      "plain_text_input",
					ActionID:  domain.FieldDescription,
					Multiline: true,
				},
			},
			{
				Type:    woss.BlockTypeInput,
				BlockID: domain.FieldCountry,
				Label:   woss.PlainText("Office"),
				Element: &woss.BlockElement{
					Type:        "static_select",
					ActionID:    domain.FieldCountry,
					Placeholder: woss.PlainText("Select your office"),
					Options:     countryOptions,
				},
			},
		},
	}
}
