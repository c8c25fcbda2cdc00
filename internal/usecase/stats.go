package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/domain"
)

type StatsUsecase struct {
	gateway   ChatGateway
	channelID string
}

func NewStatsUsecase(gateway ChatGateway, channelID string) *StatsUsecase {
	return &StatsUsecase{
		gateway:   gateway,
		channelID: channelID,
	}
}

// Aggregate folds channel messages into per-user hour totals. Messages
// and attachments without a field list are skipped, and so is any entry
// that fails to decode: history may contain manual edits or entries
// from older schema versions, and one bad entry must not abort the rest.
func Aggregate(messages []woss.Message) map[string]int {
	totals := make(map[string]int)

	for _, msg := range messages {
		for _, att := range msg.Attachments {
			if att.Fields == nil {
				continue
			}

			record, err := domain.RecordFromFields(att.Fields)
			if err != nil {
				continue
			}

			totals[record.Username] += record.Hours
		}
	}

	return totals
}

// Report fetches one page of channel history, aggregates it and posts
// the totals back to the requester as an ephemeral message.
func (uc *StatsUsecase) Report(ctx context.Context, userID string) error {
	messages, err := uc.gateway.History(ctx, uc.channelID, domain.HistoryLimit)
	if err != nil {
		return errors.Wrap(err, "failed to fetch channel history")
	}

	totals := Aggregate(messages)

	err = uc.gateway.PostEphemeral(ctx, uc.channelID, userID, FormatTotals(totals))
	if err != nil {
		return errors.Wrap(err, "failed to post stats summary")
	}

	return nil
}

// FormatTotals renders the aggregate as a debug-style map literal.
func FormatTotals(totals map[string]int) string {
	if len(totals) == 0 {
		return "{}"
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "    %q: %d,\n", name, totals[name])
	}
	b.WriteString("}")
	return b.String()
}
