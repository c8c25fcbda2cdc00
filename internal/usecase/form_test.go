package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/wizardofoss/woss"
	"github.com/wizardofoss/woss/internal/domain"
)

func countrySelect(t *testing.T, view woss.View) *woss.BlockElement {
	t.Helper()
	for _, block := range view.Blocks {
		if block.Type == woss.BlockTypeInput && block.ID() == domain.FieldCountry {
			return block.Element
		}
	}
	t.Fatal("modal has no country select")
	return nil
}

func TestBuildViewWithoutPreference(t *testing.T) {
	uc := NewFormUsecase(&mockGateway{}, newMockPrefs())

	view := uc.BuildView(context.Background(), "U1")
	if view.Type != "modal" {
		t.Fatalf("expected modal got %s", view.Type)
	}

	element := countrySelect(t, view)
	if element.InitialOption != nil {
		t.Fatalf("expected no pre-selection, got %+v", element.InitialOption)
	}
	if len(element.Options) != len(domain.Countries) {
		t.Fatalf("expected %d options got %d", len(domain.Countries), len(element.Options))
	}
}

func TestBuildViewPreselectsRememberedCountry(t *testing.T) {
	prefs := newMockPrefs()
	prefs.stored["U1"] = "Netherlands"
	uc := NewFormUsecase(&mockGateway{}, prefs)

	view := uc.BuildView(context.Background(), "U1")

	element := countrySelect(t, view)
	if element.InitialOption == nil {
		t.Fatal("expected a pre-selected option")
	}
	if element.InitialOption.Value != "Netherlands" {
		t.Fatalf("wrong pre-selection %q", element.InitialOption.Value)
	}
}

func TestBuildViewIgnoresRetiredCountry(t *testing.T) {
	// A stored value that is no longer among the options means no
	// preference; the stored string is never validated on read.
	prefs := newMockPrefs()
	prefs.stored["U1"] = "Atlantis"
	uc := NewFormUsecase(&mockGateway{}, prefs)

	view := uc.BuildView(context.Background(), "U1")
	if countrySelect(t, view).InitialOption != nil {
		t.Fatal("retired country must not be pre-selected")
	}
}

func TestBuildViewSurvivesPreferenceReadFailure(t *testing.T) {
	prefs := newMockPrefs()
	prefs.getErr = errors.New("redis down")
	uc := NewFormUsecase(&mockGateway{}, prefs)

	view := uc.BuildView(context.Background(), "U1")
	if countrySelect(t, view).InitialOption != nil {
		t.Fatal("unreadable preference must mean no pre-selection")
	}
}

func TestOpenSendsView(t *testing.T) {
	gw := &mockGateway{}
	uc := NewFormUsecase(gw, newMockPrefs())

	err := uc.Open(context.Background(), "U1", "trigger-1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if len(gw.views) != 1 {
		t.Fatalf("expected one opened view got %d", len(gw.views))
	}
	if gw.triggerIDs[0] != "trigger-1" {
		t.Fatalf("wrong trigger id %s", gw.triggerIDs[0])
	}
	if gw.views[0].CallbackID != domain.ShortcutRecordHours {
		t.Fatalf("wrong callback id %s", gw.views[0].CallbackID)
	}
}
