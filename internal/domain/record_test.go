package domain

import (
	"strings"
	"testing"

	"github.com/wizardofoss/woss"
)

func fieldsFor(pairs [][2]string) []woss.AttachmentField {
	fields := make([]woss.AttachmentField, 0, len(pairs))
	for _, p := range pairs {
		title, value := p[0], p[1]
		fields = append(fields, woss.AttachmentField{Title: &title, Value: &value})
	}
	return fields
}

func TestRecordRoundTrip(t *testing.T) {
	record := Record{
		Username:    "alice",
		Hours:       4,
		Country:     "Netherlands",
		URL:         "https://github.com/golang/go/pull/1",
		Description: "reviewed a CL",
	}

	decoded, err := RecordFromFields(record.Fields())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != record {
		t.Fatalf("round trip mismatch: got %+v want %+v", decoded, record)
	}
}

func TestRecordFieldsOrder(t *testing.T) {
	record := Record{Username: "alice", Hours: 1, Country: "Spain", URL: "https://x.com", Description: ""}
	fields := record.Fields()

	want := []string{TitleAuthor, TitleTime, TitleOffice, TitleURL, TitleDescription}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields got %d", len(want), len(fields))
	}
	for i, title := range want {
		if fields[i].Title == nil || *fields[i].Title != title {
			t.Errorf("field %d: expected title %s got %v", i, title, fields[i].Title)
		}
	}
	if *fields[1].Value != "1" {
		t.Errorf("hours not rendered as decimal string: %s", *fields[1].Value)
	}
}

func TestRecordFromFieldsBracketedURL(t *testing.T) {
	record, err := RecordFromFields(fieldsFor([][2]string{
		{TitleAuthor, "alice"},
		{TitleTime, "2"},
		{TitleOffice, "Germany"},
		{TitleURL, "<https://example.com>"},
		{TitleDescription, "docs"},
	}))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if record.URL != "https://example.com" {
		t.Fatalf("brackets not stripped: %s", record.URL)
	}
}

func TestRecordFromFieldsUnknownTitle(t *testing.T) {
	_, err := RecordFromFields(fieldsFor([][2]string{
		{TitleAuthor, "alice"},
		{TitleTime, "2"},
		{TitleOffice, "Germany"},
		{TitleURL, "https://example.com"},
		{TitleDescription, "docs"},
		{"Bogus", "whatever"},
	}))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "unknown field name 'Bogus'") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordFromFieldsMissingFieldOrder(t *testing.T) {
	tests := []struct {
		name string
		drop string
		want string
	}{
		{"no author", TitleAuthor, "missing username"},
		{"no time", TitleTime, "missing number of hours"},
		{"no office", TitleOffice, "missing country"},
		{"no url", TitleURL, "missing url"},
		{"no description", TitleDescription, "missing description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pairs [][2]string
			for _, p := range [][2]string{
				{TitleAuthor, "alice"},
				{TitleTime, "2"},
				{TitleOffice, "Germany"},
				{TitleURL, "https://example.com"},
				{TitleDescription, "docs"},
			} {
				if p[0] != tt.drop {
					pairs = append(pairs, p)
				}
			}

			_, err := RecordFromFields(fieldsFor(pairs))
			if err == nil {
				t.Fatal("expected decode error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q got %v", tt.want, err)
			}
		})
	}
}

func TestRecordFromFieldsMissingUsernameWinsOverBadHours(t *testing.T) {
	// Reporting follows the fixed evaluation order, so a missing
	// username is reported even when the hours value is also broken.
	_, err := RecordFromFields(fieldsFor([][2]string{
		{TitleTime, "many"},
		{TitleOffice, "Germany"},
		{TitleURL, "https://example.com"},
		{TitleDescription, "docs"},
	}))
	if err == nil || !strings.Contains(err.Error(), "missing username") {
		t.Fatalf("expected missing username, got %v", err)
	}
}

func TestRecordFromFieldsBadHoursKeepsRawValue(t *testing.T) {
	_, err := RecordFromFields(fieldsFor([][2]string{
		{TitleAuthor, "alice"},
		{TitleTime, "many"},
		{TitleOffice, "Germany"},
		{TitleURL, "https://example.com"},
		{TitleDescription, "docs"},
	}))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "many") {
		t.Fatalf("raw value not attached: %v", err)
	}
}

func TestRecordFromFieldsSkipsPartialFields(t *testing.T) {
	title := TitleAuthor
	value := "ignored"
	fields := append(
		[]woss.AttachmentField{
			{Title: &title},  // no value
			{Value: &value},  // no title
			{},               // neither
		},
		fieldsFor([][2]string{
			{TitleAuthor, "alice"},
			{TitleTime, "2"},
			{TitleOffice, "Germany"},
			{TitleURL, "https://example.com"},
			{TitleDescription, "docs"},
		})...,
	)

	record, err := RecordFromFields(fields)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if record.Username != "alice" {
		t.Fatalf("unexpected username %s", record.Username)
	}
}

func TestRecordFromFieldsLenientOnRead(t *testing.T) {
	// The read path accepts what the write path would reject: historical
	// entries are taken as they are.
	record, err := RecordFromFields(fieldsFor([][2]string{
		{TitleAuthor, "alice"},
		{TitleTime, "-3"},
		{TitleOffice, "Germany"},
		{TitleURL, "ftp://example.com"},
		{TitleDescription, "docs"},
	}))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if record.Hours != -3 {
		t.Fatalf("expected hours -3 got %d", record.Hours)
	}
	if record.URL != "ftp://example.com" {
		t.Fatalf("expected ftp url kept, got %s", record.URL)
	}
}
