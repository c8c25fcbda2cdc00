package woss

import (
	"fmt"
)

// InputValue extracts the free-text value of the input block with the
// given identifier. Block and action identifiers are the same for the
// views this app opens.
func (s *ViewState) InputValue(id string) (string, error) {
	block, ok := s.Values[id]
	if !ok {
		return "", fmt.Errorf("missing field '%s'", id)
	}
	state, ok := block[id]
	if !ok || state.Value == nil {
		return "", fmt.Errorf("missing field '%s'", id)
	}
	return *state.Value, nil
}

// SelectValue extracts the selected option value of the select block
// with the given identifier.
func (s *ViewState) SelectValue(id string) (string, error) {
	block, ok := s.Values[id]
	if !ok {
		return "", fmt.Errorf("missing select '%s'", id)
	}
	state, ok := block[id]
	if !ok || state.SelectedOption == nil {
		return "", fmt.Errorf("missing select '%s'", id)
	}
	return state.SelectedOption.Value, nil
}

// PlainText builds a plain_text object.
func PlainText(text string) *TextObject {
	return &TextObject{Type: "plain_text", Text: text, Emoji: true}
}

// MarkdownText builds an mrkdwn text object.
func MarkdownText(text string) *TextObject {
	return &TextObject{Type: "mrkdwn", Text: text}
}
