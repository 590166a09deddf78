package domain

import (
	"encoding/base64"
	"fmt"
	"strings"

	apperrors "lifeos/internal/platform/errors"
)

// Mode selects the prompt the image service applies in magic.
type Mode string

const (
	ModeRoast      Mode = "roast"
	ModeCompliment Mode = "compliment"
	ModeCaption    Mode = "caption"
)

func Modes() []Mode { return []Mode{ModeRoast, ModeCompliment, ModeCaption} }

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeRoast, nil
	}
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidInput, s)
}

type Image struct {
	Name string
	Data []byte
}

// Result is what the image service returned: usually text, sometimes an
// inline data URI.
type Result struct {
	Text string
}

func (r Result) IsDataURI() bool {
	return strings.HasPrefix(r.Text, "data:") && strings.Contains(r.Text, ";base64,")
}

// Payload returns the bytes to save: the decoded data URI body, or the text.
func (r Result) Payload() ([]byte, error) {
	if !r.IsDataURI() {
		return []byte(r.Text), nil
	}
	_, encoded, _ := strings.Cut(r.Text, ";base64,")
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return b, nil
}
