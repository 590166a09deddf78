package domain

import (
	"fmt"
	"strings"

	apperrors "lifeos/internal/platform/errors"
)

// ResetPhrase must be supplied verbatim to wipe the backend.
const ResetPhrase = "RESET"

func ConfirmReset(phrase string) error {
	if strings.TrimSpace(phrase) != ResetPhrase {
		return fmt.Errorf("%w: type %s to wipe all data", apperrors.ErrConfirmationRequired, ResetPhrase)
	}
	return nil
}

// Credential is the state of one integration key on the server.
type Credential struct {
	Name     string
	State    string
	Verified string
}

// OK reports whether the key is configured and, when verification ran, it
// passed.
func (c Credential) OK() bool {
	if c.State != "configured" {
		return false
	}
	return c.Verified == "" || c.Verified == "ok"
}

type Health struct {
	Credentials []Credential
}

func (h Health) Healthy() bool {
	for _, c := range h.Credentials {
		if !c.OK() {
			return false
		}
	}
	return len(h.Credentials) > 0
}
