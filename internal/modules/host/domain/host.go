package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	apperrors "lifeos/internal/platform/errors"
)

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	switch {
	case name != "":
		return name
	case u.Username != "":
		return "@" + u.Username
	default:
		return fmt.Sprintf("user %d", u.ID)
	}
}

const (
	SchemeDark  = "dark"
	SchemeLight = "light"
)

// Context is what the hosting messenger tells the client about itself.
type Context struct {
	User        *User
	ColorScheme string
	StartParam  string
}

func (c Context) Embedded() bool { return c.User != nil }

// ParseInitData decodes Telegram WebApp init data. An empty string yields a
// standalone context. The signature is not checked here; the backend owns
// authentication.
func ParseInitData(raw string) (Context, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Context{}, nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Context{}, fmt.Errorf("%w: init data: %v", apperrors.ErrInvalidInput, err)
	}
	ctx := Context{StartParam: values.Get("start_param")}
	switch scheme := values.Get("color_scheme"); scheme {
	case SchemeDark, SchemeLight:
		ctx.ColorScheme = scheme
	case "":
	default:
		return Context{}, fmt.Errorf("%w: color scheme %q", apperrors.ErrInvalidInput, scheme)
	}
	if rawUser := values.Get("user"); rawUser != "" {
		var u User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			return Context{}, fmt.Errorf("%w: init data user: %v", apperrors.ErrInvalidInput, err)
		}
		if u.ID == 0 {
			return Context{}, fmt.Errorf("%w: init data user has no id", apperrors.ErrInvalidInput)
		}
		ctx.User = &u
	}
	return ctx, nil
}
