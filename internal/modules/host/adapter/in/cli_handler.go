package in

import (
	"fmt"

	"lifeos/internal/modules/host/dto"
	hostin "lifeos/internal/modules/host/port/in"
)

type CLIHandler struct {
	usecase hostin.Usecase
}

func NewCLIHandler(usecase hostin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Context() dto.ContextOutput {
	return h.usecase.Context()
}

// ChatID is the Telegram chat to link, taken from the host user.
func (h CLIHandler) ChatID() (string, error) {
	c := h.usecase.Context()
	if !c.Embedded {
		return "", fmt.Errorf("not running inside Telegram: pass a chat id")
	}
	return fmt.Sprintf("%d", c.UserID), nil
}
