package in

import (
	"context"

	"lifeos/internal/modules/system/dto"
	systemin "lifeos/internal/modules/system/port/in"
)

type CLIHandler struct {
	usecase systemin.Usecase
}

func NewCLIHandler(usecase systemin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Reset passes the phrase only when the caller explicitly agreed.
func (h CLIHandler) Reset(ctx context.Context, yes bool, phrase string) (string, error) {
	if yes {
		phrase = "RESET"
	}
	return h.usecase.Reset(ctx, phrase)
}

func (h CLIHandler) Health(ctx context.Context, verify bool) (dto.HealthOutput, error) {
	return h.usecase.Health(ctx, verify)
}
