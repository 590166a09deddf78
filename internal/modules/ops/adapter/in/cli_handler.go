package in

import (
	"context"
	"fmt"
	"strings"

	"lifeos/internal/modules/ops/dto"
	opsin "lifeos/internal/modules/ops/port/in"
)

type CLIHandler struct {
	usecase opsin.Usecase
}

func NewCLIHandler(usecase opsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Windows(ctx context.Context) (dto.ScheduleOutput, error) {
	return h.usecase.Windows(ctx)
}

func (h CLIHandler) Notify(ctx context.Context, deepLink string) (dto.NoticeOutput, error) {
	return h.usecase.Notify(ctx, strings.TrimSpace(deepLink))
}

func (h CLIHandler) Models(ctx context.Context) ([]dto.ModelOutput, error) {
	return h.usecase.Models(ctx)
}

func (h CLIHandler) Accounts(ctx context.Context) ([]dto.AccountOutput, error) {
	return h.usecase.Accounts(ctx)
}

// SetModel updates only the fields whose flags were passed.
func (h CLIHandler) SetModel(ctx context.Context, id int64, progress int, progressSet bool, status string) (dto.ModelOutput, error) {
	patch := dto.ModelPatchInput{}
	if progressSet {
		patch.Progress = &progress
	}
	if status != "" {
		patch.Status = &status
	}
	return h.usecase.PatchModel(ctx, id, patch)
}

func (h CLIHandler) SetAccount(ctx context.Context, id int64, accounts int, accountsSet bool, status string) (dto.AccountOutput, error) {
	patch := dto.AccountPatchInput{}
	if accountsSet {
		patch.Accounts = &accounts
	}
	if status != "" {
		patch.Status = &status
	}
	return h.usecase.PatchAccount(ctx, id, patch)
}

// FormatWindow renders a window in its local time.
func FormatWindow(w dto.WindowOutput) string {
	return fmt.Sprintf("%-12s %s-%s (alert %s) %s", w.Label, w.Start.Format("Mon 15:04"), w.End.Format("15:04"), w.AlertAt.Format("15:04"), w.Phase)
}
