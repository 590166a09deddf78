package in

import (
	"context"
	"fmt"

	"lifeos/internal/modules/board/dto"
	boardin "lifeos/internal/modules/board/port/in"
	apperrors "lifeos/internal/platform/errors"
)

type CLIHandler struct {
	usecase boardin.Usecase
}

func NewCLIHandler(usecase boardin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Board loads niches, tasks and profile and returns the snapshot.
func (h CLIHandler) Board(ctx context.Context) (dto.BoardOutput, error) {
	if err := h.usecase.Load(ctx); err != nil {
		return dto.BoardOutput{}, err
	}
	return h.usecase.Snapshot(), nil
}

// Snapshot returns the board as last synced, without a network call.
func (h CLIHandler) Snapshot() dto.BoardOutput {
	return h.usecase.Snapshot()
}

func (h CLIHandler) ListTasks(ctx context.Context, nicheID int64) ([]dto.TaskOutput, error) {
	return h.usecase.ListTasks(ctx, nicheID)
}

// Toggle needs the task on the board, so it loads first.
func (h CLIHandler) Toggle(ctx context.Context, taskID int64) (dto.ToggleOutput, error) {
	if err := h.usecase.Load(ctx); err != nil {
		return dto.ToggleOutput{}, err
	}
	return h.usecase.Toggle(ctx, taskID)
}

func (h CLIHandler) AddTask(ctx context.Context, title, description string, nicheID int64, recurring bool, scheduled string) (dto.TaskOutput, error) {
	input := dto.TaskInput{Title: title, Description: description, NicheID: nicheID, Recurring: &recurring, ScheduledTime: scheduled}
	if nicheID == 0 {
		if err := h.usecase.Load(ctx); err != nil {
			return dto.TaskOutput{}, err
		}
	}
	return h.usecase.CreateTask(ctx, input)
}

// TaskEdit lists the fields a CLI edit overrides. Nil fields keep the
// task's current value.
type TaskEdit struct {
	Title         string
	Description   *string
	NicheID       *int64
	Recurring     *bool
	ScheduledTime *string
}

// EditTask loads the board and applies edit on top of the stored task.
func (h CLIHandler) EditTask(ctx context.Context, id int64, edit TaskEdit) (dto.TaskOutput, error) {
	if err := h.usecase.Load(ctx); err != nil {
		return dto.TaskOutput{}, err
	}
	var current *dto.TaskOutput
	for _, t := range h.usecase.Snapshot().Tasks {
		if t.ID == id {
			current = &t
			break
		}
	}
	if current == nil {
		return dto.TaskOutput{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
	}
	input := dto.TaskInput{
		Title:         edit.Title,
		Description:   current.Description,
		NicheID:       current.NicheID,
		Recurring:     edit.Recurring,
		ScheduledTime: current.ScheduledTime,
	}
	if edit.Description != nil {
		input.Description = *edit.Description
	}
	if edit.NicheID != nil {
		input.NicheID = *edit.NicheID
	}
	if edit.ScheduledTime != nil {
		input.ScheduledTime = *edit.ScheduledTime
	}
	return h.usecase.EditTask(ctx, id, input)
}

func (h CLIHandler) DeleteTask(ctx context.Context, id int64) error {
	if err := h.usecase.Load(ctx); err != nil {
		return err
	}
	op, err := h.usecase.BeginDelete(id)
	if err != nil {
		return err
	}
	return h.usecase.CommitDelete(ctx, op)
}

func (h CLIHandler) Draft(ctx context.Context, text string) (dto.DraftOutput, error) {
	if err := h.usecase.Load(ctx); err != nil {
		return dto.DraftOutput{}, err
	}
	return h.usecase.MagicDraft(ctx, text)
}

func (h CLIHandler) BreakDown(ctx context.Context, goal string) (dto.BreakdownOutput, error) {
	if err := h.usecase.Load(ctx); err != nil {
		return dto.BreakdownOutput{}, err
	}
	return h.usecase.BreakDown(ctx, goal)
}

func (h CLIHandler) CreateNiche(ctx context.Context, name, color, icon string) (dto.NicheOutput, error) {
	return h.usecase.CreateNiche(ctx, dto.NicheInput{Name: name, Color: color, Icon: icon})
}

func (h CLIHandler) DeleteNiche(ctx context.Context, id int64) error {
	return h.usecase.DeleteNiche(ctx, id)
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.RefreshProfile(ctx)
}

func (h CLIHandler) LinkTelegram(ctx context.Context, chatID string) (dto.ProfileOutput, error) {
	if _, err := h.usecase.RefreshProfile(ctx); err != nil {
		return dto.ProfileOutput{}, err
	}
	return h.usecase.LinkTelegram(ctx, chatID)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}
