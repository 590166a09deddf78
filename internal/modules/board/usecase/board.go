package usecase

import (
	"context"

	"lifeos/internal/modules/board/domain"
	"lifeos/internal/modules/board/dto"
	boardin "lifeos/internal/modules/board/port/in"
	"lifeos/internal/modules/board/service"
)

type Interactor struct {
	svc *service.SyncService
}

func NewInteractor(svc *service.SyncService) boardin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context) error { return i.svc.Load(ctx) }

func (i *Interactor) Refresh(ctx context.Context, quiet bool) error {
	return i.svc.Refresh(ctx, quiet)
}

func (i *Interactor) Snapshot() dto.BoardOutput {
	s := i.svc.Snapshot()
	out := dto.BoardOutput{
		Niches:     make([]dto.NicheOutput, 0, len(s.Niches)),
		Tasks:      make([]dto.TaskOutput, 0, len(s.Tasks)),
		Profile:    profileOutput(s.Profile),
		HasProfile: s.HasProfile,
		Loading:    s.Loading,
		Err:        s.Err,
		SyncedAt:   s.SyncedAt,
	}
	for _, n := range s.Niches {
		out.Niches = append(out.Niches, nicheOutput(n))
	}
	for _, t := range s.Tasks {
		out.Tasks = append(out.Tasks, taskOutput(t))
	}
	return out
}

func (i *Interactor) BeginToggle(taskID int64) (dto.PendingOp, error) {
	op, err := i.svc.BeginToggle(taskID)
	if err != nil {
		return dto.PendingOp{}, err
	}
	return pendingOutput(op), nil
}

func (i *Interactor) CommitToggle(ctx context.Context, op dto.PendingOp) (dto.ToggleOutput, error) {
	res, err := i.svc.CommitToggle(ctx, domain.Op{
		ID:     op.ID,
		Kind:   domain.OpToggle,
		TaskID: op.TaskID,
		Status: domain.LogStatus(op.Status),
	})
	if err != nil {
		return dto.ToggleOutput{TaskID: op.TaskID, Status: op.Status}, err
	}
	return toggleOutput(res), nil
}

func (i *Interactor) Toggle(ctx context.Context, taskID int64) (dto.ToggleOutput, error) {
	res, err := i.svc.Toggle(ctx, taskID)
	if err != nil {
		return dto.ToggleOutput{TaskID: taskID, Status: string(res.Op.Status)}, err
	}
	return toggleOutput(res), nil
}

func (i *Interactor) BeginDelete(taskID int64) (dto.PendingOp, error) {
	op, err := i.svc.BeginDelete(taskID)
	if err != nil {
		return dto.PendingOp{}, err
	}
	return pendingOutput(op), nil
}

func (i *Interactor) CommitDelete(ctx context.Context, op dto.PendingOp) error {
	return i.svc.CommitDelete(ctx, domain.Op{ID: op.ID, Kind: domain.OpDelete, TaskID: op.TaskID})
}

func (i *Interactor) ListTasks(ctx context.Context, nicheID int64) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.ListTasks(ctx, nicheID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskOutput(t))
	}
	return out, nil
}

func (i *Interactor) CreateTask(ctx context.Context, input dto.TaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.CreateTask(ctx, taskInput(input))
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return taskOutput(task), nil
}

func (i *Interactor) EditTask(ctx context.Context, id int64, input dto.TaskInput) (dto.TaskOutput, error) {
	task, err := i.svc.EditTask(ctx, id, taskInput(input))
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return taskOutput(task), nil
}

func (i *Interactor) MagicDraft(ctx context.Context, text string) (dto.DraftOutput, error) {
	d, err := i.svc.MagicDraft(ctx, text)
	if err != nil {
		return dto.DraftOutput{}, err
	}
	out := dto.DraftOutput{
		Title:         d.Suggestion.Title,
		Recurring:     d.Suggestion.IsRecurring,
		ScheduledTime: d.Suggestion.ScheduledTime,
		DueDate:       d.Suggestion.DueDate,
		Matched:       d.Matched,
	}
	if d.Matched {
		out.NicheID = d.Niche.ID
		out.NicheName = d.Niche.Name
	}
	return out, nil
}

func (i *Interactor) BreakDown(ctx context.Context, goal string) (dto.BreakdownOutput, error) {
	res, err := i.svc.BreakDown(ctx, goal)
	out := dto.BreakdownOutput{Total: res.Total, Created: make([]dto.TaskOutput, 0, len(res.Created))}
	for _, t := range res.Created {
		out.Created = append(out.Created, taskOutput(t))
	}
	return out, err
}

func (i *Interactor) CreateNiche(ctx context.Context, input dto.NicheInput) (dto.NicheOutput, error) {
	n, err := i.svc.CreateNiche(ctx, domain.NicheDraft{Name: input.Name, Color: input.Color, Icon: input.Icon})
	if err != nil {
		return dto.NicheOutput{}, err
	}
	return nicheOutput(n), nil
}

func (i *Interactor) DeleteNiche(ctx context.Context, id int64) error {
	return i.svc.DeleteNiche(ctx, id)
}

func (i *Interactor) RefreshProfile(ctx context.Context) (dto.ProfileOutput, error) {
	p, err := i.svc.RefreshProfile(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return profileOutput(p), nil
}

func (i *Interactor) PatchProfile(ctx context.Context, patch dto.ProfilePatchInput) (dto.ProfileOutput, error) {
	inventory := patch.Inventory
	if patch.InventoryKeys != nil {
		encoded := domain.EncodeInventory(patch.InventoryKeys)
		inventory = &encoded
	}
	p, err := i.svc.PatchProfile(ctx, domain.ProfilePatch{
		XP:             patch.XP,
		Inventory:      inventory,
		Achievements:   patch.Achievements,
		TelegramChatID: patch.TelegramChatID,
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return profileOutput(p), nil
}

func (i *Interactor) LinkTelegram(ctx context.Context, chatID string) (dto.ProfileOutput, error) {
	p, err := i.svc.LinkTelegram(ctx, chatID)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return profileOutput(p), nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	st, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		CompletedToday:      st.CompletedToday,
		TotalActiveToday:    st.TotalActiveToday,
		CompletionRateToday: st.CompletionRateToday,
		CompletedLast7Days:  st.CompletedLast7Days,
		Streak:              st.Streak,
	}, nil
}

func taskInput(in dto.TaskInput) service.TaskInput {
	return service.TaskInput{
		Title:         in.Title,
		Description:   in.Description,
		NicheID:       in.NicheID,
		Recurring:     in.Recurring,
		ScheduledTime: in.ScheduledTime,
	}
}

func pendingOutput(op domain.Op) dto.PendingOp {
	return dto.PendingOp{ID: op.ID, TaskID: op.TaskID, Status: string(op.Status)}
}

func toggleOutput(res service.ToggleResult) dto.ToggleOutput {
	return dto.ToggleOutput{
		TaskID:       res.Op.TaskID,
		Status:       string(res.Op.Status),
		Profile:      profileOutput(res.Profile),
		LevelUp:      res.LevelUp,
		ProfileStale: res.ProfileStale,
	}
}

func nicheOutput(n domain.Niche) dto.NicheOutput {
	c := domain.CategoryOf(n)
	return dto.NicheOutput{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Color:       n.Color,
		Icon:        n.Icon,
		Category:    string(c),
		Glyph:       c.Glyph(),
	}
}

func taskOutput(t domain.Task) dto.TaskOutput {
	out := dto.TaskOutput{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Type:          string(t.Type),
		Recurring:     !t.OneTime(),
		Frequency:     t.Frequency,
		ScheduledTime: t.ScheduledTime,
		CreatedAt:     t.CreatedAt,
		IsDoneToday:   t.IsDoneToday,
		Glyph:         domain.CategoryOther.Glyph(),
	}
	if t.Niche != nil {
		out.NicheID = t.Niche.ID
		out.NicheName = t.Niche.Name
		out.NicheColor = t.Niche.Color
		out.Glyph = domain.CategoryOf(*t.Niche).Glyph()
	}
	return out
}

func profileOutput(p domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{
		Level:            p.Level,
		XP:               p.XP,
		Streak:           p.Streak,
		Progress:         p.Progress(),
		LastActivityDate: p.LastActivityDate,
		Inventory:        domain.ParseInventory(p.Inventory),
		Achievements:     p.Achievements,
		TelegramChatID:   p.TelegramChatID,
	}
}
