package usecase

import (
	"context"
	"time"

	"lifeos/internal/modules/ops/domain"
	"lifeos/internal/modules/ops/dto"
	opsin "lifeos/internal/modules/ops/port/in"
	"lifeos/internal/modules/ops/service"
)

type Interactor struct {
	svc *service.OpsService
}

func NewInteractor(svc *service.OpsService) opsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Windows(ctx context.Context) (dto.ScheduleOutput, error) {
	s, err := i.svc.Windows(ctx)
	if err != nil {
		return dto.ScheduleOutput{}, err
	}
	now := i.svc.Now()
	out := dto.ScheduleOutput{Timezone: s.Timezone, Windows: make([]dto.WindowOutput, 0, len(s.Windows))}
	for _, w := range s.Windows {
		out.Windows = append(out.Windows, windowOutput(w, now))
	}
	return out, nil
}

func (i *Interactor) Notify(ctx context.Context, deepLink string) (dto.NoticeOutput, error) {
	n, err := i.svc.Notify(ctx, deepLink)
	if err != nil {
		return dto.NoticeOutput{}, err
	}
	return dto.NoticeOutput{Sent: n.Sent, Window: windowOutput(n.Window, i.svc.Now())}, nil
}

func (i *Interactor) Models(ctx context.Context) ([]dto.ModelOutput, error) {
	models, err := i.svc.Models(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ModelOutput, 0, len(models))
	for _, m := range models {
		out = append(out, modelOutput(m))
	}
	return out, nil
}

func (i *Interactor) PatchModel(ctx context.Context, id int64, patch dto.ModelPatchInput) (dto.ModelOutput, error) {
	m, err := i.svc.PatchModel(ctx, id, domain.ModelPatch{Progress: patch.Progress, Status: patch.Status})
	if err != nil {
		return dto.ModelOutput{}, err
	}
	return modelOutput(m), nil
}

func (i *Interactor) Accounts(ctx context.Context) ([]dto.AccountOutput, error) {
	accounts, err := i.svc.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountOutput, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountOutput(a))
	}
	return out, nil
}

func (i *Interactor) PatchAccount(ctx context.Context, id int64, patch dto.AccountPatchInput) (dto.AccountOutput, error) {
	a, err := i.svc.PatchAccount(ctx, id, domain.AccountPatch{Accounts: patch.Accounts, Status: patch.Status})
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return accountOutput(a), nil
}

func windowOutput(w domain.Window, now time.Time) dto.WindowOutput {
	return dto.WindowOutput{Label: w.Label, Start: w.Start, End: w.End, AlertAt: w.AlertAt, Phase: w.Phase(now)}
}

func modelOutput(m domain.Model) dto.ModelOutput {
	return dto.ModelOutput{ID: m.ID, Name: m.Name, Archetype: m.Archetype, Progress: m.Progress, Status: m.Status}
}

func accountOutput(a domain.Account) dto.AccountOutput {
	return dto.AccountOutput{ID: a.ID, Platform: a.Platform, Accounts: a.Accounts, Status: a.Status}
}
