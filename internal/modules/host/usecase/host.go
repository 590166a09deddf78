package usecase

import (
	"lifeos/internal/modules/host/dto"
	hostin "lifeos/internal/modules/host/port/in"
	"lifeos/internal/modules/host/service"
)

type Interactor struct {
	svc *service.HostService
}

func NewInteractor(svc *service.HostService) hostin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Context() dto.ContextOutput {
	c := i.svc.Context()
	out := dto.ContextOutput{Embedded: c.Embedded(), ColorScheme: c.ColorScheme, StartParam: c.StartParam}
	if c.User != nil {
		out.UserID = c.User.ID
		out.DisplayName = c.User.DisplayName()
		out.Username = c.User.Username
	}
	return out
}

func (i *Interactor) Bind(h dto.Handlers) func() {
	return i.svc.Bind(h.MainLabel, h.Main, h.Back)
}
