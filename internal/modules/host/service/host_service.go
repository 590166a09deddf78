package service

import (
	"sync"

	"lifeos/internal/modules/host/domain"
	hostout "lifeos/internal/modules/host/port/out"
)

type HostService struct {
	ctx     domain.Context
	surface hostout.Surface
	once    sync.Once
}

func NewHostService(ctx domain.Context, surface hostout.Surface) *HostService {
	return &HostService{ctx: ctx, surface: surface}
}

func (s *HostService) Context() domain.Context { return s.ctx }

func (s *HostService) Bind(label string, main, back func()) func() {
	s.once.Do(func() {
		s.surface.Ready()
		s.surface.Expand()
		if s.ctx.ColorScheme != "" {
			s.surface.AdoptScheme(s.ctx.ColorScheme)
		}
	})
	var releases []func()
	if main != nil {
		releases = append(releases, s.surface.OnMain(label, main))
	}
	if back != nil {
		releases = append(releases, s.surface.OnBack(back))
	}
	var done sync.Once
	return func() {
		done.Do(func() {
			for _, release := range releases {
				release()
			}
		})
	}
}
