package in

import "lifeos/internal/modules/host/dto"

type Usecase interface {
	Context() dto.ContextOutput
	// Bind registers handlers on the host surface. Callers must defer the
	// returned release.
	Bind(handlers dto.Handlers) (release func())
}
