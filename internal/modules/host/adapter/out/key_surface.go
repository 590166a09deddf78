package out

import (
	"sync"

	hostout "lifeos/internal/modules/host/port/out"
)

const (
	MainKey = "ctrl+n"
	BackKey = "esc"
)

type binding struct {
	id    int
	label string
	fn    func()
}

// KeySurface maps the host main and back buttons onto terminal keys. The most
// recently registered handler of each kind wins; releasing it re-exposes the
// previous one.
type KeySurface struct {
	mu       sync.Mutex
	nextID   int
	main     []binding
	back     []binding
	ready    bool
	expanded bool
	scheme   string
}

func NewKeySurface() *KeySurface {
	return &KeySurface{}
}

var _ hostout.Surface = (*KeySurface)(nil)

func (s *KeySurface) Ready() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

func (s *KeySurface) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded = true
}

func (s *KeySurface) AdoptScheme(scheme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = scheme
}

func (s *KeySurface) OnMain(label string, fn func()) func() {
	return s.push(&s.main, label, fn)
}

func (s *KeySurface) OnBack(fn func()) func() {
	return s.push(&s.back, "", fn)
}

func (s *KeySurface) push(stack *[]binding, label string, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	*stack = append(*stack, binding{id: id, label: label, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, b := range *stack {
			if b.id == id {
				*stack = append((*stack)[:i], (*stack)[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs the handler bound to key and reports whether one ran.
func (s *KeySurface) Dispatch(key string) bool {
	s.mu.Lock()
	var fn func()
	switch key {
	case MainKey:
		if n := len(s.main); n > 0 {
			fn = s.main[n-1].fn
		}
	case BackKey:
		if n := len(s.back); n > 0 {
			fn = s.back[n-1].fn
		}
	}
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// MainLabel is the caption of the active main button, empty when none.
func (s *KeySurface) MainLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.main); n > 0 {
		return s.main[n-1].label
	}
	return ""
}

func (s *KeySurface) Scheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheme
}

func (s *KeySurface) Active() (ready, expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready, s.expanded
}
