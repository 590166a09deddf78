package out

// Surface is the host chrome the client runs inside. Each On* call returns a
// function that unregisters exactly that handler.
type Surface interface {
	Ready()
	Expand()
	AdoptScheme(scheme string)
	OnMain(label string, fn func()) (release func())
	OnBack(fn func()) (release func())
}
