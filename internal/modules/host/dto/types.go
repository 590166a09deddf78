package dto

type ContextOutput struct {
	Embedded    bool
	UserID      int64
	DisplayName string
	Username    string
	ColorScheme string
	StartParam  string
}

// Handlers are the callbacks a screen hands to the host chrome. Nil handlers
// are not registered.
type Handlers struct {
	MainLabel string
	Main      func()
	Back      func()
}
