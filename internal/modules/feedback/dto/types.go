package dto

type CapabilitiesOutput struct {
	Speech  bool
	Audio   bool
	Haptics bool
}
