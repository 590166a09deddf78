package dto

type CredentialOutput struct {
	Name     string
	State    string
	Verified string
	OK       bool
}

type HealthOutput struct {
	Credentials []CredentialOutput
	Healthy     bool
}
