package models

// ClientProfile is a named persona record used to seed a chat's system
// prompt. Profiles are owned by the catalog and immutable from this service's
// perspective; chats only copy rendered text at creation time.
type ClientProfile struct {
	DisplayName         string `json:"display_name" yaml:"display_name"`
	Background          string `json:"background" yaml:"background"`
	NeedsAndLimitations string `json:"needs_and_limitations" yaml:"needs_and_limitations"`
	Difficulty          string `json:"difficulty" yaml:"difficulty"`
	OutputType          string `json:"output_type" yaml:"output_type"`
}
