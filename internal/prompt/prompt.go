// Package prompt renders the seed system message for a new chat from a
// client profile. Rendering is a pure function of the profile; the template
// is compiled once at startup.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"clientsim/internal/domain/models"
	"clientsim/internal/domain/services"
)

//go:embed client_system_prompt.tmpl
var systemPromptTemplate string

// Renderer implements services.PromptRenderer with a text/template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer compiles the embedded system-prompt template.
func NewRenderer() (services.PromptRenderer, error) {
	tmpl, err := template.New("client_system_prompt").Parse(systemPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse system prompt template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render substitutes the profile's fields into the system-prompt template.
func (r *Renderer) Render(profile *models.ClientProfile) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, profile); err != nil {
		return "", fmt.Errorf("render system prompt for %q: %w", profile.DisplayName, err)
	}
	return strings.TrimSpace(sb.String()), nil
}
