package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clientsim/internal/domain"
	"clientsim/internal/domain/models"
	"clientsim/internal/domain/repositories"
)

// Catalog is a read-only client-profile lookup backed by a YAML file. The
// file is re-read on every call, so edits take effect without a restart.
type Catalog struct {
	path string
}

// New creates a catalog reading profiles from the YAML file at path.
func New(path string) repositories.ClientCatalog {
	return &Catalog{path: path}
}

// GetAll reads the backing file fresh and returns every profile in file order.
func (c *Catalog) GetAll() ([]models.ClientProfile, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read client catalog %s: %v: %w", c.path, err, domain.ErrStorage)
	}

	var profiles []models.ClientProfile
	if err := yaml.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse client catalog %s: %v: %w", c.path, err, domain.ErrStorage)
	}

	return profiles, nil
}

// GetOne returns the profile whose display name matches exactly. The catalog
// is expected to keep names unique; more than one match is a data-integrity
// failure and fails loudly.
func (c *Catalog) GetOne(displayName string) (*models.ClientProfile, error) {
	profiles, err := c.GetAll()
	if err != nil {
		return nil, err
	}

	var matches []models.ClientProfile
	for _, profile := range profiles {
		if profile.DisplayName == displayName {
			matches = append(matches, profile)
		}
	}

	switch len(matches) {
	case 1:
		return &matches[0], nil
	case 0:
		return nil, fmt.Errorf("client %q: %w", displayName, domain.ErrNotFound)
	default:
		return nil, fmt.Errorf("client %q matches %d catalog entries: %w", displayName, len(matches), domain.ErrConflict)
	}
}
