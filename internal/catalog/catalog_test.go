package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clientsim/internal/domain"
)

const testClients = `
- display_name: Alice
  background: Recently moved to the city for a new job.
  needs_and_limitations: Wants help budgeting; uncomfortable with jargon.
  difficulty: easy
  output_type: short chat messages
- display_name: Bob
  background: Runs a small bakery.
  needs_and_limitations: Needs a loan but distrusts banks.
  difficulty: hard
  output_type: long emails
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clients.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestCatalog_GetAll(t *testing.T) {
	cat := New(writeCatalog(t, testClients))

	profiles, err := cat.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].DisplayName != "Alice" || profiles[1].DisplayName != "Bob" {
		t.Errorf("profiles out of order: %+v", profiles)
	}
	if profiles[1].Difficulty != "hard" {
		t.Errorf("expected Bob difficulty 'hard', got %q", profiles[1].Difficulty)
	}
}

func TestCatalog_GetAllRereadsFile(t *testing.T) {
	path := writeCatalog(t, testClients)
	cat := New(path)

	before, err := cat.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}

	// Edits to the backing file take effect immediately; there is no cache.
	extended := testClients + `
- display_name: Carol
  background: Retired teacher.
  needs_and_limitations: Planning an inheritance.
  difficulty: medium
  output_type: letters
`
	if err := os.WriteFile(path, []byte(extended), 0644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	after, err := cat.GetAll()
	if err != nil {
		t.Fatalf("GetAll after edit failed: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Errorf("expected %d profiles after edit, got %d", len(before)+1, len(after))
	}
}

func TestCatalog_GetOne(t *testing.T) {
	cat := New(writeCatalog(t, testClients))

	profile, err := cat.GetOne("Alice")
	if err != nil {
		t.Fatalf("GetOne failed: %v", err)
	}
	if profile.Background == "" || profile.OutputType == "" {
		t.Errorf("profile fields not populated: %+v", profile)
	}
}

func TestCatalog_GetOneNotFound(t *testing.T) {
	cat := New(writeCatalog(t, testClients))

	_, err := cat.GetOne("Ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_GetOneAmbiguous(t *testing.T) {
	duplicated := testClients + `
- display_name: Alice
  background: A different Alice.
  needs_and_limitations: none
  difficulty: easy
  output_type: chat
`
	cat := New(writeCatalog(t, duplicated))

	_, err := cat.GetOne("Alice")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate names, got %v", err)
	}
}

func TestCatalog_MissingFile(t *testing.T) {
	cat := New(filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := cat.GetAll()
	if !errors.Is(err, domain.ErrStorage) {
		t.Errorf("expected ErrStorage for missing file, got %v", err)
	}
}
