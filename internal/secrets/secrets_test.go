package secrets

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestResolve_EnvWins(t *testing.T) {
	keyring.MockInit()
	if err := Set("TEST_TOKEN", "from-keyring"); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	t.Setenv("TEST_TOKEN", "from-env")

	got, err := Resolve("TEST_TOKEN")
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	if got != "from-env" {
		t.Errorf("Resolve() = %q, want env value", got)
	}
}

func TestResolve_FallsBackToKeyring(t *testing.T) {
	keyring.MockInit()
	if err := Set("TEST_TOKEN", "from-keyring"); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	t.Setenv("TEST_TOKEN", "")

	got, err := Resolve("TEST_TOKEN")
	if err != nil {
		t.Fatalf("Resolve() = %v", err)
	}
	if got != "from-keyring" {
		t.Errorf("Resolve() = %q, want keyring value", got)
	}
}

func TestResolve_Missing(t *testing.T) {
	keyring.MockInit()
	t.Setenv("NOPE_TOKEN", "")

	if _, err := Resolve("NOPE_TOKEN"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() = %v, want ErrNotFound", err)
	}
}

func TestDelete_AbsentKeyIsFine(t *testing.T) {
	keyring.MockInit()
	if err := Delete("NEVER_SET"); err != nil {
		t.Errorf("Delete() = %v, want nil for absent key", err)
	}
}
