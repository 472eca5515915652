package collections

import (
	"testing"

	"github.com/pocketbase/pocketbase"
)

func newSetupApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()
	app := pocketbase.NewWithConfig(pocketbase.Config{DefaultDataDir: t.TempDir()})
	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	Setup(app)
	return app
}

func TestSetupCreatesCollections(t *testing.T) {
	app := newSetupApp(t)
	for _, name := range []string{"members", "donations", "complaints"} {
		if _, err := app.FindCollectionByNameOrId(name); err != nil {
			t.Errorf("collection %q was not created: %v", name, err)
		}
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	app := newSetupApp(t)

	if err := Seed(app); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	first, err := app.FindAllRecords("members")
	if err != nil {
		t.Fatalf("could not query members: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("seed created no members")
	}

	if err := Seed(app); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	second, err := app.FindAllRecords("members")
	if err != nil {
		t.Fatalf("could not query members: %v", err)
	}
	if len(second) != len(first) {
		t.Errorf("seed is not idempotent: %d members, then %d", len(first), len(second))
	}
}

func TestSeedIssuesReferenceNumbers(t *testing.T) {
	app := newSetupApp(t)
	if err := Seed(app); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	donations, err := app.FindAllRecords("donations")
	if err != nil {
		t.Fatalf("could not query donations: %v", err)
	}
	for _, d := range donations {
		if d.GetString("reference_id") == "" {
			t.Errorf("donation %s has no reference_id", d.Id)
		}
	}
}
