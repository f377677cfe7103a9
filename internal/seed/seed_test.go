package seed_test

import (
	"context"
	"testing"

	"github.com/blackroad/journeymap/internal/database"
	"github.com/blackroad/journeymap/internal/journey"
	"github.com/blackroad/journeymap/internal/seed"
	"github.com/blackroad/journeymap/internal/store"
	"github.com/blackroad/journeymap/internal/testhelpers"
)

func TestStages(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	st := store.New(db)
	m := journey.New(st, nil)

	if err := seed.Stages(ctx, m); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stages, err := st.Stages.ListByPosition(ctx)
	if err != nil {
		t.Fatalf("list stages: %v", err)
	}
	if len(stages) != len(seed.DemoFunnel) {
		t.Fatalf("expected %d stages, got %d", len(seed.DemoFunnel), len(stages))
	}
	if stages[0].Name != "Awareness" || stages[4].Name != "Purchase" {
		t.Errorf("unexpected stage order: %q ... %q", stages[0].Name, stages[4].Name)
	}

	// Seeding twice keeps the same stage count (upsert by name).
	if err := seed.Stages(ctx, m); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	stages, err = st.Stages.ListByPosition(ctx)
	if err != nil {
		t.Fatalf("list stages: %v", err)
	}
	if len(stages) != len(seed.DemoFunnel) {
		t.Errorf("expected %d stages after re-seed, got %d", len(seed.DemoFunnel), len(stages))
	}
}
