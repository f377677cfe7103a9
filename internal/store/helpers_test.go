package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/blackroad/journeymap/internal/database"
	"github.com/blackroad/journeymap/internal/domain"
	"github.com/blackroad/journeymap/internal/store"
	"github.com/blackroad/journeymap/internal/testhelpers"
)

const testTimeFormat = "2006-01-02T15:04:05.000Z"

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

// ago formats a UTC timestamp d before now, in the persisted layout.
func ago(d time.Duration) string {
	return time.Now().UTC().Add(-d).Format(testTimeFormat)
}

func mustCreateSession(t *testing.T, st *store.Store, sess *domain.Session) {
	t.Helper()
	if err := st.Sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("create session %s: %v", sess.ID, err)
	}
}

func mustInsertTouchpoint(t *testing.T, st *store.Store, tp *domain.Touchpoint) {
	t.Helper()
	if err := st.Touchpoints.Insert(context.Background(), tp); err != nil {
		t.Fatalf("insert touchpoint %s: %v", tp.ID, err)
	}
}

func mustUpsertStage(t *testing.T, st *store.Store, stage *domain.FunnelStage) {
	t.Helper()
	if err := st.Stages.Upsert(context.Background(), stage); err != nil {
		t.Fatalf("upsert stage %s: %v", stage.Name, err)
	}
}
