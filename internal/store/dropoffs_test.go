package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/blackroad/journeymap/internal/domain"
)

func TestDropoffBreakdown(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	mustCreateSession(t, st, &domain.Session{
		ID: "sess-1", CustomerID: "c1", StartTime: ago(time.Hour), Channel: "email", Device: "mobile",
	})
	mustCreateSession(t, st, &domain.Session{
		ID: "sess-2", CustomerID: "c2", StartTime: ago(time.Hour), Channel: "email", Device: "desktop",
	})
	mustCreateSession(t, st, &domain.Session{
		ID: "sess-3", CustomerID: "c3", StartTime: ago(time.Hour), Channel: "organic", Device: "desktop",
	})

	events := []struct {
		id, sessionID, ts string
	}{
		{"d1", "sess-1", "2025-06-02T09:15:00.000Z"},
		{"d2", "sess-2", "2025-06-03T09:45:00.000Z"},
		{"d3", "sess-3", "2025-06-04T21:05:00.000Z"},
	}
	for _, ev := range events {
		err := st.Dropoffs.Insert(ctx, &domain.DropoffEvent{
			ID: ev.id, SessionID: ev.sessionID, StageID: "stage-1", StageName: "Interest",
			Timestamp: ev.ts, Reason: domain.DropoffReasonStageNotReached,
		})
		if err != nil {
			t.Fatalf("insert dropoff %s: %v", ev.id, err)
		}
	}

	b, err := st.Dropoffs.Breakdown(ctx, "stage-1")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}

	if b.TotalDropoffs != 3 {
		t.Errorf("TotalDropoffs = %d, want 3", b.TotalDropoffs)
	}
	if b.Reasons[domain.DropoffReasonStageNotReached] != 3 {
		t.Errorf("Reasons = %v, want 3 stage_not_reached", b.Reasons)
	}
	if b.TimeOfDay[9] != 2 || b.TimeOfDay[21] != 1 {
		t.Errorf("TimeOfDay = %v, want 09:00=2 21:00=1", b.TimeOfDay)
	}
	if b.ByChannel["email"] != 2 || b.ByChannel["organic"] != 1 {
		t.Errorf("ByChannel = %v, want email=2 organic=1", b.ByChannel)
	}
}

func TestDropoffBreakdownUnknownStage(t *testing.T) {
	st := newTestStore(t)

	b, err := st.Dropoffs.Breakdown(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if b.TotalDropoffs != 0 || len(b.Reasons) != 0 || len(b.TimeOfDay) != 0 || len(b.ByChannel) != 0 {
		t.Errorf("breakdown = %+v, want empty aggregates", b)
	}
}
