package store_test

import (
	"testing"

	"github.com/blackroad/journeymap/internal/domain"
)

func TestTouchpointInsertNilMetadata(t *testing.T) {
	st := newTestStore(t)

	mustInsertTouchpoint(t, st, &domain.Touchpoint{
		ID: "tp-1", SessionID: "sess-1", CustomerID: "cust-1",
		Channel: "organic", Page: "/", EventType: "page_view",
		Timestamp: ago(0), Metadata: nil,
	})

	var meta string
	err := st.DB.QueryRow(`SELECT metadata FROM touchpoints WHERE id = 'tp-1'`).Scan(&meta)
	if err != nil {
		t.Fatalf("query metadata: %v", err)
	}
	if meta != "{}" {
		t.Errorf("metadata = %q, want empty JSON object", meta)
	}
}

func TestTouchpointInsertUnknownSession(t *testing.T) {
	st := newTestStore(t)

	// The log is append-only; no session existence check.
	mustInsertTouchpoint(t, st, &domain.Touchpoint{
		ID: "tp-1", SessionID: "never-created", CustomerID: "cust-1",
		Channel: "organic", Page: "/", EventType: "page_view",
		Timestamp: ago(0),
		Metadata:  map[string]any{"referrer": "newsletter"},
	})

	var count int
	if err := st.DB.QueryRow(`SELECT COUNT(*) FROM touchpoints`).Scan(&count); err != nil {
		t.Fatalf("count touchpoints: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
