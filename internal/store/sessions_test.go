package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blackroad/journeymap/internal/domain"
	"github.com/blackroad/journeymap/internal/store"
)

func TestSessionCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	mustCreateSession(t, st, &domain.Session{
		ID: "sess-1", CustomerID: "cust-1", StartTime: ago(time.Minute),
		Channel: "email", Device: "mobile",
	})

	sess, err := st.Sessions.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.CustomerID != "cust-1" || sess.Channel != "email" || sess.Device != "mobile" {
		t.Errorf("session = %+v, want cust-1/email/mobile", sess)
	}
	if sess.EndTime != "" || sess.Converted {
		t.Errorf("new session should be open and unconverted, got %+v", sess)
	}
}

func TestSessionGetNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Sessions.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}

func TestSessionCloseSetsOutcome(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	mustCreateSession(t, st, &domain.Session{
		ID: "sess-1", CustomerID: "cust-1", StartTime: ago(time.Minute),
		Channel: "organic", Device: "desktop",
	})

	end := ago(0)
	if err := st.Sessions.Close(ctx, "sess-1", end, true, 49.99); err != nil {
		t.Fatalf("close: %v", err)
	}

	sess, err := st.Sessions.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.EndTime != end || !sess.Converted || sess.ConversionValue != 49.99 {
		t.Errorf("session = %+v, want closed converted at 49.99", sess)
	}
}

func TestSessionCloseTwice(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	mustCreateSession(t, st, &domain.Session{
		ID: "sess-1", CustomerID: "cust-1", StartTime: ago(time.Minute),
		Channel: "organic", Device: "desktop",
	})

	if err := st.Sessions.Close(ctx, "sess-1", ago(0), true, 100); err != nil {
		t.Fatalf("first close: %v", err)
	}

	err := st.Sessions.Close(ctx, "sess-1", ago(0), false, 0)
	if !errors.Is(err, store.ErrSessionClosed) {
		t.Fatalf("got %v, want ErrSessionClosed", err)
	}

	// The first outcome must survive the rejected second close.
	sess, err := st.Sessions.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !sess.Converted || sess.ConversionValue != 100 {
		t.Errorf("session = %+v, want original converted outcome preserved", sess)
	}
}

func TestSessionCloseNotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.Sessions.Close(context.Background(), "nope", ago(0), false, 0)
	if !errors.Is(err, store.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}
