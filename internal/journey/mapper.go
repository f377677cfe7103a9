// Package journey implements the customer journey engine: funnel stage
// registration, session tracking, touchpoint recording with stage-transition
// detection, path and dropoff construction at session close, and the
// read-only metrics aggregations. All state lives behind the store
// interfaces; the engine holds no caches.
package journey

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/blackroad/journeymap/internal/domain"
	"github.com/blackroad/journeymap/internal/store"
)

// Mapper is the journey engine. Mutating operations on the same session are
// serialized by a per-session mutex: stage detection and path construction
// are read-then-write sequences that must not interleave for one session id.
type Mapper struct {
	stages      store.StageStore
	sessions    store.SessionStore
	touchpoints store.TouchpointStore
	paths       store.PathStore
	dropoffs    store.DropoffStore
	analytics   store.AnalyticsStore
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Mapper on top of the given store. A nil logger falls back to
// slog.Default().
func New(st *store.Store, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{
		stages:      st.Stages,
		sessions:    st.Sessions,
		touchpoints: st.Touchpoints,
		paths:       st.Paths,
		dropoffs:    st.Dropoffs,
		analytics:   st.Analytics,
		logger:      logger,
		locks:       map[string]*sync.Mutex{},
	}
}

// sessionLock returns the exclusive writer mutex for one session id.
func (m *Mapper) sessionLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// DefineStage upserts a funnel stage by name. Redefining an existing name
// replaces the whole row under a freshly generated id; stage ids are not
// stable across redefinition. Position uniqueness is not enforced, so
// overlapping positions simply sort together.
func (m *Mapper) DefineStage(ctx context.Context, name string, position int, description, entryEvent, exitEvent string) (*domain.FunnelStage, error) {
	stage := &domain.FunnelStage{
		ID:          uuid.NewString(),
		Name:        name,
		Position:    position,
		Description: description,
		EntryEvent:  entryEvent,
		ExitEvent:   exitEvent,
	}
	if err := m.stages.Upsert(ctx, stage); err != nil {
		return nil, err
	}
	m.logger.Debug("stage defined", "name", name, "position", position, "entry_event", entryEvent)
	return stage, nil
}

// StartSession opens a new session for a customer and returns its id. The
// session starts unconverted with zero value; an empty device defaults to
// "unknown".
func (m *Mapper) StartSession(ctx context.Context, customerID, channel, device string) (string, error) {
	if device == "" {
		device = "unknown"
	}
	sess := &domain.Session{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		StartTime:  store.Now(),
		Channel:    channel,
		Device:     device,
	}
	if err := m.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	m.logger.Debug("session started", "session_id", sess.ID, "customer_id", customerID, "channel", channel)
	return sess.ID, nil
}

// TouchpointInput is the payload for RecordTouchpoint.
type TouchpointInput struct {
	SessionID  string
	CustomerID string
	Channel    string
	Page       string
	EventType  string
	DurationMS int
	Metadata   map[string]any
}

// TouchpointResult reports the recorded touchpoint and, when the event type
// matched a funnel stage's entry event, the stage that was entered. Stage
// fields are zero when no stage matched.
type TouchpointResult struct {
	TouchpointID string `json:"touchpointId"`
	StageEntered string `json:"stageEntered,omitempty"`
	Position     int    `json:"position,omitempty"`
	StageID      string `json:"stageId,omitempty"`
}

// RecordTouchpoint appends a touchpoint to the session's event history and
// detects a stage entry. The append is unconditional: the session is not
// checked to be open or to exist. Stage detection matches the touchpoint's
// event type against stage entry events in ascending position order, so when
// several stages share an entry event the lowest position wins.
func (m *Mapper) RecordTouchpoint(ctx context.Context, in TouchpointInput) (*TouchpointResult, error) {
	lock := m.sessionLock(in.SessionID)
	lock.Lock()
	defer lock.Unlock()

	tp := &domain.Touchpoint{
		ID:         uuid.NewString(),
		SessionID:  in.SessionID,
		CustomerID: in.CustomerID,
		Channel:    in.Channel,
		Page:       in.Page,
		EventType:  in.EventType,
		Timestamp:  store.Now(),
		DurationMS: in.DurationMS,
		Metadata:   in.Metadata,
	}
	if err := m.touchpoints.Insert(ctx, tp); err != nil {
		return nil, err
	}

	result := &TouchpointResult{TouchpointID: tp.ID}

	stage, err := m.stages.FirstByEntryEvent(ctx, in.EventType)
	if err != nil {
		return nil, err
	}
	if stage != nil {
		result.StageEntered = stage.Name
		result.Position = stage.Position
		result.StageID = stage.ID
		m.logger.Debug("stage entered", "session_id", in.SessionID, "stage", stage.Name, "position", stage.Position)
	}
	return result, nil
}

// EndSession closes a session, builds its conversion path and, for
// non-converting sessions, records the earliest unreached stage as the single
// dropoff point. Closing an already-closed session returns
// store.ErrSessionClosed; an unknown id returns store.ErrSessionNotFound.
func (m *Mapper) EndSession(ctx context.Context, sessionID string, converted bool, conversionValue float64) (*domain.ConversionPath, error) {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	now := store.Now()
	if err := m.sessions.Close(ctx, sessionID, now, converted, conversionValue); err != nil {
		return nil, err
	}

	// The path is the set of stages the session ever triggered, in funnel
	// order. Touchpoint chronology does not matter here.
	visited, err := m.stages.VisitedBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(visited))
	for i, st := range visited {
		names[i] = st.Name
	}

	signature := domain.DirectPath
	if len(names) > 0 {
		signature = strings.Join(names, domain.PathSeparator)
	}

	path := &domain.ConversionPath{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		StagesVisited: names,
		PathSignature: signature,
		Converted:     converted,
		CreatedAt:     now,
	}
	if err := m.paths.Insert(ctx, path); err != nil {
		return nil, err
	}

	if !converted {
		if err := m.recordDropoff(ctx, sessionID, names, now); err != nil {
			return nil, err
		}
	}

	m.logger.Info("session ended", "session_id", sessionID, "converted", converted, "path", signature)
	return path, nil
}

// recordDropoff finds the first registered stage (in funnel order) absent
// from the visited set and records it. A session missing several stages still
// produces exactly one dropoff; a session that visited every stage produces
// none.
func (m *Mapper) recordDropoff(ctx context.Context, sessionID string, visited []string, now string) error {
	all, err := m.stages.ListByPosition(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(visited))
	for _, name := range visited {
		seen[name] = true
	}

	for _, st := range all {
		if seen[st.Name] {
			continue
		}
		ev := &domain.DropoffEvent{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			StageID:   st.ID,
			StageName: st.Name,
			Timestamp: now,
			Reason:    domain.DropoffReasonStageNotReached,
		}
		if err := m.dropoffs.Insert(ctx, ev); err != nil {
			return fmt.Errorf("record dropoff: %w", err)
		}
		return nil
	}
	return nil
}
