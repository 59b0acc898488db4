package deal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// publishRetries is how many times an event is offered to the publisher
const publishRetries = 3

// Service defines all deal-related business operations
type Service interface {
	// Read operations
	Board() models.Board
	Summaries() []models.StageSummary
	GetDeal(id types.DealID) (*models.DealDetail, error)

	// Write operations
	AddDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error)
	EditDeal(ctx context.Context, req UpdateDealRequest) (*models.Deal, error)
	RemoveDeal(ctx context.Context, id types.DealID) error

	// Deal movements
	MoveDeal(ctx context.Context, req MoveDealRequest) (*models.Move, error)
	MoveDealUp(ctx context.Context, id types.DealID) (*models.Move, error)
	MoveDealDown(ctx context.Context, id types.DealID) (*models.Move, error)
	MoveDealToNextStage(ctx context.Context, id types.DealID) (*models.Move, error)
	MoveDealToPrevStage(ctx context.Context, id types.DealID) (*models.Move, error)

	// Reload discards in-memory state and reads the board from storage
	Reload(ctx context.Context) error
}

// CreateDealRequest encapsulates all data needed to create a deal
type CreateDealRequest struct {
	Title           string
	Company         string
	Amount          string // Parsed with money.Parse, e.g. "$8,500"
	Contact         string // Optional: defaults to models.DefaultContact
	ContactInitials string // Optional: derived from Contact
	Due             string // Optional: defaults to models.DefaultDue
	Owner           string
	StageID         types.StageID // Optional: empty means the first stage
}

// UpdateDealRequest encapsulates all data needed to update a deal
// Fields with pointers are optional - nil means don't update
type UpdateDealRequest struct {
	DealID          types.DealID
	Title           *string
	Company         *string
	Amount          *string
	Contact         *string
	ContactInitials *string // Re-derived from Contact when nil and Contact changes
	Due             *string
	Owner           *string
}

// MoveDealRequest is a drag-and-drop move: where the caller saw the deal and
// where it should go
type MoveDealRequest struct {
	DealID          types.DealID
	FromStage       types.StageID
	FromIndex       int
	ToStage         types.StageID
	ToIndex         int
	ExpectedVersion uint64 // Optional: 0 skips the version check
}

// service implements Service interface
type service struct {
	// mu serialises every engine access; the engine itself is not locked
	mu sync.Mutex

	engine      *board.Engine
	stages      []models.Stage
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService syncs the configured stages to storage, loads the stored deals
// and returns a service over the resulting board.
func NewService(ctx context.Context, repo database.DataStore, stages []models.Stage, eventClient events.EventPublisher, opts ...board.Option) (Service, error) {
	engine, err := board.New(stages, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline: %w", err)
	}
	if err := repo.SyncStages(ctx, stages); err != nil {
		return nil, fmt.Errorf("failed to sync stages: %w", err)
	}

	s := &service{
		engine:      engine,
		stages:      stages,
		repo:        repo,
		eventClient: eventClient,
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Board returns a snapshot of the whole pipeline
func (s *service) Board() models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Summaries returns per-stage counts and totals
func (s *service) Summaries() []models.StageSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Summaries()
}

// GetDeal returns a deal with its stage and position
func (s *service) GetDeal(id types.DealID) (*models.DealDetail, error) {
	if id.IsZero() {
		return nil, ErrInvalidDealID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.engine.Get(id)
	if err != nil {
		return nil, err
	}
	stageID, pos, err := s.engine.Locate(id)
	if err != nil {
		return nil, err
	}
	return &models.DealDetail{
		Deal:       d,
		StageID:    stageID,
		StageLabel: s.stageLabel(stageID),
		Position:   pos,
	}, nil
}

// AddDeal validates the request, appends the deal to its stage and saves it
func (s *service) AddDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error) {
	fields, err := s.validateCreateDeal(req)
	if err != nil {
		return nil, err
	}

	var d models.Deal
	err = s.locked(func() (*events.Event, error) {
		snap := s.engine.Snapshot()
		d, err = s.engine.AddItem(req.StageID, fields)
		if err != nil {
			return nil, err
		}
		stageID, _, err := s.engine.Locate(d.ID)
		if err != nil {
			s.rollback(snap)
			return nil, err
		}
		ids, err := s.engine.Stage(stageID)
		if err != nil {
			s.rollback(snap)
			return nil, err
		}

		if err := s.repo.InsertDeal(ctx, s.revision(snap), d, stageID, ids); err != nil {
			s.rollback(snap)
			return nil, fmt.Errorf("failed to save deal: %w", err)
		}
		return s.dealEvent(events.EventDealCreated, d, stageID), nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// EditDeal merges the non-nil request fields into the deal
func (s *service) EditDeal(ctx context.Context, req UpdateDealRequest) (*models.Deal, error) {
	patch, err := s.validateUpdateDeal(req)
	if err != nil {
		return nil, err
	}

	var d models.Deal
	err = s.locked(func() (*events.Event, error) {
		snap := s.engine.Snapshot()
		d, err = s.engine.EditItem(req.DealID, patch)
		if err != nil {
			return nil, err
		}

		if err := s.repo.UpdateDeal(ctx, s.revision(snap), d); err != nil {
			s.rollback(snap)
			return nil, fmt.Errorf("failed to save deal: %w", err)
		}

		stageID, _, _ := s.engine.Locate(d.ID)
		return s.dealEvent(events.EventDealUpdated, d, stageID), nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// RemoveDeal deletes a deal and closes the gap it leaves in its stage
func (s *service) RemoveDeal(ctx context.Context, id types.DealID) error {
	if id.IsZero() {
		return ErrInvalidDealID
	}

	return s.locked(func() (*events.Event, error) {
		snap := s.engine.Snapshot()
		d, err := s.engine.Get(id)
		if err != nil {
			return nil, err
		}
		stageID, err := s.engine.RemoveItem(id)
		if err != nil {
			return nil, err
		}
		ids, err := s.engine.Stage(stageID)
		if err != nil {
			s.rollback(snap)
			return nil, err
		}

		if err := s.repo.DeleteDeal(ctx, s.revision(snap), id, stageID, ids); err != nil {
			s.rollback(snap)
			return nil, fmt.Errorf("failed to delete deal: %w", err)
		}
		return s.dealEvent(events.EventDealDeleted, d, stageID), nil
	})
}

// MoveDeal relocates a deal. The caller's view of the deal's current
// position must be accurate or the move is rejected with models.ErrStaleMove.
func (s *service) MoveDeal(ctx context.Context, req MoveDealRequest) (*models.Move, error) {
	if req.DealID.IsZero() {
		return nil, ErrInvalidDealID
	}

	var move *models.Move
	err := s.locked(func() (*events.Event, error) {
		var err error
		var event *events.Event
		move, event, err = s.relocate(ctx, models.MoveRequest{
			DealID:          req.DealID,
			SourceStage:     req.FromStage,
			SourceIndex:     req.FromIndex,
			DestStage:       req.ToStage,
			DestIndex:       req.ToIndex,
			ExpectedVersion: req.ExpectedVersion,
		})
		return event, err
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

// MoveDealUp moves a deal one position towards the top of its stage
func (s *service) MoveDealUp(ctx context.Context, id types.DealID) (*models.Move, error) {
	return s.step(ctx, id, func(stage types.StageID, idx, _ int) (types.StageID, int, error) {
		if idx == 0 {
			return "", 0, ErrAlreadyFirstDeal
		}
		return stage, idx - 1, nil
	})
}

// MoveDealDown moves a deal one position towards the bottom of its stage
func (s *service) MoveDealDown(ctx context.Context, id types.DealID) (*models.Move, error) {
	return s.step(ctx, id, func(stage types.StageID, idx, length int) (types.StageID, int, error) {
		if idx >= length-1 {
			return "", 0, ErrAlreadyLastDeal
		}
		return stage, idx + 1, nil
	})
}

// MoveDealToNextStage moves a deal to the stage on its right, keeping its
// position where the destination is long enough
func (s *service) MoveDealToNextStage(ctx context.Context, id types.DealID) (*models.Move, error) {
	return s.step(ctx, id, func(stage types.StageID, idx, _ int) (types.StageID, int, error) {
		next, ok := s.neighbour(stage, 1)
		if !ok {
			return "", 0, ErrAlreadyLastStage
		}
		return next, idx, nil
	})
}

// MoveDealToPrevStage moves a deal to the stage on its left
func (s *service) MoveDealToPrevStage(ctx context.Context, id types.DealID) (*models.Move, error) {
	return s.step(ctx, id, func(stage types.StageID, idx, _ int) (types.StageID, int, error) {
		prev, ok := s.neighbour(stage, -1)
		if !ok {
			return "", 0, ErrAlreadyFirstStage
		}
		return prev, idx, nil
	})
}

// Reload replaces the in-memory board with what storage holds
func (s *service) Reload(ctx context.Context) error {
	return s.locked(func() (*events.Event, error) {
		if err := s.load(ctx); err != nil {
			return nil, err
		}
		return &events.Event{Type: events.EventBoardLoaded, Version: s.engine.Version()}, nil
	})
}

// step resolves a relative move against the deal's current position and
// applies it under one lock, so the source position cannot go stale
func (s *service) step(ctx context.Context, id types.DealID, target func(stage types.StageID, idx, length int) (types.StageID, int, error)) (*models.Move, error) {
	if id.IsZero() {
		return nil, ErrInvalidDealID
	}

	var move *models.Move
	err := s.locked(func() (*events.Event, error) {
		stage, idx, err := s.engine.Locate(id)
		if err != nil {
			return nil, err
		}
		ids, err := s.engine.Stage(stage)
		if err != nil {
			return nil, err
		}
		dest, destIdx, err := target(stage, idx, len(ids))
		if err != nil {
			return nil, err
		}

		var event *events.Event
		move, event, err = s.relocate(ctx, models.MoveRequest{
			DealID:      id,
			SourceStage: stage,
			SourceIndex: idx,
			DestStage:   dest,
			DestIndex:   destIdx,
		})
		return event, err
	})
	if err != nil {
		return nil, err
	}
	return move, nil
}

// relocate applies a move to the engine and mirrors it to storage.
// Must be called with s.mu held. No-op moves return a nil event.
func (s *service) relocate(ctx context.Context, req models.MoveRequest) (*models.Move, *events.Event, error) {
	snap := s.engine.Snapshot()
	move, err := s.engine.Relocate(req)
	if err != nil {
		return nil, nil, err
	}
	if move.NoOp {
		return &move, nil, nil
	}

	rev := s.revision(snap)
	if move.From == move.To {
		err = s.repo.SaveStageOrder(ctx, rev, move.To, move.Dest)
	} else {
		err = s.repo.MoveDeal(ctx, rev, move.DealID, move.From, move.Source, move.To, move.Dest)
	}
	if err != nil {
		s.rollback(snap)
		return nil, nil, fmt.Errorf("failed to save move: %w", err)
	}

	d, _ := s.engine.Get(move.DealID)
	return &move, s.dealEvent(events.EventDealMoved, d, move.To), nil
}

// locked runs fn with s.mu held and publishes the event it returns once the
// lock is released, so a slow publisher never blocks readers
func (s *service) locked(fn func() (*events.Event, error)) error {
	s.mu.Lock()
	event, err := fn()
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if event != nil {
		s.publishEvent(*event)
	}
	return nil
}

// revision is the storage version change for everything applied since snap
func (s *service) revision(snap models.Board) models.Revision {
	return models.Revision{From: snap.Version, To: s.engine.Version()}
}

// load reads deals from storage into the engine. Must be called with s.mu
// held, or before the service is shared.
func (s *service) load(ctx context.Context) error {
	version, err := s.repo.BoardVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read board version: %w", err)
	}
	deals, placements, err := s.repo.ListDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	if err := s.engine.Load(deals, placements, version); err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	slog.Debug("board loaded", "deals", len(deals), "version", s.engine.Version())
	return nil
}

// rollback restores the engine to a snapshot after a failed save
func (s *service) rollback(snap models.Board) {
	if err := s.engine.Restore(snap); err != nil {
		// The snapshot came from this engine, so this means memory is corrupt
		slog.Error("failed to restore board after save error", "error", err)
		return
	}
	slog.Warn("board restored after save error", "version", snap.Version)
}

func (s *service) neighbour(stage types.StageID, offset int) (types.StageID, bool) {
	order := s.engine.StageOrder()
	for i, id := range order {
		if id == stage {
			j := i + offset
			if j < 0 || j >= len(order) {
				return "", false
			}
			return order[j], true
		}
	}
	return "", false
}

func (s *service) stageLabel(id types.StageID) string {
	for _, st := range s.stages {
		if st.ID == id {
			return st.Label
		}
	}
	return id.String()
}

// validateCreateDeal checks the request and fills in defaults
func (s *service) validateCreateDeal(req CreateDealRequest) (models.DealFields, error) {
	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		return models.DealFields{}, err
	}
	company := strings.TrimSpace(req.Company)
	if company == "" {
		return models.DealFields{}, ErrEmptyCompany
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return models.DealFields{}, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}

	contact := strings.TrimSpace(req.Contact)
	initials := strings.TrimSpace(req.ContactInitials)
	if contact == "" {
		contact = models.DefaultContact
		if initials == "" {
			initials = models.DefaultContactInitials
		}
	}
	if initials == "" {
		initials = Initials(contact)
	}

	due := strings.TrimSpace(req.Due)
	if due == "" {
		due = models.DefaultDue
	}

	return models.DealFields{
		Title:           title,
		Company:         company,
		Contact:         contact,
		ContactInitials: initials,
		Amount:          amount,
		Due:             due,
		Owner:           strings.TrimSpace(req.Owner),
	}, nil
}

// validateUpdateDeal checks the request and converts it to a patch
func (s *service) validateUpdateDeal(req UpdateDealRequest) (models.DealPatch, error) {
	if req.DealID.IsZero() {
		return models.DealPatch{}, ErrInvalidDealID
	}

	var patch models.DealPatch
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if err := validateTitle(title); err != nil {
			return models.DealPatch{}, err
		}
		patch.Title = &title
	}
	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			return models.DealPatch{}, ErrEmptyCompany
		}
		patch.Company = &company
	}
	if req.Amount != nil {
		amount, err := money.Parse(*req.Amount)
		if err != nil {
			return models.DealPatch{}, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
		patch.Amount = &amount
	}
	if req.ContactInitials != nil {
		initials := strings.TrimSpace(*req.ContactInitials)
		patch.ContactInitials = &initials
	}
	if req.Contact != nil {
		contact := strings.TrimSpace(*req.Contact)
		if contact == "" {
			contact = models.DefaultContact
			if patch.ContactInitials == nil || *patch.ContactInitials == "" {
				initials := models.DefaultContactInitials
				patch.ContactInitials = &initials
			}
		}
		if patch.ContactInitials == nil || *patch.ContactInitials == "" {
			initials := Initials(contact)
			patch.ContactInitials = &initials
		}
		patch.Contact = &contact
	}
	if req.Due != nil {
		due := strings.TrimSpace(*req.Due)
		if due == "" {
			due = models.DefaultDue
		}
		patch.Due = &due
	}
	if req.Owner != nil {
		owner := strings.TrimSpace(*req.Owner)
		patch.Owner = &owner
	}

	if patch.IsEmpty() {
		return models.DealPatch{}, ErrNoChanges
	}
	return patch, nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Initials returns up to two upper-case initials for a contact name.
// "Alex Johnson" becomes "AJ"; an empty name gives models.DefaultContactInitials.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	if b.Len() == 0 {
		return models.DefaultContactInitials
	}
	return b.String()
}

// dealEvent describes a committed deal change at the current board version
func (s *service) dealEvent(t events.EventType, d models.Deal, stageID types.StageID) *events.Event {
	return &events.Event{
		Type:    t,
		DealID:  d.ID,
		StageID: stageID,
		Title:   d.Title,
		Version: s.engine.Version(),
	}
}

// publishEvent sends an event. Failures are logged and never undo the change.
// Must be called without s.mu held.
func (s *service) publishEvent(event events.Event) {
	if s.eventClient == nil {
		return
	}
	if err := events.PublishWithRetry(s.eventClient, event, publishRetries); err != nil && !errors.Is(err, events.ErrClosed) {
		slog.Error("failed to publish event", "event_type", event.Type, "deal_id", event.DealID, "error", err)
	}
}
