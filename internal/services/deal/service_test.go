package deal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/dealdesk/internal/board"
	"github.com/thenoetrevino/dealdesk/internal/database"
	"github.com/thenoetrevino/dealdesk/internal/events"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	"github.com/thenoetrevino/dealdesk/internal/types"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var testStages = []models.Stage{
	{ID: "lead", Label: "New Leads", Accent: "#3B82F6"},
	{ID: "qualified", Label: "Qualified", Accent: "#A855F7"},
	{ID: "negotiation", Label: "Negotiation", Accent: "#EAB308"},
	{ID: "won", Label: "Closed Won", Accent: "#22C55E"},
}

// recordingPublisher records every event it is sent
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) SendEvent(e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) eventTypes() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

// failingStore wraps a DataStore and fails every write once armed
type failingStore struct {
	database.DataStore
	fail error
}

func (f *failingStore) InsertDeal(ctx context.Context, rev models.Revision, d models.Deal, stageID types.StageID, ids []types.DealID) error {
	if f.fail != nil {
		return f.fail
	}
	return f.DataStore.InsertDeal(ctx, rev, d, stageID, ids)
}

func (f *failingStore) UpdateDeal(ctx context.Context, rev models.Revision, d models.Deal) error {
	if f.fail != nil {
		return f.fail
	}
	return f.DataStore.UpdateDeal(ctx, rev, d)
}

func (f *failingStore) DeleteDeal(ctx context.Context, rev models.Revision, id types.DealID, stageID types.StageID, ids []types.DealID) error {
	if f.fail != nil {
		return f.fail
	}
	return f.DataStore.DeleteDeal(ctx, rev, id, stageID, ids)
}

func (f *failingStore) SaveStageOrder(ctx context.Context, rev models.Revision, stageID types.StageID, ids []types.DealID) error {
	if f.fail != nil {
		return f.fail
	}
	return f.DataStore.SaveStageOrder(ctx, rev, stageID, ids)
}

func (f *failingStore) MoveDeal(ctx context.Context, rev models.Revision, dealID types.DealID, src types.StageID, srcIDs []types.DealID, dst types.StageID, dstIDs []types.DealID) error {
	if f.fail != nil {
		return f.fail
	}
	return f.DataStore.MoveDeal(ctx, rev, dealID, src, srcIDs, dst, dstIDs)
}

// lockCheckingPublisher reads the board from inside SendEvent, which
// deadlocks if the service publishes while holding its lock
type lockCheckingPublisher struct {
	svc   Service
	seen  []uint64
	delay time.Duration
}

func (p *lockCheckingPublisher) SendEvent(e events.Event) error {
	time.Sleep(p.delay)
	p.seen = append(p.seen, p.svc.Board().Version)
	return nil
}

func (p *lockCheckingPublisher) Close() error { return nil }

func sequentialIDs() board.Option {
	n := 0
	return board.WithIDGenerator(func() types.DealID {
		n++
		return types.DealID(fmt.Sprintf("deal-%d", n))
	})
}

func newTestService(t *testing.T, store database.DataStore) (Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc, err := NewService(context.Background(), store, testStages, pub, sequentialIDs())
	require.NoError(t, err)
	return svc, pub
}

func addDeal(t *testing.T, svc Service, stage types.StageID, title, amount string) *models.Deal {
	t.Helper()
	d, err := svc.AddDeal(context.Background(), CreateDealRequest{
		Title:   title,
		Company: "Acme Corp",
		Amount:  amount,
		StageID: stage,
	})
	require.NoError(t, err)
	return d
}

func stageIDs(t *testing.T, svc Service, stage types.StageID) []types.DealID {
	t.Helper()
	b := svc.Board()
	st := b.StageByID(stage)
	require.NotNil(t, st)
	return st.DealIDs
}

// storedOrder returns the placement order of one stage as persisted
func storedOrder(t *testing.T, store database.DataStore, stage types.StageID) []types.DealID {
	t.Helper()
	_, placements, err := store.ListDeals(context.Background())
	require.NoError(t, err)
	var out []types.DealID
	for _, p := range placements {
		if p.StageID == stage {
			out = append(out, p.DealID)
		}
	}
	return out
}

// ============================================================================
// TESTS
// ============================================================================

func TestAddDeal(t *testing.T) {
	store := database.NewMemStore()
	svc, pub := newTestService(t, store)
	ctx := context.Background()

	d, err := svc.AddDeal(ctx, CreateDealRequest{
		Title:   "  Website Redesign ",
		Company: "Acme Corp",
		Amount:  "$8,500.00",
		Contact: "Alex Johnson",
		Due:     "Aug 28",
	})
	require.NoError(t, err)

	assert.Equal(t, types.DealID("deal-1"), d.ID)
	assert.Equal(t, "Website Redesign", d.Title)
	assert.Equal(t, "AJ", d.ContactInitials)
	assert.True(t, d.Amount.Equal(money.MustParse("8500")))
	assert.Equal(t, []types.DealID{"deal-1"}, stageIDs(t, svc, "lead"))
	assert.Equal(t, []types.DealID{"deal-1"}, storedOrder(t, store, "lead"))
	assert.Equal(t, []events.EventType{events.EventDealCreated}, pub.eventTypes())

	t.Run("defaults", func(t *testing.T) {
		d, err := svc.AddDeal(ctx, CreateDealRequest{Title: "Cold Call", Company: "Initech", Amount: "0", Owner: " jordan ", StageID: "qualified"})
		require.NoError(t, err)
		assert.Equal(t, "jordan", d.Owner)
		assert.Equal(t, models.DefaultContact, d.Contact)
		assert.Equal(t, models.DefaultContactInitials, d.ContactInitials)
		assert.Equal(t, models.DefaultDue, d.Due)
		assert.Equal(t, []types.DealID{d.ID}, stageIDs(t, svc, "qualified"))
	})

	t.Run("unknown stage", func(t *testing.T) {
		_, err := svc.AddDeal(ctx, CreateDealRequest{Title: "Lost", Company: "Nowhere", Amount: "1", StageID: "archive"})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestAddDeal_Validation(t *testing.T) {
	svc, pub := newTestService(t, database.NewMemStore())

	tests := []struct {
		name string
		req  CreateDealRequest
		want error
	}{
		{"empty title", CreateDealRequest{Title: "  ", Company: "Acme", Amount: "1"}, ErrEmptyTitle},
		{"long title", CreateDealRequest{Title: strings.Repeat("x", 256), Company: "Acme", Amount: "1"}, ErrTitleTooLong},
		{"empty company", CreateDealRequest{Title: "Deal", Amount: "1"}, ErrEmptyCompany},
		{"bad amount", CreateDealRequest{Title: "Deal", Company: "Acme", Amount: "lots"}, ErrInvalidAmount},
		{"missing amount", CreateDealRequest{Title: "Deal", Company: "Acme"}, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddDeal(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}

	assert.Empty(t, svc.Board().Deals)
	assert.Empty(t, pub.eventTypes())
}

func TestEditDeal(t *testing.T) {
	store := database.NewMemStore()
	svc, _ := newTestService(t, store)
	ctx := context.Background()
	d := addDeal(t, svc, "lead", "Software Integration", "15800")

	contact := "David Martinez"
	amount := "16,250.50"
	edited, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: d.ID, Contact: &contact, Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, "Software Integration", edited.Title)
	assert.Equal(t, "DM", edited.ContactInitials)
	assert.True(t, edited.Amount.Equal(money.MustParse("16250.50")))

	stored, _, err := store.GetDeal(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "David Martinez", stored.Contact)

	t.Run("blank fields fall back to defaults", func(t *testing.T) {
		blank := "   "
		owner := "  jordan  "
		edited, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: d.ID, Contact: &blank, Due: &blank, Owner: &owner})
		require.NoError(t, err)
		assert.Equal(t, models.DefaultContact, edited.Contact)
		assert.Equal(t, models.DefaultContactInitials, edited.ContactInitials)
		assert.Equal(t, models.DefaultDue, edited.Due)
		assert.Equal(t, "jordan", edited.Owner)
	})

	t.Run("explicit initials win over derived ones", func(t *testing.T) {
		contact := " Emily Wong "
		initials := "EJ"
		edited, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: d.ID, Contact: &contact, ContactInitials: &initials})
		require.NoError(t, err)
		assert.Equal(t, "Emily Wong", edited.Contact)
		assert.Equal(t, "EJ", edited.ContactInitials)
	})

	t.Run("no changes", func(t *testing.T) {
		_, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: d.ID})
		require.ErrorIs(t, err, ErrNoChanges)
	})

	t.Run("unknown deal", func(t *testing.T) {
		title := "x"
		_, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: "ghost", Title: &title})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestRemoveDeal(t *testing.T) {
	store := database.NewMemStore()
	svc, pub := newTestService(t, store)
	ctx := context.Background()
	a := addDeal(t, svc, "lead", "a", "10")
	b := addDeal(t, svc, "lead", "b", "20")

	require.NoError(t, svc.RemoveDeal(ctx, a.ID))

	_, err := svc.GetDeal(a.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, []types.DealID{b.ID}, stageIDs(t, svc, "lead"))
	assert.Equal(t, []types.DealID{b.ID}, storedOrder(t, store, "lead"))
	assert.Contains(t, pub.eventTypes(), events.EventDealDeleted)

	require.ErrorIs(t, svc.RemoveDeal(ctx, a.ID), models.ErrNotFound)
	require.ErrorIs(t, svc.RemoveDeal(ctx, ""), ErrInvalidDealID)
}

func TestMoveDeal(t *testing.T) {
	store := database.NewMemStore()
	svc, pub := newTestService(t, store)
	ctx := context.Background()
	x := addDeal(t, svc, "lead", "x", "1")
	y := addDeal(t, svc, "lead", "y", "1")
	z := addDeal(t, svc, "lead", "z", "1")

	t.Run("same stage", func(t *testing.T) {
		move, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: x.ID, FromStage: "lead", FromIndex: 0, ToStage: "lead", ToIndex: 2})
		require.NoError(t, err)
		want := []types.DealID{y.ID, z.ID, x.ID}
		assert.Equal(t, want, move.Dest)
		assert.Equal(t, want, storedOrder(t, store, "lead"))
	})

	t.Run("across stages", func(t *testing.T) {
		_, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: z.ID, FromStage: "lead", FromIndex: 1, ToStage: "won", ToIndex: 0})
		require.NoError(t, err)
		assert.Equal(t, []types.DealID{y.ID, x.ID}, storedOrder(t, store, "lead"))
		assert.Equal(t, []types.DealID{z.ID}, storedOrder(t, store, "won"))

		detail, err := svc.GetDeal(z.ID)
		require.NoError(t, err)
		assert.Equal(t, "Closed Won", detail.StageLabel)
	})

	t.Run("stale", func(t *testing.T) {
		before := svc.Board()
		_, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: z.ID, FromStage: "lead", FromIndex: 0, ToStage: "qualified", ToIndex: 0})
		require.ErrorIs(t, err, models.ErrStaleMove)
		assert.Equal(t, before, svc.Board())
	})

	t.Run("outdated version", func(t *testing.T) {
		version := svc.Board().Version
		_, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: z.ID, FromStage: "won", FromIndex: 0, ToStage: "qualified", ToIndex: 0, ExpectedVersion: version - 1})
		require.ErrorIs(t, err, models.ErrStaleMove)
	})

	t.Run("no-op publishes nothing", func(t *testing.T) {
		n := len(pub.eventTypes())
		move, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: z.ID, FromStage: "won", FromIndex: 0, ToStage: "won", ToIndex: 0})
		require.NoError(t, err)
		assert.True(t, move.NoOp)
		assert.Len(t, pub.eventTypes(), n)
	})
}

func TestStepMoves(t *testing.T) {
	svc, _ := newTestService(t, database.NewMemStore())
	ctx := context.Background()
	a := addDeal(t, svc, "lead", "a", "1")
	b := addDeal(t, svc, "lead", "b", "1")

	_, err := svc.MoveDealUp(ctx, a.ID)
	require.ErrorIs(t, err, ErrAlreadyFirstDeal)
	_, err = svc.MoveDealDown(ctx, b.ID)
	require.ErrorIs(t, err, ErrAlreadyLastDeal)
	_, err = svc.MoveDealToPrevStage(ctx, a.ID)
	require.ErrorIs(t, err, ErrAlreadyFirstStage)

	_, err = svc.MoveDealDown(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.DealID{b.ID, a.ID}, stageIDs(t, svc, "lead"))

	move, err := svc.MoveDealToNextStage(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StageID("qualified"), move.To)
	assert.Equal(t, 0, move.ToIndex, "index is clamped to the shorter stage")

	for range 2 {
		_, err = svc.MoveDealToNextStage(ctx, a.ID)
		require.NoError(t, err)
	}
	_, err = svc.MoveDealToNextStage(ctx, a.ID)
	require.ErrorIs(t, err, ErrAlreadyLastStage)
}

// TestRollbackOnStoreFailure checks that a failed save leaves the board
// exactly as it was before the call.
func TestRollbackOnStoreFailure(t *testing.T) {
	store := &failingStore{DataStore: database.NewMemStore()}
	svc, pub := newTestService(t, store)
	ctx := context.Background()
	x := addDeal(t, svc, "lead", "x", "10.00")
	y := addDeal(t, svc, "qualified", "y", "5.50")

	before := svc.Board()
	published := len(pub.eventTypes())
	store.fail = errors.New("disk full")

	title := "renamed"
	ops := map[string]func() error{
		"add": func() error {
			_, err := svc.AddDeal(ctx, CreateDealRequest{Title: "z", Company: "Acme", Amount: "1"})
			return err
		},
		"edit": func() error {
			_, err := svc.EditDeal(ctx, UpdateDealRequest{DealID: x.ID, Title: &title})
			return err
		},
		"remove": func() error {
			return svc.RemoveDeal(ctx, y.ID)
		},
		"move across": func() error {
			_, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: x.ID, FromStage: "lead", ToStage: "won"})
			return err
		},
		"step to next stage": func() error {
			_, err := svc.MoveDealToNextStage(ctx, y.ID)
			return err
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "disk full")
			assert.Equal(t, before, svc.Board())
		})
	}
	assert.Len(t, pub.eventTypes(), published, "failed operations must not publish")

	store.fail = nil
	_, err := svc.MoveDeal(ctx, MoveDealRequest{DealID: x.ID, FromStage: "lead", ToStage: "won"})
	require.NoError(t, err)
}

func TestReload(t *testing.T) {
	store := database.NewMemStore()
	svc, pub := newTestService(t, store)
	ctx := context.Background()
	d := addDeal(t, svc, "lead", "Annual Contract", "24000")

	// Another process moves the deal directly in storage
	version := svc.Board().Version
	rev := models.Revision{From: version, To: version + 1}
	require.NoError(t, store.MoveDeal(ctx, rev, d.ID, "lead", nil, "negotiation", []types.DealID{d.ID}))

	require.NoError(t, svc.Reload(ctx))
	assert.Equal(t, []types.DealID{d.ID}, stageIDs(t, svc, "negotiation"))
	assert.Empty(t, stageIDs(t, svc, "lead"))
	assert.Contains(t, pub.eventTypes(), events.EventBoardLoaded)
	assert.Equal(t, version+1, svc.Board().Version, "reload adopts the stored version")
}

// TestStorageConflict runs two services over one store, the way two
// processes share a database file.
func TestStorageConflict(t *testing.T) {
	store := database.NewMemStore()
	first, pub := newTestService(t, store)
	ctx := context.Background()
	x := addDeal(t, first, "lead", "x", "10")
	y := addDeal(t, first, "lead", "y", "20")

	second, err := NewService(ctx, store, testStages, nil)
	require.NoError(t, err)
	assert.Equal(t, first.Board().Version, second.Board().Version, "a new service starts at the stored version")

	_, err = second.MoveDealToNextStage(ctx, x.ID)
	require.NoError(t, err)

	before := first.Board()
	published := len(pub.eventTypes())
	_, err = first.MoveDeal(ctx, MoveDealRequest{DealID: y.ID, FromStage: "lead", FromIndex: 1, ToStage: "won"})
	require.ErrorIs(t, err, models.ErrStaleMove)
	var conflict *database.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, before.Version, conflict.Expected)
	assert.Equal(t, second.Board().Version, conflict.Stored)

	assert.Equal(t, before, first.Board(), "the rejected move is rolled back")
	assert.Len(t, pub.eventTypes(), published)
	assert.Equal(t, []types.DealID{y.ID}, storedOrder(t, store, "lead"))

	require.NoError(t, first.Reload(ctx))
	_, err = first.MoveDeal(ctx, MoveDealRequest{DealID: y.ID, FromStage: "lead", FromIndex: 0, ToStage: "won"})
	require.NoError(t, err)
	assert.Equal(t, []types.DealID{y.ID}, storedOrder(t, store, "won"))
}

func TestPublishAfterUnlock(t *testing.T) {
	pub := &lockCheckingPublisher{delay: 10 * time.Millisecond}
	svc, err := NewService(context.Background(), database.NewMemStore(), testStages, pub, sequentialIDs())
	require.NoError(t, err)
	pub.svc = svc
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		d, err := svc.AddDeal(ctx, CreateDealRequest{Title: "a", Company: "Acme", Amount: "1"})
		if err != nil {
			done <- err
			return
		}
		if _, err := svc.MoveDealToNextStage(ctx, d.ID); err != nil {
			done <- err
			return
		}
		if err := svc.RemoveDeal(ctx, d.ID); err != nil {
			done <- err
			return
		}
		done <- svc.Reload(ctx)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("publishing blocked on the service lock")
	}
	assert.Equal(t, []uint64{2, 3, 4, 4}, pub.seen)
}

func TestNewService_LoadsExistingBoard(t *testing.T) {
	store := database.NewMemStore()
	first, _ := newTestService(t, store)
	addDeal(t, first, "lead", "a", "10.00")
	addDeal(t, first, "won", "b", "5.50")
	addDeal(t, first, "won", "c", "2.25")

	second, err := NewService(context.Background(), store, testStages, nil)
	require.NoError(t, err)

	summaries := second.Summaries()
	require.Len(t, summaries, 4)
	assert.Equal(t, 2, summaries[3].Count)
	assert.Equal(t, "7.75", summaries[3].Total.StringFixed(2))
	_, total := board.SumSummaries(summaries)
	assert.Equal(t, "17.75", total.StringFixed(2))
}

func TestNewService_InvalidPipeline(t *testing.T) {
	_, err := NewService(context.Background(), database.NewMemStore(), nil, nil)
	require.ErrorIs(t, err, board.ErrNoStages)
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Alex Johnson":          "AJ",
		"samantha lee":          "SL",
		"Cher":                  "C",
		"Mary Jo Van Der Berg":  "MJ",
		"  ":                    models.DefaultContactInitials,
		"(unknown) Emily  Wong": "EW",
	}
	for in, want := range tests {
		assert.Equal(t, want, Initials(in), "Initials(%q)", in)
	}
}
