package swipe

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/vmaia/cardswipe/internal/errors"
	"github.com/vmaia/cardswipe/internal/logger"
	"github.com/vmaia/cardswipe/internal/models"
	"github.com/vmaia/cardswipe/internal/worker"
)

// ErrClosed is returned by operations on a torn-down controller.
var ErrClosed = errors.New("swipe: controller closed")

// Service is the slice of the card service the controller depends on.
type Service interface {
	AcquireCards(ctx context.Context, setCode string, count int) ([]models.Card, error)
	RecordRating(ctx context.Context, cardID int64, liked, allFormats bool) error
}

// State describes what the swipe surface should render.
type State string

const (
	StateReady   State = "ready"
	StateNoCards State = "no_cards"
)

// Snapshot is a point-in-time view of the controller for rendering.
type Snapshot struct {
	State              State        `json:"state"`
	Card               *models.Card `json:"card,omitempty"`
	QueueLen           int          `json:"queue_len"`
	AwaitingAllFormats bool         `json:"awaiting_all_formats"`
	SetCode            string       `json:"set_code,omitempty"`
	RefillInFlight     bool         `json:"refill_in_flight"`
}

// Outcome reports what a committed (or rejected) input did.
type Outcome struct {
	Committed   bool         `json:"committed"`
	Action      Action       `json:"action"`
	Rated       bool         `json:"rated"`
	RatingSaved bool         `json:"rating_saved"`
	RatedCard   *models.Card `json:"rated_card,omitempty"`
	Snapshot
}

// Controller maintains one session's look-ahead card queue and turns
// gestures into ratings. A single mutex serializes the foreground
// advance and the background refill append, so the two never interleave
// mid-mutation.
type Controller struct {
	svc       Service
	pool      *worker.Pool
	batchSize int
	lowWater  int

	mu                 sync.Mutex
	current            *models.Card
	queue              []models.Card
	refillInFlight     bool
	setCode            string
	awaitingAllFormats bool
	started            bool
	closed             bool
}

// NewController creates a controller; call Reset to load the first batch.
func NewController(svc Service, pool *worker.Pool, batchSize, lowWater int) *Controller {
	if batchSize <= 0 {
		batchSize = 5
	}
	if lowWater <= 0 || lowWater > batchSize {
		lowWater = 3
	}
	return &Controller{
		svc:       svc,
		pool:      pool,
		batchSize: batchSize,
		lowWater:  lowWater,
	}
}

// Reset discards the queue and loads a fresh batch for the current
// filter. The first card becomes current, the rest the queue. An empty
// result leaves the controller in StateNoCards; the caller retries via
// another Reset.
func (c *Controller) Reset(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	c.current = nil
	c.queue = nil
	c.awaitingAllFormats = false
	c.started = true

	cards, err := c.svc.AcquireCards(ctx, c.setCode, c.batchSize)
	if err != nil {
		return nil, err
	}
	if len(cards) > 0 {
		c.current = &cards[0]
		c.queue = cards[1:]
	}

	snap := c.snapshotLocked()
	return &snap, nil
}

// EnsureStarted loads the first batch if the controller has never been
// reset, and otherwise just reports the current view.
func (c *Controller) EnsureStarted(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.started {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return &snap, nil
	}
	c.mu.Unlock()
	return c.Reset(ctx)
}

// SetFilter changes the set filter and reloads the queue.
func (c *Controller) SetFilter(ctx context.Context, setCode string) (*Snapshot, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.setCode = setCode
	c.mu.Unlock()
	return c.Reset(ctx)
}

// Snapshot returns the current view of the controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Drag interprets a drag displacement. Sub-threshold drags commit
// nothing; the outcome tells the surface to snap the card back.
func (c *Controller) Drag(ctx context.Context, dx, dy float64) (*Outcome, error) {
	action := InterpretDrag(dx, dy)
	if action == ActionNone {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			return nil, ErrClosed
		}
		return &Outcome{Committed: false, Action: ActionNone, Snapshot: c.snapshotLocked()}, nil
	}
	return c.commit(ctx, action)
}

// Like is a two-step commit: the first press stages a plain like on the
// current card and reveals the all-formats affordance; a second press
// flushes the staged like and advances.
func (c *Controller) Like(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.current != nil && !c.awaitingAllFormats {
		c.awaitingAllFormats = true
		out := &Outcome{Committed: true, Action: ActionLike, Snapshot: c.snapshotLocked()}
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()
	return c.commit(ctx, ActionLike)
}

// AllFormats commits a like-in-all-formats. When a plain like is staged
// it is amended, so the card still produces exactly one rating row.
func (c *Controller) AllFormats(ctx context.Context) (*Outcome, error) {
	return c.commit(ctx, ActionAllFormats)
}

// Dislike commits a dislike, superseding any staged like.
func (c *Controller) Dislike(ctx context.Context) (*Outcome, error) {
	return c.commit(ctx, ActionDislike)
}

// Skip advances without recording anything; a staged like is discarded.
func (c *Controller) Skip(ctx context.Context) (*Outcome, error) {
	return c.commit(ctx, ActionSkip)
}

// Close tears the controller down. In-flight refills that resolve after
// Close mutate nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.current = nil
	c.queue = nil
}

// commit records the decision for the current card (skips record
// nothing), then advances the queue. The rating lands before the queue
// moves and before any fallback acquisition, so the statistics never
// miss a committed decision.
func (c *Controller) commit(ctx context.Context, action Action) (*Outcome, error) {
	log := logger.FromContext(ctx).WithPrefix("swipe")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if c.current == nil {
		return nil, apperrors.NewBadRequestError("no card to rate")
	}

	card := *c.current
	out := &Outcome{Committed: true, Action: action, RatedCard: &card}

	if action != ActionSkip {
		liked := action == ActionLike || action == ActionAllFormats
		allFormats := action == ActionAllFormats
		out.Rated = true
		if err := c.svc.RecordRating(ctx, card.ID, liked, allFormats); err != nil {
			// Surfaced to the caller, but never strands the user on a
			// card that cannot be rated.
			log.Warn("failed to record rating for card %d: %v", card.ID, err)
		} else {
			out.RatingSaved = true
		}
	}

	c.awaitingAllFormats = false

	if err := c.advanceLocked(ctx); err != nil {
		return nil, err
	}
	out.Snapshot = c.snapshotLocked()
	return out, nil
}

// advanceLocked pops the queue head into current, or blocks on a fresh
// acquisition when the queue is drained.
func (c *Controller) advanceLocked(ctx context.Context) error {
	if len(c.queue) > 0 {
		c.current = &c.queue[0]
		c.queue = c.queue[1:]
		c.maybeRefillLocked()
		return nil
	}

	c.current = nil
	cards, err := c.svc.AcquireCards(ctx, c.setCode, c.batchSize)
	if err != nil {
		return err
	}
	if len(cards) > 0 {
		c.current = &cards[0]
		c.queue = cards[1:]
	}
	return nil
}

// maybeRefillLocked starts a background refill when the queue is short
// and none is in flight. The in-flight flag admits one refill at a time.
func (c *Controller) maybeRefillLocked() {
	if c.refillInFlight || len(c.queue) >= c.lowWater {
		return
	}
	c.refillInFlight = true
	job := &refillJob{ctrl: c, setCode: c.setCode, count: c.batchSize}
	if !c.pool.Submit(job) {
		c.refillInFlight = false
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		QueueLen:           len(c.queue),
		AwaitingAllFormats: c.awaitingAllFormats,
		SetCode:            c.setCode,
		RefillInFlight:     c.refillInFlight,
	}
	if c.current != nil {
		card := *c.current
		snap.Card = &card
		snap.State = StateReady
	} else {
		snap.State = StateNoCards
	}
	return snap
}

// refillJob tops the queue back up on a pool worker.
type refillJob struct {
	ctrl    *Controller
	setCode string
	count   int
}

func (j *refillJob) Name() string { return "queue-refill" }

func (j *refillJob) Run(ctx context.Context) error {
	cards, err := j.ctrl.svc.AcquireCards(ctx, j.setCode, j.count)

	j.ctrl.mu.Lock()
	defer j.ctrl.mu.Unlock()
	j.ctrl.refillInFlight = false

	if j.ctrl.closed {
		// Session torn down while the refill was in flight.
		return nil
	}
	if j.ctrl.setCode != j.setCode {
		// Filter changed mid-flight; these cards no longer apply.
		return nil
	}
	if err != nil {
		return err
	}

	j.ctrl.queue = append(j.ctrl.queue, cards...)
	if j.ctrl.current == nil && len(j.ctrl.queue) > 0 {
		j.ctrl.current = &j.ctrl.queue[0]
		j.ctrl.queue = j.ctrl.queue[1:]
	}
	return nil
}
