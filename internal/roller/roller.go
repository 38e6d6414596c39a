package roller

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/suaudpierre/deckpick/internal/logger"
	"github.com/suaudpierre/deckpick/internal/models"
)

// Roller errors
var (
	ErrNoEligibleCards = errors.New("no eligible cards to draw from")
	ErrAlreadyRolling  = errors.New("a draw is already in progress")
)

// Notifier receives selector state updates for the presentation layer.
// Updates are delivered one at a time, in the order they were applied,
// ending with exactly one RollFinished per session. Implementations must
// not call back into the Roller.
type Notifier interface {
	RollStarted(eligible int)
	RollTick(card models.Card)
	RollFinished(card models.Card)
}

// Config holds the selector timing constants. The relative behavior
// (strictly growing delay, bounded tick count, hard cap) must be
// preserved when tuning.
type Config struct {
	BaseTickDelay time.Duration // first inter-tick delay
	DelayGrowth   float64       // multiplicative ease-out factor per tick
	DelayStep     time.Duration // additive ease-out term per tick
	TicksPerCard  int           // ticks scale with eligible count
	MinTicks      int
	MaxTicks      int
	SettleDelay   time.Duration // pause on the winner before terminating
	Deadline      time.Duration // hard cap on total session duration
}

// DefaultConfig returns the production timing constants
func DefaultConfig() Config {
	return Config{
		BaseTickDelay: 35 * time.Millisecond,
		DelayGrowth:   1.08,
		DelayStep:     6 * time.Millisecond,
		TicksPerCard:  3,
		MinTicks:      18,
		MaxTicks:      40,
		SettleDelay:   250 * time.Millisecond,
		Deadline:      5 * time.Second,
	}
}

// Roller runs one timed draw session at a time over a caller-supplied
// snapshot of eligible cards. Two timers exist per session: the next-tick
// timer (each tick schedules its successor) and the hard-deadline timer,
// armed once at start. Whichever terminates the session first retires the
// session generation; the loser's callback observes the stale generation
// and no-ops. At the only instant where their order is ambiguous (deadline
// racing the final settle) the displayed card is already the winner, so
// both paths commit the same card.
type Roller struct {
	log    logger.Logger
	notify Notifier
	cfg    Config

	mu sync.Mutex

	// notifyMu serializes Notifier delivery in mutation order. It is
	// acquired while mu is still held (lock handoff), so a slow delivery
	// holds back the next mutation instead of being overtaken by it: no
	// tick can reach the notifier after the terminal commit.
	notifyMu sync.Mutex

	rng *rand.Rand
	gen uint64 // session liveness; stale timer callbacks compare and bail

	active    bool
	snapshot  []models.Card
	winner    models.Card
	displayed *models.Card
	committed *models.Card
	step      int
	steps     int
	delay     time.Duration

	tickTimer     *time.Timer
	deadlineTimer *time.Timer
}

// New creates a Roller with a time-seeded random source
func New(log logger.Logger, notify Notifier, cfg Config) *Roller {
	return NewWithRand(log, notify, cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Roller with the given random source (for tests)
func NewWithRand(log logger.Logger, notify Notifier, cfg Config, rng *rand.Rand) *Roller {
	return &Roller{
		log:    log,
		notify: notify,
		cfg:    cfg,
		rng:    rng,
	}
}

// StartDraw begins a draw over the given eligible snapshot. The winner is
// pre-picked uniformly at random; ticks then display independently random
// cards until the final tick lands on the winner. Returns ErrAlreadyRolling
// if a session is active and ErrNoEligibleCards for an empty snapshot;
// neither changes state.
func (r *Roller) StartDraw(eligible []models.Card) error {
	r.mu.Lock()

	if r.active {
		r.mu.Unlock()
		return ErrAlreadyRolling
	}
	if len(eligible) == 0 {
		r.mu.Unlock()
		return ErrNoEligibleCards
	}

	// Immutable snapshot: store mutations mid-draw must not affect
	// the in-flight session.
	r.snapshot = make([]models.Card, len(eligible))
	copy(r.snapshot, eligible)

	r.winner = r.snapshot[r.rng.Intn(len(r.snapshot))]
	r.steps = clamp(len(r.snapshot)*r.cfg.TicksPerCard, r.cfg.MinTicks, r.cfg.MaxTicks)
	r.step = 0
	r.delay = r.cfg.BaseTickDelay
	r.displayed = nil
	r.committed = nil
	r.active = true
	r.gen++

	gen := r.gen
	n := len(r.snapshot)
	steps := r.steps
	r.tickTimer = time.AfterFunc(r.delay, func() { r.tick(gen) })
	r.deadlineTimer = time.AfterFunc(r.cfg.Deadline, func() { r.expire(gen) })

	r.notifyMu.Lock()
	r.mu.Unlock()

	r.log.Debug("Draw started", "eligible", n, "steps", steps)
	r.notify.RollStarted(n)
	r.notifyMu.Unlock()
	return nil
}

// tick advances the animation by one frame
func (r *Roller) tick(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || !r.active {
		r.mu.Unlock()
		return // stale timer from a terminated session
	}

	r.step++

	var shown models.Card
	if r.step < r.steps {
		shown = r.snapshot[r.rng.Intn(len(r.snapshot))]
		r.displayed = &shown

		// Ease-out: the delay strictly increases, slowing the spin
		r.delay = time.Duration(float64(r.delay)*r.cfg.DelayGrowth) + r.cfg.DelayStep
		r.tickTimer = time.AfterFunc(r.delay, func() { r.tick(gen) })
	} else {
		// Final tick always lands on the pre-picked winner
		shown = r.winner
		r.displayed = &shown
		r.tickTimer = time.AfterFunc(r.cfg.SettleDelay, func() { r.finish(gen) })
	}
	r.notifyMu.Lock()
	r.mu.Unlock()

	r.notify.RollTick(shown)
	r.notifyMu.Unlock()
}

// finish terminates the session by natural completion, committing the
// pre-picked winner
func (r *Roller) finish(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || !r.active {
		r.mu.Unlock()
		return
	}

	winner := r.winner
	r.committed = &winner
	r.displayed = &winner
	r.terminateLocked()
	r.notifyMu.Lock()
	r.mu.Unlock()

	r.log.Info("Draw finished", "card", winner.Name, "card_id", winner.ID)
	r.notify.RollFinished(winner)
	r.notifyMu.Unlock()
}

// expire terminates the session at the hard deadline, committing whatever
// is displayed at that instant
func (r *Roller) expire(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || !r.active {
		r.mu.Unlock()
		return
	}

	pick := r.winner
	if r.displayed != nil {
		pick = *r.displayed
	}
	r.committed = &pick
	r.displayed = &pick
	r.terminateLocked()
	r.notifyMu.Lock()
	r.mu.Unlock()

	r.log.Info("Draw hit deadline", "card", pick.Name, "card_id", pick.ID)
	r.notify.RollFinished(pick)
	r.notifyMu.Unlock()
}

// terminateLocked retires the session. Callers must hold r.mu.
func (r *Roller) terminateLocked() {
	r.active = false
	r.gen++ // any in-flight callback for this session is now stale
	if r.tickTimer != nil {
		r.tickTimer.Stop()
	}
	if r.deadlineTimer != nil {
		r.deadlineTimer.Stop()
	}
}

// Cancel stops any in-progress session without committing a pick. Intended
// for teardown, so pending timers never fire against destroyed state.
func (r *Roller) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.terminateLocked()
	r.displayed = nil
}

// Rolling reports whether a session is active
func (r *Roller) Rolling() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// State returns a copy of the externally visible selector state
func (r *Roller) State() models.RollState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := models.RollState{Active: r.active}
	if r.displayed != nil {
		card := *r.displayed
		state.Displayed = &card
	}
	if r.committed != nil {
		card := *r.committed
		state.Committed = &card
	}
	return state
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
