package board

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Repo is the persistence boundary for boards. LoadBoard returns
// (nil, nil) when no board exists for the user yet.
type Repo interface {
	LoadBoard(userID int64) (*Board, error)
	SaveBoard(b *Board) error
	ListBoardUserIDs() ([]int64, error)
}

// GameModeLookup resolves a user's game-mode code (LOW|CHILL|FLOW|EVOLVE).
// An empty string means no mode is set. The engine treats lookup
// failures as "no mode" rather than aborting.
type GameModeLookup interface {
	GameMode(userID int64) (string, error)
}

// Notifier receives engine events. Implementations must be best-effort;
// the engine ignores their failures.
type Notifier interface {
	MissionCompleted(userID int64, slot Slot, title string)
	BossPhase2Ready(userID int64)
}

// Options tune engine behavior. Zero values fall back to defaults.
type Options struct {
	// ProposalsPerSlot caps how many proposals a generation produces.
	// Zero or negative means "all templates for the slot".
	ProposalsPerSlot int
	// RerollTotal is the per-slot reroll quota per cooldown window.
	RerollTotal int
	// ShieldMax is the boss shield size after creation or reset.
	ShieldMax int
	// DefaultBoosterMultiplier applies when a hunt mission carries no
	// multiplier of its own.
	DefaultBoosterMultiplier float64
}

const (
	defaultRerollTotal       = 1
	defaultShieldMax         = 5
	defaultBoosterMultiplier = 1.5

	rerollCooldown  = 7 * 24 * time.Hour
	selectionWindow = 7 * 24 * time.Hour
	// Skill missions run on a two-week cycle.
	skillSelectionWindow = 14 * 24 * time.Hour
)

func (o Options) withDefaults() Options {
	if o.RerollTotal <= 0 {
		o.RerollTotal = defaultRerollTotal
	}
	if o.ShieldMax <= 0 {
		o.ShieldMax = defaultShieldMax
	}
	if o.DefaultBoosterMultiplier <= 1 {
		o.DefaultBoosterMultiplier = defaultBoosterMultiplier
	}
	return o
}

// Engine owns all mission boards. All mutating operations for a given
// user are serialized behind a per-user lock; operations for different
// users run independently.
type Engine struct {
	repo    Repo
	catalog *Catalog
	modes   GameModeLookup
	notify  Notifier
	opts    Options

	// now and rng are injectable for tests.
	now func() time.Time
	rng *rand.Rand

	mu     sync.Mutex
	locks  map[int64]*sync.Mutex
	nextID int64
}

// NewEngine creates an engine over the given repo and catalog. modes
// and notify may be nil.
func NewEngine(repo Repo, catalog *Catalog, modes GameModeLookup, notify Notifier, opts Options) *Engine {
	return &Engine{
		repo:    repo,
		catalog: catalog,
		modes:   modes,
		notify:  notify,
		opts:    opts.withDefaults(),
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:   make(map[int64]*sync.Mutex),
	}
}

// SetClock overrides the engine's time source. Intended for tests.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// SetRand overrides the engine's random source. Intended for tests.
func (e *Engine) SetRand(rng *rand.Rand) { e.rng = rng }

func (e *Engine) userLock(userID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lk, ok := e.locks[userID]
	if !ok {
		lk = &sync.Mutex{}
		e.locks[userID] = lk
	}
	return lk
}

// withBoard runs fn against the user's board under the user lock and
// persists the board afterwards. fn returning an error skips the save.
func (e *Engine) withBoard(userID int64, fn func(b *Board) error) (*Board, error) {
	lk := e.userLock(userID)
	lk.Lock()
	defer lk.Unlock()

	b, err := e.ensure(userID)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if err := e.repo.SaveBoard(b); err != nil {
		return nil, fmt.Errorf("save board for user %d: %w", userID, err)
	}
	return b, nil
}

// ensure is the single construction path for boards: it loads the
// user's board or creates and persists a default one. Callers must
// hold the user lock.
func (e *Engine) ensure(userID int64) (*Board, error) {
	b, err := e.repo.LoadBoard(userID)
	if err != nil {
		return nil, fmt.Errorf("load board for user %d: %w", userID, err)
	}
	if b != nil {
		return b, nil
	}

	now := e.now()
	b = &Board{
		UserID:      userID,
		SeasonID:    seasonID(now),
		GeneratedAt: now,
		Slots:       make(map[Slot]*SlotState, len(Slots)),
		Boss: Boss{
			Phase:  1,
			Shield: Shield{Current: e.opts.ShieldMax, Max: e.opts.ShieldMax, UpdatedAt: now},
		},
		Booster: Booster{
			Multiplier:  e.opts.DefaultBoosterMultiplier,
			AppliedKeys: make(map[string]bool),
		},
	}
	for _, slot := range Slots {
		b.Slots[slot] = &SlotState{
			Slot:      slot,
			Proposals: e.generateProposals(slot, userID),
			Reroll:    Reroll{Remaining: e.opts.RerollTotal, Total: e.opts.RerollTotal},
		}
	}
	if err := e.repo.SaveBoard(b); err != nil {
		return nil, fmt.Errorf("create board for user %d: %w", userID, err)
	}
	return b, nil
}

// Board returns the user's board snapshot, creating a default board on
// first access. Reroll windows are refreshed before returning so quota
// never appears permanently exhausted.
func (e *Engine) Board(userID int64) (*BoardSnapshot, error) {
	b, err := e.withBoard(userID, func(b *Board) error {
		e.refreshRerolls(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}

// UserIDs lists users with an existing board, for maintenance sweeps.
func (e *Engine) UserIDs() ([]int64, error) {
	return e.repo.ListBoardUserIDs()
}

// seasonID derives the season label from the ISO week of creation.
func seasonID(now time.Time) string {
	year, week := now.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
