package board

import "time"

// Slot identifies one of the three concurrent mission tracks on a board.
type Slot string

const (
	SlotMain  Slot = "main"
	SlotHunt  Slot = "hunt"
	SlotSkill Slot = "skill"
)

// Slots lists the fixed slot keys in display order. Every board has
// exactly these three; slots are never created or removed dynamically.
var Slots = []Slot{SlotMain, SlotHunt, SlotSkill}

// IsValid reports whether s is one of the three known slot keys.
func (s Slot) IsValid() bool {
	return s == SlotMain || s == SlotHunt || s == SlotSkill
}

// Difficulty represents a mission template's difficulty rating
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// SelectionStatus represents the lifecycle state of a selected mission.
// Status only moves forward: active -> completed -> claimed.
type SelectionStatus string

const (
	StatusActive    SelectionStatus = "active"
	StatusCompleted SelectionStatus = "completed"
	StatusClaimed   SelectionStatus = "claimed"
)

// GameMode codes returned by the external profile lookup.
const (
	GameModeLow    = "LOW"
	GameModeChill  = "CHILL"
	GameModeFlow   = "FLOW"
	GameModeEvolve = "EVOLVE"
)

// gameModeTier maps a game-mode code to its difficulty tier used by
// weekly hunt auto-selection. Unknown or empty codes have no tier.
var gameModeTier = map[string]int{
	GameModeLow:    1,
	GameModeChill:  2,
	GameModeFlow:   3,
	GameModeEvolve: 4,
}

// Reward is the payout attached to a mission template.
type Reward struct {
	XP       int `json:"xp" yaml:"xp"`
	Currency int `json:"currency" yaml:"currency"`
}

// Objective is a single measurable goal inside a mission template.
type Objective struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Target int    `json:"target" yaml:"target"`
	Unit   string `json:"unit" yaml:"unit"`
}

// MissionTemplate is an immutable catalog entry. Templates are defined
// at process start and never mutated afterwards.
type MissionTemplate struct {
	TemplateID        string            `json:"template_id" yaml:"template_id"`
	Slot              Slot              `json:"slot" yaml:"slot"`
	Title             string            `json:"title" yaml:"title"`
	Summary           string            `json:"summary" yaml:"summary"`
	Difficulty        Difficulty        `json:"difficulty" yaml:"difficulty"`
	Reward            Reward            `json:"reward" yaml:"reward"`
	Objectives        []Objective       `json:"objectives" yaml:"objectives"`
	Tags              map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	BoosterMultiplier float64           `json:"booster_multiplier,omitempty" yaml:"booster_multiplier,omitempty"`
}

// Proposal is a mission template cloned into a user's slot with a
// generation-scoped unique id. Regenerating the same template always
// yields a new id, so proposal identity never survives a reroll.
type Proposal struct {
	ID       string          `json:"id"`
	Template MissionTemplate `json:"template"`
}

// Progress tracks advancement of a selected mission.
type Progress struct {
	Current   int       `json:"current"`
	Target    int       `json:"target"`
	Unit      string    `json:"unit"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Claim records a materialized reward for a claimed selection.
type Claim struct {
	ClaimedAt time.Time `json:"claimed_at"`
	Reward    Reward    `json:"reward"`
}

// Selection is the mission a user committed to for a slot.
type Selection struct {
	Mission    Proposal        `json:"mission"`
	Status     SelectionStatus `json:"status"`
	SelectedAt time.Time       `json:"selected_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	Progress   Progress        `json:"progress"`
	Claim      *Claim          `json:"claim,omitempty"`
}

// Reroll tracks the per-slot reroll quota and its rolling cooldown.
type Reroll struct {
	UsedAt      *time.Time `json:"used_at"`
	NextResetAt *time.Time `json:"next_reset_at"`
	Remaining   int        `json:"remaining"`
	Total       int        `json:"total"`
}

// SlotState holds one slot's proposals, current selection and reroll
// quota.
type SlotState struct {
	Slot      Slot       `json:"slot"`
	Proposals []Proposal `json:"proposals"`
	Selected  *Selection `json:"selected"`
	Reroll    Reroll     `json:"reroll"`
}

// Shield is the boss's depleting hit pool.
type Shield struct {
	Current   int       `json:"current"`
	Max       int       `json:"max"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BossPhase2 tracks the unlock and proof submission for the second
// boss phase.
type BossPhase2 struct {
	Ready       bool       `json:"ready"`
	Proof       string     `json:"proof,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

// Boss is the recurring shield encounter driven by hunt-slot booster
// applications.
type Boss struct {
	Phase             int        `json:"phase"`
	Shield            Shield     `json:"shield"`
	LinkedDailyTaskID *int64     `json:"linked_daily_task_id"`
	LinkedAt          *time.Time `json:"linked_at"`
	Phase2            BossPhase2 `json:"phase2"`
}

// Booster holds the XP multiplier state for the hunt slot. It is
// internal to the engine and never included in external snapshots.
// AppliedKeys holds "{date}:{taskId}" idempotency tokens; a key is
// applied to XP at most once, ever.
type Booster struct {
	Multiplier   float64         `json:"multiplier"`
	TargetTaskID *int64          `json:"target_task_id"`
	AppliedKeys  map[string]bool `json:"applied_keys"`
}

// Board is the full per-user mission board. Owned exclusively by the
// engine; external callers only ever see snapshots.
type Board struct {
	UserID      int64               `json:"user_id"`
	SeasonID    string              `json:"season_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Slots       map[Slot]*SlotState `json:"slots"`
	Boss        Boss                `json:"boss"`
	Booster     Booster             `json:"booster"`
}

// CompletionEvent is the input the daily-quest submission flow hands
// to the booster engine after persisting a day's completions.
type CompletionEvent struct {
	Date             string  `json:"date"`
	CompletedTaskIDs []int64 `json:"completed_task_ids"`
	BaseXPDelta      int     `json:"base_xp_delta"`
	XPTotalToday     int     `json:"xp_total_today"`
}

// BoostResult is returned from every booster application, applied or
// not, so the caller can fold it straight into its response payload.
type BoostResult struct {
	XPDelta        int     `json:"xp_delta"`
	XPTotalToday   int     `json:"xp_total_today"`
	BoosterApplied bool    `json:"booster_applied"`
	Multiplier     float64 `json:"multiplier"`
}
