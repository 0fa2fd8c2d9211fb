package board

import "errors"

// Validation and state errors returned by the engine. All are
// caller-correctable; none are process-fatal. Callers should not retry
// without changing the request. Errors are wrapped with slot/mission
// context at the call site via fmt.Errorf("%w: ...").
var (
	// ErrMissionNotFound means a selection referenced a proposal id
	// absent from the slot's current candidate list.
	ErrMissionNotFound = errors.New("mission not found")

	// ErrRerollExhausted means a reroll was attempted with no remaining
	// quota before the cooldown window elapsed.
	ErrRerollExhausted = errors.New("reroll exhausted")

	// ErrMissionMismatch means the referenced mission id does not match
	// the slot's active selection.
	ErrMissionMismatch = errors.New("mission mismatch")

	// ErrBossNotReady means phase-2 registration was attempted before
	// the shield reached zero.
	ErrBossNotReady = errors.New("boss not ready")

	// ErrMissionNotActive means a claim referenced a mission no slot
	// currently holds.
	ErrMissionNotActive = errors.New("mission not active")

	// ErrClaimNotReady means a claim was attempted on a selection that
	// is not yet completed.
	ErrClaimNotReady = errors.New("claim not ready")

	// ErrUnknownSlot means the request named a slot key outside
	// main/hunt/skill.
	ErrUnknownSlot = errors.New("unknown slot")
)
