package board

import (
	"fmt"
	"log"
)

// SelectMission commits one of a slot's current proposals as the
// user's active mission. An existing selection is overwritten
// unconditionally. Selecting into the hunt slot resets the booster
// state for the new mission.
func (e *Engine) SelectMission(userID int64, slot Slot, proposalID string) (*BoardSnapshot, error) {
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	b, err := e.withBoard(userID, func(b *Board) error {
		e.refreshRerolls(b)
		ss := b.Slots[slot]
		idx := -1
		for i, p := range ss.Proposals {
			if p.ID == proposalID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: proposal %s not offered in slot %s for user %d", ErrMissionNotFound, proposalID, slot, userID)
		}
		e.commitSelection(b, slot, idx, 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}

// Reroll discards a slot's current proposals for a fresh generation,
// consuming the slot's reroll quota and starting the cooldown window.
func (e *Engine) Reroll(userID int64, slot Slot) (*BoardSnapshot, error) {
	if !slot.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	b, err := e.withBoard(userID, func(b *Board) error {
		e.refreshRerolls(b)
		ss := b.Slots[slot]
		if ss.Reroll.Remaining <= 0 {
			return fmt.Errorf("%w: slot %s for user %d resets at %v", ErrRerollExhausted, slot, userID, ss.Reroll.NextResetAt)
		}
		now := e.now()
		reset := now.Add(rerollCooldown)
		ss.Proposals = e.generateProposals(slot, userID)
		ss.Reroll.Remaining--
		ss.Reroll.UsedAt = &now
		ss.Reroll.NextResetAt = &reset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}

// refreshRerolls resets any exhausted reroll quota whose cooldown has
// elapsed. An unset reset time counts as elapsed (bootstrap case).
// Runs before every read and every reroll attempt so quota never
// appears permanently exhausted.
func (e *Engine) refreshRerolls(b *Board) {
	now := e.now()
	for _, slot := range Slots {
		r := &b.Slots[slot].Reroll
		if r.Remaining > 0 {
			continue
		}
		if r.NextResetAt != nil && now.Before(*r.NextResetAt) {
			continue
		}
		r.Remaining = r.Total
		r.UsedAt = nil
		r.NextResetAt = nil
	}
}

// RunWeeklyAutoSelection fills every slot that lacks a selection,
// regenerating proposals first if the slot is empty. Slots with an
// existing selection are left untouched, so repeated runs are no-ops.
//
// The game-mode lookup is best-effort: on failure the slot policies
// behave as if no mode were set.
func (e *Engine) RunWeeklyAutoSelection(userID int64) (*BoardSnapshot, error) {
	mode := ""
	if e.modes != nil {
		m, err := e.modes.GameMode(userID)
		if err != nil {
			log.Printf("game-mode lookup failed for user %d, auto-selecting without mode: %v", userID, err)
		} else {
			mode = m
		}
	}

	b, err := e.withBoard(userID, func(b *Board) error {
		e.refreshRerolls(b)
		for _, slot := range Slots {
			ss := b.Slots[slot]
			if ss.Selected != nil {
				continue
			}
			e.regenerateIfEmpty(b, slot)
			if len(ss.Proposals) == 0 {
				continue
			}
			idx, targetOverride := autoPick(slot, ss.Proposals, mode)
			e.commitSelection(b, slot, idx, targetOverride)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}

// autoPick applies the per-slot weekly selection policy and returns
// the chosen proposal index plus an optional progress-target override.
func autoPick(slot Slot, proposals []Proposal, mode string) (idx, targetOverride int) {
	switch slot {
	case SlotHunt:
		// Hunt picks by game-mode difficulty tier and trains progress on
		// that tier. Without a mode the first proposal wins untouched.
		tier := gameModeTier[mode]
		if tier == 0 {
			return 0, 0
		}
		idx = tier - 1
		if idx >= len(proposals) {
			idx = len(proposals) - 1
		}
		return idx, tier
	case SlotMain:
		if mode == GameModeEvolve {
			for i, p := range proposals {
				if p.Template.Difficulty == DifficultyHigh {
					return i, 0
				}
			}
		}
		return 0, 0
	default:
		return 0, 0
	}
}

// commitSelection replaces a slot's selection with the proposal at
// idx, consuming it from the proposal list. targetOverride > 0
// replaces the target taken from the mission's first objective.
// Callers must hold the user lock.
func (e *Engine) commitSelection(b *Board, slot Slot, idx, targetOverride int) *Selection {
	now := e.now()
	ss := b.Slots[slot]
	p := ss.Proposals[idx]
	ss.Proposals = append(ss.Proposals[:idx], ss.Proposals[idx+1:]...)

	target := 1
	unit := ""
	if len(p.Template.Objectives) > 0 {
		target = p.Template.Objectives[0].Target
		unit = p.Template.Objectives[0].Unit
	}
	if target < 1 {
		target = 1
	}
	if targetOverride > 0 {
		target = targetOverride
	}

	window := selectionWindow
	if slot == SlotSkill {
		window = skillSelectionWindow
	}

	sel := &Selection{
		Mission:    p,
		Status:     StatusActive,
		SelectedAt: now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(window),
		Progress:   Progress{Current: 0, Target: target, Unit: unit, UpdatedAt: now},
	}
	ss.Selected = sel

	if slot == SlotHunt {
		multiplier := p.Template.BoosterMultiplier
		if multiplier <= 1 {
			multiplier = e.opts.DefaultBoosterMultiplier
		}
		b.Booster = Booster{
			Multiplier:  multiplier,
			AppliedKeys: make(map[string]bool),
		}
	}
	return sel
}
