package board

import (
	"fmt"
	"math"
)

// LinkDailyTask ties a daily task to the active hunt mission so its
// completions feed the booster and the boss shield. Re-linking clears
// previously applied booster keys and restarts the boss encounter at
// phase 1.
func (e *Engine) LinkDailyTask(userID int64, missionID string, dailyTaskID int64) (*BoardSnapshot, error) {
	b, err := e.withBoard(userID, func(b *Board) error {
		hunt := b.Slots[SlotHunt]
		if hunt.Selected == nil || hunt.Selected.Mission.ID != missionID {
			return fmt.Errorf("%w: mission %s is not the active hunt selection for user %d", ErrMissionMismatch, missionID, userID)
		}
		now := e.now()
		b.Booster.TargetTaskID = &dailyTaskID
		b.Booster.AppliedKeys = make(map[string]bool)
		b.Boss.LinkedDailyTaskID = &dailyTaskID
		b.Boss.LinkedAt = &now
		b.Boss.Phase = 1
		b.Boss.Phase2 = BossPhase2{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}

// ApplyHuntBoost multiplies the XP of a daily submission when the
// linked task was completed that day. The "{date}:{taskId}" key set
// guarantees at-most-once application per calendar day per linked
// task, so upstream retries and replays converge on the same totals.
//
// When the booster does not apply, the inputs are returned unchanged
// with BoosterApplied=false; that is not an error.
func (e *Engine) ApplyHuntBoost(userID int64, ev CompletionEvent) (*BoostResult, error) {
	res := &BoostResult{
		XPDelta:      ev.BaseXPDelta,
		XPTotalToday: ev.XPTotalToday,
	}

	_, err := e.withBoard(userID, func(b *Board) error {
		hunt := b.Slots[SlotHunt]
		sel := hunt.Selected
		if sel == nil || sel.Status == StatusClaimed {
			return nil
		}
		taskID := b.Booster.TargetTaskID
		if taskID == nil {
			return nil
		}
		completed := false
		for _, id := range ev.CompletedTaskIDs {
			if id == *taskID {
				completed = true
				break
			}
		}
		if !completed {
			return nil
		}
		key := fmt.Sprintf("%s:%d", ev.Date, *taskID)
		if b.Booster.AppliedKeys[key] {
			return nil
		}
		b.Booster.AppliedKeys[key] = true

		bonus := boostBonus(ev.BaseXPDelta, b.Booster.Multiplier, sel.Mission.Template.Reward)
		res.XPDelta = ev.BaseXPDelta + bonus
		res.XPTotalToday = ev.XPTotalToday + bonus
		res.BoosterApplied = true
		res.Multiplier = b.Booster.Multiplier

		now := e.now()
		if sel.Progress.Current < sel.Progress.Target {
			sel.Progress.Current++
			sel.Progress.UpdatedAt = now
			sel.UpdatedAt = now
		}
		if sel.Progress.Current >= sel.Progress.Target && sel.Status == StatusActive {
			sel.Status = StatusCompleted
			sel.UpdatedAt = now
			if e.notify != nil {
				e.notify.MissionCompleted(userID, SlotHunt, sel.Mission.Template.Title)
			}
		}

		if b.Boss.Shield.Current > 0 {
			b.Boss.Shield.Current--
			b.Boss.Shield.UpdatedAt = now
			if b.Boss.Shield.Current == 0 {
				b.Boss.Phase = 2
				b.Boss.Phase2.Ready = true
				if e.notify != nil {
					e.notify.BossPhase2Ready(userID)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// boostBonus computes the booster's XP bonus. A computed bonus that is
// non-positive or non-finite falls back to a nominal cut of the
// mission reward, so zero-XP completions still grant something.
func boostBonus(baseXP int, multiplier float64, reward Reward) int {
	raw := float64(baseXP) * (multiplier - 1)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return fallbackBonus(reward)
	}
	bonus := int(math.Round(raw))
	if bonus <= 0 {
		return fallbackBonus(reward)
	}
	return bonus
}

func fallbackBonus(reward Reward) int {
	fb := int(math.Round(float64(reward.XP) * 0.1))
	if fb < 10 {
		fb = 10
	}
	return fb
}
