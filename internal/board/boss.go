package board

import "fmt"

// RegisterBossPhase2 submits the phase-2 proof for a defeated shield.
// Repeat submissions after a proof is recorded return the current boss
// state unchanged rather than erroring, so retried requests converge.
func (e *Engine) RegisterBossPhase2(userID int64, missionID, proof string) (*BossSnapshot, error) {
	b, err := e.withBoard(userID, func(b *Board) error {
		hunt := b.Slots[SlotHunt]
		if hunt.Selected == nil || hunt.Selected.Mission.ID != missionID {
			return fmt.Errorf("%w: mission %s is not the active hunt selection for user %d", ErrMissionMismatch, missionID, userID)
		}
		if !b.Boss.Phase2.Ready {
			return fmt.Errorf("%w: shield at %d/%d for user %d", ErrBossNotReady, b.Boss.Shield.Current, b.Boss.Shield.Max, userID)
		}
		if b.Boss.Phase2.SubmittedAt != nil {
			// Already submitted; idempotent no-op.
			return nil
		}
		now := e.now()
		b.Boss.Phase2.Proof = proof
		b.Boss.Phase2.SubmittedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoss(&b.Boss), nil
}

// RunBossMaintenance recycles a defeated boss: only when the shield is
// down and a phase-2 proof was submitted, the encounter resets to
// phase 1 with a full shield, the daily-task link is cleared, and the
// hunt slot gets fresh proposals. Intended for an external periodic
// trigger, not user action; any other boss state is left untouched.
func (e *Engine) RunBossMaintenance(userID int64) (*BoardSnapshot, error) {
	b, err := e.withBoard(userID, func(b *Board) error {
		if b.Boss.Shield.Current != 0 || b.Boss.Phase2.SubmittedAt == nil {
			return nil
		}
		now := e.now()
		b.Boss.Phase = 1
		b.Boss.Shield = Shield{Current: b.Boss.Shield.Max, Max: b.Boss.Shield.Max, UpdatedAt: now}
		b.Boss.Phase2 = BossPhase2{}
		b.Boss.LinkedDailyTaskID = nil
		b.Boss.LinkedAt = nil
		b.Booster.TargetTaskID = nil
		b.Slots[SlotHunt].Proposals = e.generateProposals(SlotHunt, userID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotBoard(b), nil
}
