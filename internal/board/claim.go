package board

import "fmt"

// ClaimMissionReward moves a completed selection to claimed and
// materializes its reward. Claiming an already-claimed mission returns
// the existing claim unchanged, including its original timestamp.
func (e *Engine) ClaimMissionReward(userID int64, missionID string) (*SelectionSnapshot, error) {
	var claimed *Selection
	_, err := e.withBoard(userID, func(b *Board) error {
		var sel *Selection
		for _, slot := range Slots {
			if s := b.Slots[slot].Selected; s != nil && s.Mission.ID == missionID {
				sel = s
				break
			}
		}
		if sel == nil {
			return fmt.Errorf("%w: mission %s has no active selection for user %d", ErrMissionNotActive, missionID, userID)
		}
		switch sel.Status {
		case StatusClaimed:
			// Idempotent: keep the original claim stamp.
		case StatusCompleted:
			now := e.now()
			sel.Status = StatusClaimed
			sel.UpdatedAt = now
			sel.Claim = &Claim{ClaimedAt: now, Reward: sel.Mission.Template.Reward}
		default:
			return fmt.Errorf("%w: mission %s is %s for user %d", ErrClaimNotReady, missionID, sel.Status, userID)
		}
		claimed = sel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshotSelection(claimed), nil
}
