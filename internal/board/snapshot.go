package board

import "time"

// Snapshot types are the external read model: every public operation
// returns one of these instead of engine-owned state, built by
// explicit copy so callers can never corrupt a live board. Timestamps
// marshal as RFC 3339 strings; unset optional timestamps marshal as
// null. The booster ledger is internal and deliberately absent.

type BoardSnapshot struct {
	UserID      int64          `json:"user_id"`
	SeasonID    string         `json:"season_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Slots       []SlotSnapshot `json:"slots"`
	Boss        BossSnapshot   `json:"boss"`
}

type SlotSnapshot struct {
	Slot      Slot               `json:"slot"`
	Proposals []ProposalSnapshot `json:"proposals"`
	Selected  *SelectionSnapshot `json:"selected"`
	Reroll    RerollSnapshot     `json:"reroll"`
}

type ProposalSnapshot struct {
	ID                string            `json:"id"`
	TemplateID        string            `json:"template_id"`
	Slot              Slot              `json:"slot"`
	Title             string            `json:"title"`
	Summary           string            `json:"summary"`
	Difficulty        Difficulty        `json:"difficulty"`
	Reward            Reward            `json:"reward"`
	Objectives        []Objective       `json:"objectives"`
	Tags              map[string]string `json:"tags,omitempty"`
	BoosterMultiplier float64           `json:"booster_multiplier,omitempty"`
}

type SelectionSnapshot struct {
	Mission    ProposalSnapshot `json:"mission"`
	Status     SelectionStatus  `json:"status"`
	SelectedAt time.Time        `json:"selected_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
	Progress   Progress         `json:"progress"`
	Claim      *Claim           `json:"claim,omitempty"`
}

type RerollSnapshot struct {
	UsedAt      *time.Time `json:"used_at"`
	NextResetAt *time.Time `json:"next_reset_at"`
	Remaining   int        `json:"remaining"`
	Total       int        `json:"total"`
}

type BossSnapshot struct {
	Phase             int        `json:"phase"`
	Shield            Shield     `json:"shield"`
	LinkedDailyTaskID *int64     `json:"linked_daily_task_id"`
	LinkedAt          *time.Time `json:"linked_at"`
	Phase2            BossPhase2 `json:"phase2"`
}

func snapshotBoard(b *Board) *BoardSnapshot {
	snap := &BoardSnapshot{
		UserID:      b.UserID,
		SeasonID:    b.SeasonID,
		GeneratedAt: b.GeneratedAt,
		Slots:       make([]SlotSnapshot, 0, len(Slots)),
		Boss:        *snapshotBoss(&b.Boss),
	}
	for _, slot := range Slots {
		snap.Slots = append(snap.Slots, snapshotSlot(b.Slots[slot]))
	}
	return snap
}

func snapshotSlot(ss *SlotState) SlotSnapshot {
	out := SlotSnapshot{
		Slot:      ss.Slot,
		Proposals: make([]ProposalSnapshot, 0, len(ss.Proposals)),
		Reroll: RerollSnapshot{
			UsedAt:      copyTime(ss.Reroll.UsedAt),
			NextResetAt: copyTime(ss.Reroll.NextResetAt),
			Remaining:   ss.Reroll.Remaining,
			Total:       ss.Reroll.Total,
		},
	}
	for _, p := range ss.Proposals {
		out.Proposals = append(out.Proposals, snapshotProposal(p))
	}
	if ss.Selected != nil {
		out.Selected = snapshotSelection(ss.Selected)
	}
	return out
}

func snapshotSelection(sel *Selection) *SelectionSnapshot {
	out := &SelectionSnapshot{
		Mission:    snapshotProposal(sel.Mission),
		Status:     sel.Status,
		SelectedAt: sel.SelectedAt,
		UpdatedAt:  sel.UpdatedAt,
		ExpiresAt:  sel.ExpiresAt,
		Progress:   sel.Progress,
	}
	if sel.Claim != nil {
		c := *sel.Claim
		out.Claim = &c
	}
	return out
}

func snapshotProposal(p Proposal) ProposalSnapshot {
	t := p.Template
	out := ProposalSnapshot{
		ID:                p.ID,
		TemplateID:        t.TemplateID,
		Slot:              t.Slot,
		Title:             t.Title,
		Summary:           t.Summary,
		Difficulty:        t.Difficulty,
		Reward:            t.Reward,
		Objectives:        make([]Objective, len(t.Objectives)),
		BoosterMultiplier: t.BoosterMultiplier,
	}
	copy(out.Objectives, t.Objectives)
	if len(t.Tags) > 0 {
		out.Tags = make(map[string]string, len(t.Tags))
		for k, v := range t.Tags {
			out.Tags[k] = v
		}
	}
	return out
}

func snapshotBoss(boss *Boss) *BossSnapshot {
	var linked *int64
	if boss.LinkedDailyTaskID != nil {
		v := *boss.LinkedDailyTaskID
		linked = &v
	}
	return &BossSnapshot{
		Phase:             boss.Phase,
		Shield:            boss.Shield,
		LinkedDailyTaskID: linked,
		LinkedAt:          copyTime(boss.LinkedAt),
		Phase2: BossPhase2{
			Ready:       boss.Phase2.Ready,
			Proof:       boss.Phase2.Proof,
			SubmittedAt: copyTime(boss.Phase2.SubmittedAt),
		},
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
