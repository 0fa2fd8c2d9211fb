package board

import "fmt"

// generateProposals clones catalog templates for a slot into fresh
// user-scoped proposals. Identity is generation-scoped: regenerating
// the same template always yields a new proposal id, so stale ids from
// before a reroll can never be selected.
func (e *Engine) generateProposals(slot Slot, userID int64) []Proposal {
	templates := e.catalog.TemplatesFor(slot)

	// Shuffle a copy so catalog order is not leaked to every user.
	shuffled := make([]MissionTemplate, len(templates))
	copy(shuffled, templates)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	count := e.opts.ProposalsPerSlot
	if count <= 0 || count > len(shuffled) {
		count = len(shuffled)
	}

	proposals := make([]Proposal, 0, count)
	for _, t := range shuffled[:count] {
		proposals = append(proposals, Proposal{
			ID:       e.newProposalID(t.TemplateID, userID),
			Template: t,
		})
	}
	return proposals
}

// newProposalID builds an id unique per (template, user, generation
// event). The timestamp guards against counter reuse across restarts.
func (e *Engine) newProposalID(templateID string, userID int64) string {
	e.mu.Lock()
	e.nextID++
	seq := e.nextID
	e.mu.Unlock()
	return fmt.Sprintf("%s-u%d-%d-%d", templateID, userID, e.now().UnixNano(), seq)
}

// regenerateIfEmpty refills a slot's proposal list only when it is
// empty, so repeated weekly runs never churn pending candidates.
func (e *Engine) regenerateIfEmpty(b *Board, slot Slot) {
	ss := b.Slots[slot]
	if len(ss.Proposals) > 0 {
		return
	}
	ss.Proposals = e.generateProposals(slot, b.UserID)
}
