// ABOUTME: Three-way prompt partition for the training board
// ABOUTME: Splits a prompt list into active, draft, and weak columns

package console

import (
	"sort"

	"github.com/2389/aira-console/internal/aira"
)

// promptPartition groups prompts by lifecycle status. Archived prompts are
// history, not work items, so they are left out of the board.
type promptPartition struct {
	Active []aira.Prompt
	Drafts []aira.Prompt
	Weak   []aira.Prompt
}

// partitionPrompts splits prompts into the board's three columns, each sorted
// by FSM state then language for a stable layout.
func partitionPrompts(prompts []aira.Prompt) promptPartition {
	var p promptPartition
	for _, prompt := range prompts {
		switch prompt.Status {
		case aira.PromptActive:
			p.Active = append(p.Active, prompt)
		case aira.PromptDraft:
			p.Drafts = append(p.Drafts, prompt)
		case aira.PromptWeak:
			p.Weak = append(p.Weak, prompt)
		}
	}
	sortPrompts(p.Active)
	sortPrompts(p.Drafts)
	sortPrompts(p.Weak)
	return p
}

func sortPrompts(prompts []aira.Prompt) {
	sort.Slice(prompts, func(i, j int) bool {
		if prompts[i].FSMState != prompts[j].FSMState {
			return prompts[i].FSMState < prompts[j].FSMState
		}
		if prompts[i].Language != prompts[j].Language {
			return prompts[i].Language < prompts[j].Language
		}
		return prompts[i].Version > prompts[j].Version
	})
}
