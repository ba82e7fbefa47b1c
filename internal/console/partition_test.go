// ABOUTME: Tests for the three-way prompt partition behind the training board.
// ABOUTME: Covers status routing, archived exclusion, and column ordering.

package console

import (
	"testing"

	"github.com/2389/aira-console/internal/aira"
)

func TestPartitionPrompts_SplitsByStatus(t *testing.T) {
	prompts := []aira.Prompt{
		{ID: "a", Status: aira.PromptActive},
		{ID: "b", Status: aira.PromptDraft},
		{ID: "c", Status: aira.PromptWeak},
		{ID: "d", Status: aira.PromptActive},
	}

	p := partitionPrompts(prompts)

	if len(p.Active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(p.Active))
	}
	if len(p.Drafts) != 1 || p.Drafts[0].ID != "b" {
		t.Fatalf("expected draft b, got %+v", p.Drafts)
	}
	if len(p.Weak) != 1 || p.Weak[0].ID != "c" {
		t.Fatalf("expected weak c, got %+v", p.Weak)
	}
}

func TestPartitionPrompts_SkipsArchived(t *testing.T) {
	prompts := []aira.Prompt{
		{ID: "a", Status: aira.PromptArchived},
		{ID: "b", Status: aira.PromptActive},
	}

	p := partitionPrompts(prompts)

	if len(p.Active) != 1 {
		t.Fatalf("expected 1 active, got %d", len(p.Active))
	}
	total := len(p.Active) + len(p.Drafts) + len(p.Weak)
	if total != 1 {
		t.Fatalf("archived prompt leaked into the board: %d items", total)
	}
}

func TestPartitionPrompts_OrdersByStateLanguageVersion(t *testing.T) {
	prompts := []aira.Prompt{
		{ID: "1", Status: aira.PromptActive, FSMState: "greeting", Language: "es", Version: 1},
		{ID: "2", Status: aira.PromptActive, FSMState: "closing", Language: "en", Version: 4},
		{ID: "3", Status: aira.PromptActive, FSMState: "greeting", Language: "en", Version: 2},
		{ID: "4", Status: aira.PromptActive, FSMState: "greeting", Language: "en", Version: 5},
	}

	p := partitionPrompts(prompts)

	want := []string{"2", "4", "3", "1"}
	for i, id := range want {
		if p.Active[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, p.Active[i].ID)
		}
	}
}

func TestPartitionPrompts_Empty(t *testing.T) {
	p := partitionPrompts(nil)

	if len(p.Active)+len(p.Drafts)+len(p.Weak) != 0 {
		t.Fatal("empty input must produce an empty board")
	}
}
