// ABOUTME: Prompt training handlers: draft editing, publishing, and weak-marking
// ABOUTME: Every mutation refetches the full prompt list before re-rendering the board

package console

import (
	"context"
	"net/http"
	"strings"

	"github.com/2389/aira-console/internal/aira"
)

// handlePromptsPage renders the prompt training page.
func (c *Console) handlePromptsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	board := c.buildPromptsBoard(r.Context(), q.Get("fsm_state"), q.Get("language"), "", "")

	// Filter changes arrive via htmx and only need the board.
	if isHTMX(r) {
		c.renderPromptsBoard(w, board)
		return
	}

	c.renderPromptsPage(w, promptsPageData{
		Title:     "Prompt Training",
		ActiveNav: "prompts",
		Board:     board,
	})
}

// handlePromptDraft saves a draft: a new one when prompt_id is absent, an
// edit to an existing draft otherwise.
func (c *Console) handlePromptDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), "", "", "", "Invalid form data"))
		return
	}

	promptID := r.FormValue("prompt_id")
	state := r.FormValue("fsm_state")
	language := r.FormValue("language")
	text := strings.TrimSpace(r.FormValue("text"))
	notes := r.FormValue("notes")

	boardState := r.FormValue("state_filter")
	boardLanguage := r.FormValue("language_filter")

	if text == "" {
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Prompt text is required."))
		return
	}

	if promptID == "" {
		if state == "" || language == "" {
			c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "FSM state and language are required for a new draft."))
			return
		}
		_, err := c.backend.CreatePrompt(r.Context(), aira.CreatePromptRequest{
			FSMState: state,
			Language: language,
			Text:     text,
			Notes:    notes,
		})
		if err != nil {
			c.logger.Error("failed to create prompt draft", "fsm_state", state, "language", language, "error", err)
			c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Could not save draft: "+err.Error()))
			return
		}
		c.logger.Info("prompt draft created", "fsm_state", state, "language", language)
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "Draft saved.", ""))
		return
	}

	_, err := c.backend.UpdatePrompt(r.Context(), promptID, aira.UpdatePromptRequest{
		Text:  text,
		Notes: notes,
	})
	if err != nil {
		c.logger.Error("failed to update prompt draft", "prompt_id", promptID, "error", err)
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Could not save draft: "+err.Error()))
		return
	}
	c.logger.Info("prompt draft updated", "prompt_id", promptID)
	c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "Draft saved.", ""))
}

// handlePromptPublish promotes a draft to active.
func (c *Console) handlePromptPublish(w http.ResponseWriter, r *http.Request) {
	promptID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), "", "", "", "Invalid form data"))
		return
	}
	boardState := r.FormValue("state_filter")
	boardLanguage := r.FormValue("language_filter")

	if err := c.backend.PublishPrompt(r.Context(), promptID); err != nil {
		c.logger.Error("failed to publish prompt", "prompt_id", promptID, "error", err)
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Could not publish: "+err.Error()))
		return
	}

	c.logger.Info("prompt published", "prompt_id", promptID)
	c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "Prompt published.", ""))
}

// handlePromptWeak marks a prompt weak, supplying replacement draft text.
// The backend performs both changes in a single call.
func (c *Console) handlePromptWeak(w http.ResponseWriter, r *http.Request) {
	promptID := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), "", "", "", "Invalid form data"))
		return
	}
	boardState := r.FormValue("state_filter")
	boardLanguage := r.FormValue("language_filter")

	replacement := strings.TrimSpace(r.FormValue("replacement_text"))
	if replacement == "" {
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Replacement text is required to mark a prompt weak."))
		return
	}

	err := c.backend.MarkPromptWeak(r.Context(), promptID, aira.MarkWeakRequest{
		ReplacementText: replacement,
		Notes:           r.FormValue("notes"),
	})
	if err != nil {
		c.logger.Error("failed to mark prompt weak", "prompt_id", promptID, "error", err)
		c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "", "Could not mark weak: "+err.Error()))
		return
	}

	c.logger.Info("prompt marked weak", "prompt_id", promptID)
	c.renderPromptsBoard(w, c.buildPromptsBoard(r.Context(), boardState, boardLanguage, "Prompt marked weak; replacement drafted.", ""))
}

// buildPromptsBoard fetches the full prompt list and shapes the three-column
// board, honoring the current filters.
func (c *Console) buildPromptsBoard(ctx context.Context, state, language, flash, flashError string) promptsBoardData {
	board := promptsBoardData{
		StateFilter:    state,
		LanguageFilter: language,
		States:         aira.FSMStateNames,
		Languages:      aira.Languages,
		Flash:          flash,
		FlashError:     flashError,
	}

	// State description banner is best effort; the board renders without it.
	if state != "" {
		if info, err := c.backend.GetFSMState(ctx, state); err == nil {
			board.StateInfo = info
		}
	}

	prompts, err := c.backend.ListPrompts(ctx, aira.PromptFilters{FSMState: state, Language: language})
	if err != nil {
		c.logger.Error("failed to list prompts", "error", err)
		board.Error = "Could not load prompts: " + err.Error()
		return board
	}

	part := partitionPrompts(prompts)
	board.Active = c.buildPromptCards(part.Active)
	board.Drafts = c.buildPromptCards(part.Drafts)
	board.Weak = c.buildPromptCards(part.Weak)
	return board
}

func (c *Console) buildPromptCards(prompts []aira.Prompt) []promptCard {
	cards := make([]promptCard, 0, len(prompts))
	for _, p := range prompts {
		cards = append(cards, promptCard{
			ID:       p.ID,
			FSMState: p.FSMState,
			Language: p.Language,
			Status:   p.Status,
			Version:  p.Version,
			Updated:  formatTime(p.UpdatedAt),
			Notes:    p.Notes,
			Text:     p.Text,
			Preview:  c.renderMarkdown(p.Text),
		})
	}
	return cards
}
