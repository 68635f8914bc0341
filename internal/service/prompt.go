package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/google/uuid"
)

const selectionSystemPrompt = "You are a recommendation engine for a digital product marketplace. " +
	"You select the products a specific shopper is most likely to want next, based on their " +
	"browsing behavior and stated interests. " +
	"Respond with a strict JSON array of objects of the form " +
	`[{"id": "<product id>", "reason": "<one short sentence>"}]` +
	" and nothing else: no prose, no markdown, no explanations outside the array."

// buildUserMessage assembles the shopper context block and the enumerated
// candidate list. Clauses with no underlying data are omitted entirely.
func buildUserMessage(userContext string, recent []domain.Product, profile *domain.UserPreferenceProfile, pool []domain.Product, limit int) string {
	var clauses []string
	if userContext != "" {
		clauses = append(clauses, fmt.Sprintf("- Stated interest: %s", userContext))
	}
	if len(recent) > 0 {
		var views strings.Builder
		views.WriteString("- Recently viewed:")
		for _, p := range recent {
			fmt.Fprintf(&views, "\n  - %s (%s, $%.2f)", p.Title, p.Type, p.Price)
		}
		clauses = append(clauses, views.String())
	}
	if len(profile.PreferredCategories) > 0 {
		cats := make([]string, 0, len(profile.PreferredCategories))
		for _, c := range profile.PreferredCategories {
			cats = append(cats, c.String())
		}
		clauses = append(clauses, "- Preferred category ids: "+strings.Join(cats, ", "))
	}
	if profile.HasPriceBand() {
		clauses = append(clauses, fmt.Sprintf("- Typical price range: $%.2f - $%.2f",
			*profile.PriceRangeMin, *profile.PriceRangeMax))
	}

	var b strings.Builder
	if len(clauses) > 0 {
		b.WriteString("Shopper context:\n")
		b.WriteString(strings.Join(clauses, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("Candidate products:\n")
	n := len(pool)
	if n > aiPromptCandidates {
		n = aiPromptCandidates
	}
	for i, p := range pool[:n] {
		category := "none"
		if p.CategoryID != nil {
			category = p.CategoryID.String()
		}
		fmt.Fprintf(&b, "%d. id=%s title=%q type=%s price=$%.2f rating=%.1f reviews=%d category=%s\n",
			i+1, p.ID, p.Title, p.Type, p.Price, p.Rating, p.ReviewCount, category)
	}

	fmt.Fprintf(&b, "\nSelect exactly %d product ids from the candidates above, best match first, "+
		"with a one-line reason each. Respond with the JSON array only.", limit)

	return b.String()
}

type modelSelection struct {
	ID     uuid.UUID
	Reason string
}

type rawSelection struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// parseModelSelection decodes the model's reply. Markdown code fences are
// tolerated and stripped; anything else that is not a JSON array of
// id/reason objects is a parse failure.
func parseModelSelection(raw string) ([]modelSelection, error) {
	cleaned := stripCodeFence(raw)

	var entries []rawSelection
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("decode selection array: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty selection array")
	}

	selections := make([]modelSelection, 0, len(entries))
	for _, e := range entries {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			continue
		}
		selections = append(selections, modelSelection{ID: id, Reason: e.Reason})
	}
	if len(selections) == 0 {
		return nil, fmt.Errorf("no valid product ids in selection")
	}
	return selections, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	after, ok := strings.CutPrefix(s, "```")
	if !ok {
		return s
	}
	after = strings.TrimPrefix(after, "json")
	if body, _, found := strings.Cut(after, "```"); found {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(after)
}
