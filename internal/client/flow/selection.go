package flow

import "github.com/dmitrijs2005/mechanicassist/internal/client/models"

// Selection holds at most one selected mechanic out of the current candidate
// list. The zero value is ready to use.
type Selection struct {
	candidates []models.MechanicCandidate
	selected   *models.MechanicCandidate
}

// Replace swaps the candidate list. The current selection survives only if
// the same mechanic profile is still listed; it is then refreshed from the
// new list.
func (s *Selection) Replace(candidates []models.MechanicCandidate) {
	s.candidates = candidates
	if s.selected == nil {
		return
	}
	id := s.selected.ID
	s.selected = nil
	for i := range candidates {
		if candidates[i].ID == id {
			c := candidates[i]
			s.selected = &c
			return
		}
	}
}

func (s *Selection) Candidates() []models.MechanicCandidate {
	return s.candidates
}

// Select selects the candidate at index i (0-based), replacing any previous
// selection.
func (s *Selection) Select(i int) (models.MechanicCandidate, error) {
	if i < 0 || i >= len(s.candidates) {
		return models.MechanicCandidate{}, ErrNoSuchCandidate
	}
	c := s.candidates[i]
	s.selected = &c
	return c, nil
}

// Selected returns the selected candidate, nil when none.
func (s *Selection) Selected() *models.MechanicCandidate {
	if s.selected == nil {
		return nil
	}
	c := *s.selected
	return &c
}

func (s *Selection) IsSelected(c models.MechanicCandidate) bool {
	return s.selected != nil && s.selected.ID == c.ID
}

func (s *Selection) Clear() {
	s.selected = nil
}
