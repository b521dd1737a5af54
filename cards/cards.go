// Package cards holds the immutable card catalog the game runs with:
// control cards (forward bonuses), misstep cards (tagged penalties) and
// mitigation cards (held counters), plus the suggested event squares.
package cards

// Control is an event card granting a forward position bonus.
type Control struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Delta int    `json:"delta"`
}

// Misstep is an event card inflicting a position penalty, tagged with the
// hazard categories it belongs to.
type Misstep struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Delta int      `json:"delta"`
	Tags  []string `json:"tags"`
}

// Mitigation is a held card that cancels any misstep whose tags it covers.
type Mitigation struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Mitigates []string `json:"mitigates"`
}

// Covers reports whether the mitigation cancels a misstep carrying tags.
func (m Mitigation) Covers(tags []string) bool {
	for _, t := range tags {
		for _, c := range m.Mitigates {
			if t == c {
				return true
			}
		}
	}
	return false
}

// Library is a read-only card catalog.
type Library struct {
	Controls    []Control
	Missteps    []Misstep
	Mitigations []Mitigation
	CardSpaces  []int

	byID map[string]Mitigation
}

// NewLibrary builds a catalog and indexes mitigations by id.
func NewLibrary(controls []Control, missteps []Misstep, mitigations []Mitigation, cardSpaces []int) *Library {
	l := &Library{
		Controls:    controls,
		Missteps:    missteps,
		Mitigations: mitigations,
		CardSpaces:  cardSpaces,
		byID:        make(map[string]Mitigation, len(mitigations)),
	}
	for _, m := range mitigations {
		l.byID[m.ID] = m
	}
	return l
}

// MitigationByID looks up a mitigation card in the catalog.
func (l *Library) MitigationByID(id string) (Mitigation, bool) {
	m, ok := l.byID[id]
	return m, ok
}
