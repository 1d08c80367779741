// Package patient keeps the session-scoped snapshot the risk scorer and chat
// router read from: tracked symptoms, vitals and known conditions.
package patient

import (
	"errors"
	"fmt"

	"github.com/Skufu/medassist/internal/knowledge"
	"github.com/Skufu/medassist/internal/risk"
)

var (
	ErrDuplicate = errors.New("already tracked")
	ErrEmpty     = errors.New("empty value")
)

// SymptomSet is an insertion-ordered set of normalized symptom ids.
type SymptomSet struct {
	items []string
	index map[string]struct{}
}

func NewSymptomSet(ids ...string) *SymptomSet {
	s := &SymptomSet{index: map[string]struct{}{}}
	for _, id := range ids {
		_ = s.Add(id)
	}
	return s
}

func (s *SymptomSet) Add(id string) error {
	return addNormalized(&s.items, s.index, id, knowledge.NormalizeSymptom)
}

func (s *SymptomSet) Contains(id string) bool {
	_, ok := s.index[knowledge.NormalizeSymptom(id)]
	return ok
}

func (s *SymptomSet) List() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *SymptomSet) Len() int {
	return len(s.items)
}

// State is not safe for concurrent use; chat.Session guards its own copy.
type State struct {
	symptoms   *SymptomSet
	conditions []string
	condIndex  map[string]struct{}
	vitals     risk.Vitals
}

func NewState() *State {
	return &State{
		symptoms:  NewSymptomSet(),
		condIndex: map[string]struct{}{},
		vitals:    risk.DefaultVitals(),
	}
}

func (s *State) AddSymptom(id string) error {
	if err := s.symptoms.Add(id); err != nil {
		return fmt.Errorf("symptom %q: %w", id, err)
	}
	return nil
}

func (s *State) AddCondition(id string) error {
	if err := addNormalized(&s.conditions, s.condIndex, id, knowledge.NormalizeName); err != nil {
		return fmt.Errorf("condition %q: %w", id, err)
	}
	return nil
}

func (s *State) SetVitals(v risk.Vitals) {
	s.vitals = v
}

func (s *State) Symptoms() []string {
	return s.symptoms.List()
}

func (s *State) Conditions() []string {
	out := make([]string, len(s.conditions))
	copy(out, s.conditions)
	return out
}

func (s *State) Vitals() risk.Vitals {
	return s.vitals
}

// Assess recomputes the risk assessment from the current snapshot.
func (s *State) Assess() risk.Assessment {
	return risk.Score(s.symptoms.List(), s.vitals, s.conditions)
}

func addNormalized(items *[]string, index map[string]struct{}, raw string, normalize func(string) string) error {
	id := normalize(raw)
	if id == "" {
		return ErrEmpty
	}
	if _, ok := index[id]; ok {
		return ErrDuplicate
	}
	index[id] = struct{}{}
	*items = append(*items, id)
	return nil
}
