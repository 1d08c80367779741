// Package knowledge holds the read-only medical tables the engine works from:
// analyte reference ranges, symptoms, conditions and the drug interaction graph.
package knowledge

import (
	"sort"
	"strings"
	"sync"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyModerate Urgency = "moderate"
	UrgencyHigh     Urgency = "high"
)

type SymptomID string

const (
	Headache  SymptomID = "headache"
	Fever     SymptomID = "fever"
	ChestPain SymptomID = "chestpain"
	Tiredness SymptomID = "tiredness"
	Weakness  SymptomID = "weakness"
)

type ConditionID string

const (
	Hypertension ConditionID = "hypertension"
)

type ReferenceRange struct {
	Label   string  `json:"label"`
	Keyword string  `json:"keyword"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type Symptom struct {
	ID           SymptomID `json:"id"`
	CommonCauses []string  `json:"commonCauses"`
	Urgency      Urgency   `json:"urgency"`
}

type Condition struct {
	ID          ConditionID `json:"id"`
	RiskFactors []string    `json:"riskFactors"`
	Monitoring  string      `json:"monitoring"`
}

type Drug struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	DefaultDose string `json:"defaultDose"`
}

// Tables is the raw input to New. Interactions is read as "key lists value";
// New adds the reverse edges. EmergencyKeywords are phrases that warrant an
// immediate-care reply; SpellingCorrections maps misspelled words to fixes.
type Tables struct {
	Ranges              []ReferenceRange
	Symptoms            []Symptom
	Conditions          []Condition
	Drugs               []Drug
	Interactions        map[string][]string
	EmergencyKeywords   []string
	SpellingCorrections map[string]string
}

// Base is immutable once built. Accessors hand out copies.
type Base struct {
	ranges      []ReferenceRange
	rangeIndex  map[string]ReferenceRange
	symptoms    []Symptom
	symptomIdx  map[SymptomID]Symptom
	conditions  []Condition
	conditionIx map[ConditionID]Condition
	drugs       []Drug
	graph       map[string]map[string]struct{}
	emergency   []string
	corrections map[string]string
}

var (
	defaultOnce sync.Once
	defaultBase *Base
)

// Default returns the process-wide knowledge base built from DefaultTables.
func Default() *Base {
	defaultOnce.Do(func() {
		defaultBase = New(DefaultTables())
	})
	return defaultBase
}

func New(t Tables) *Base {
	b := &Base{
		rangeIndex:  make(map[string]ReferenceRange, len(t.Ranges)),
		symptomIdx:  make(map[SymptomID]Symptom, len(t.Symptoms)),
		conditionIx: make(map[ConditionID]Condition, len(t.Conditions)),
		graph:       make(map[string]map[string]struct{}),
		corrections: make(map[string]string, len(t.SpellingCorrections)),
	}

	for _, r := range t.Ranges {
		if r.Keyword == "" {
			r.Keyword = strings.ToLower(r.Label)
		}
		b.ranges = append(b.ranges, r)
		b.rangeIndex[r.Label] = r
	}

	for _, s := range t.Symptoms {
		s.ID = SymptomID(NormalizeSymptom(string(s.ID)))
		s.CommonCauses = cloneStrings(s.CommonCauses)
		b.symptoms = append(b.symptoms, s)
		b.symptomIdx[s.ID] = s
	}

	for _, c := range t.Conditions {
		c.ID = ConditionID(NormalizeName(string(c.ID)))
		c.RiskFactors = cloneStrings(c.RiskFactors)
		b.conditions = append(b.conditions, c)
		b.conditionIx[c.ID] = c
	}

	seen := map[string]bool{}
	for _, d := range t.Drugs {
		d.Name = NormalizeName(d.Name)
		if d.DisplayName == "" {
			d.DisplayName = d.Name
		}
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		b.drugs = append(b.drugs, d)
	}

	keys := make([]string, 0, len(t.Interactions))
	for k := range t.Interactions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		from := NormalizeName(k)
		for _, v := range t.Interactions[k] {
			to := NormalizeName(v)
			if from == to || to == "" {
				continue
			}
			b.link(from, to)
			b.link(to, from)
		}
	}

	// every drug in the graph must also be reachable through Drugs()
	for _, name := range sortedKeys(b.graph) {
		if !seen[name] {
			seen[name] = true
			b.drugs = append(b.drugs, Drug{Name: name, DisplayName: name})
		}
	}

	for _, kw := range t.EmergencyKeywords {
		if kw = NormalizeName(kw); kw != "" {
			b.emergency = append(b.emergency, kw)
		}
	}
	for wrong, right := range t.SpellingCorrections {
		b.corrections[strings.ToLower(strings.TrimSpace(wrong))] = right
	}

	return b
}

func (b *Base) link(from, to string) {
	set, ok := b.graph[from]
	if !ok {
		set = make(map[string]struct{})
		b.graph[from] = set
	}
	set[to] = struct{}{}
}

func (b *Base) Ranges() []ReferenceRange {
	out := make([]ReferenceRange, len(b.ranges))
	copy(out, b.ranges)
	return out
}

func (b *Base) Range(label string) (ReferenceRange, bool) {
	r, ok := b.rangeIndex[label]
	return r, ok
}

func (b *Base) Symptoms() []Symptom {
	out := make([]Symptom, 0, len(b.symptoms))
	for _, s := range b.symptoms {
		s.CommonCauses = cloneStrings(s.CommonCauses)
		out = append(out, s)
	}
	return out
}

func (b *Base) Symptom(id string) (Symptom, bool) {
	s, ok := b.symptomIdx[SymptomID(NormalizeSymptom(id))]
	if !ok {
		return Symptom{}, false
	}
	s.CommonCauses = cloneStrings(s.CommonCauses)
	return s, true
}

func (b *Base) Conditions() []Condition {
	out := make([]Condition, 0, len(b.conditions))
	for _, c := range b.conditions {
		c.RiskFactors = cloneStrings(c.RiskFactors)
		out = append(out, c)
	}
	return out
}

func (b *Base) Condition(id string) (Condition, bool) {
	c, ok := b.conditionIx[ConditionID(NormalizeName(id))]
	if !ok {
		return Condition{}, false
	}
	c.RiskFactors = cloneStrings(c.RiskFactors)
	return c, true
}

// Drugs lists every known drug in table order.
func (b *Base) Drugs() []Drug {
	out := make([]Drug, len(b.drugs))
	copy(out, b.drugs)
	return out
}

// Interacts reports whether a and b are recorded as interacting. Names are
// normalized first; the relation is symmetric.
func (b *Base) Interacts(a, c string) bool {
	set, ok := b.graph[NormalizeName(a)]
	if !ok {
		return false
	}
	_, ok = set[NormalizeName(c)]
	return ok
}

// InteractsWith returns the sorted interaction partners of name.
func (b *Base) InteractsWith(name string) []string {
	return sortedKeys(b.graph[NormalizeName(name)])
}

// EmergencyKeywords returns the lowercased emergency phrases in table order.
func (b *Base) EmergencyKeywords() []string {
	return cloneStrings(b.emergency)
}

// CorrectSpelling replaces known misspelled words in text. Words are split on
// whitespace; punctuation attached to a word prevents a match.
func (b *Base) CorrectSpelling(text string) string {
	words := strings.Fields(text)
	changed := false
	for i, w := range words {
		if fixed, ok := b.corrections[strings.ToLower(w)]; ok {
			words[i] = fixed
			changed = true
		}
	}
	if !changed {
		return text
	}
	return strings.Join(words, " ")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
