// Package chat routes free-text questions through an ordered list of rules
// and keeps per-session transcripts with a simulated reply delay.
package chat

import (
	"fmt"
	"strings"

	"github.com/Skufu/medassist/internal/interactions"
	"github.com/Skufu/medassist/internal/knowledge"
)

type SymptomScope string

const (
	// ScopeTracked only answers about symptoms the session has added.
	ScopeTracked SymptomScope = "tracked"
	// ScopeAll answers about any symptom in the knowledge base.
	ScopeAll SymptomScope = "all"
)

type Options struct {
	EmergencyTriage bool
	SymptomScope    SymptomScope
}

// Query is what every rule sees. Lower is the spelling-corrected, lowercased
// text and Compact is Lower with all whitespace removed, the form symptom ids
// are stored in.
type Query struct {
	Text    string
	Lower   string
	Compact string
	Tracked []string
}

type Rule struct {
	Name  string
	Match func(q Query) bool
	Reply func(q Query) string
}

const (
	RuleEmergency         = "emergency"
	RuleDrug              = "drug"
	RuleCondition         = "condition"
	RuleSymptom           = "symptom"
	RuleMedicationKeyword = "medication-keyword"
	RuleGeneric           = "generic"
)

const (
	emergencyReply      = "EMERGENCY: Your symptoms may indicate a serious medical condition. Seek immediate medical attention or call emergency services."
	noInteractionsReply = "No known major interactions found between the medications you mentioned. Always confirm with your healthcare provider."
	medicationReply     = "I can help analyze medication interactions and provide drug information. Please specify the medications you're asking about."
	genericReply        = "I understand you're seeking medical information. Could you provide more specific symptoms or concerns so I can better assist you?"
)

type Router struct {
	kb      *knowledge.Base
	checker *interactions.Checker
	opts    Options
	rules   []Rule
}

func NewRouter(kb *knowledge.Base, checker *interactions.Checker, opts Options) *Router {
	if opts.SymptomScope == "" {
		opts.SymptomScope = ScopeTracked
	}
	r := &Router{kb: kb, checker: checker, opts: opts}

	if opts.EmergencyTriage {
		r.rules = append(r.rules, Rule{Name: RuleEmergency, Match: r.mentionsEmergency, Reply: func(Query) string { return emergencyReply }})
	}
	r.rules = append(r.rules,
		Rule{Name: RuleDrug, Match: r.mentionsDrug, Reply: r.drugReply},
		Rule{Name: RuleCondition, Match: r.mentionsCondition, Reply: r.conditionReply},
		Rule{Name: RuleSymptom, Match: r.mentionsSymptom, Reply: r.symptomReply},
		Rule{Name: RuleMedicationKeyword, Match: mentionsMedicationKeyword, Reply: func(Query) string { return medicationReply }},
		Rule{Name: RuleGeneric, Match: func(Query) bool { return true }, Reply: func(Query) string { return genericReply }},
	)
	return r
}

// Rules lists rule names in evaluation order.
func (r *Router) Rules() []string {
	out := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule.Name)
	}
	return out
}

// Route returns the reply together with the name of the rule that produced it.
func (r *Router) Route(text string, tracked []string) (string, string) {
	corrected := r.kb.CorrectSpelling(text)
	q := Query{
		Text:    corrected,
		Lower:   strings.ToLower(corrected),
		Compact: knowledge.NormalizeSymptom(corrected),
		Tracked: tracked,
	}
	for _, rule := range r.rules {
		if rule.Match(q) {
			return rule.Reply(q), rule.Name
		}
	}
	return genericReply, RuleGeneric
}

func (r *Router) Respond(text string, tracked []string) string {
	reply, _ := r.Route(text, tracked)
	return reply
}

func (r *Router) mentionsEmergency(q Query) bool {
	for _, kw := range r.kb.EmergencyKeywords() {
		if strings.Contains(q.Lower, kw) {
			return true
		}
	}
	return false
}

func (r *Router) mentionsDrug(q Query) bool {
	return len(r.checker.Mentioned(q.Lower)) > 0
}

func (r *Router) drugReply(q Query) string {
	found := r.checker.Check(r.checker.Mentioned(q.Lower))
	if len(found) == 0 {
		return noInteractionsReply
	}
	return fmt.Sprintf("⚠️ Potential interaction: %s. Please consult your healthcare provider before combining these medications.", strings.Join(found, "; "))
}

func (r *Router) mentionedCondition(q Query) (knowledge.Condition, bool) {
	for _, c := range r.kb.Conditions() {
		if strings.Contains(q.Lower, string(c.ID)) {
			return c, true
		}
	}
	return knowledge.Condition{}, false
}

func (r *Router) mentionsCondition(q Query) bool {
	_, ok := r.mentionedCondition(q)
	return ok
}

func (r *Router) conditionReply(q Query) string {
	c, _ := r.mentionedCondition(q)
	return fmt.Sprintf("Risks of %s include: %s. Monitoring is recommended: %s. Please consult your healthcare provider for personalized advice.",
		titleCase(string(c.ID)), strings.Join(c.RiskFactors, ", "), c.Monitoring)
}

// mentionedSymptoms keeps only candidates with a knowledge base entry.
func (r *Router) mentionedSymptoms(q Query) []knowledge.Symptom {
	var candidates []string
	if r.opts.SymptomScope == ScopeAll {
		for _, s := range r.kb.Symptoms() {
			candidates = append(candidates, string(s.ID))
		}
	} else {
		candidates = q.Tracked
	}

	var out []knowledge.Symptom
	seen := map[string]bool{}
	for _, id := range candidates {
		id = knowledge.NormalizeSymptom(id)
		if id == "" || seen[id] || !mentions(q, id) {
			continue
		}
		seen[id] = true
		if s, ok := r.kb.Symptom(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// mentions matches a symptom id against the query as typed and with spaces
// dropped, so "chest pain" finds the "chestpain" id.
func mentions(q Query, id string) bool {
	return strings.Contains(q.Lower, id) || strings.Contains(q.Compact, id)
}

func (r *Router) mentionsSymptom(q Query) bool {
	return len(r.mentionedSymptoms(q)) > 0
}

func (r *Router) symptomReply(q Query) string {
	var parts []string
	for _, s := range r.mentionedSymptoms(q) {
		parts = append(parts, fmt.Sprintf("Symptom: %q. Possible causes: %s. Urgency: %s. %s",
			string(s.ID), strings.Join(s.CommonCauses, ", "), s.Urgency, urgencyGuidance(s.Urgency)))
	}
	return strings.Join(parts, " ")
}

func urgencyGuidance(u knowledge.Urgency) string {
	switch u {
	case knowledge.UrgencyHigh:
		return "Seek immediate medical attention."
	case knowledge.UrgencyModerate:
		return "Consult a healthcare provider soon."
	default:
		return "Monitor symptoms and seek care if they worsen."
	}
}

func mentionsMedicationKeyword(q Query) bool {
	return strings.Contains(q.Lower, "medication") || strings.Contains(q.Lower, "drug")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
