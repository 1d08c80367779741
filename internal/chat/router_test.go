package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skufu/medassist/internal/interactions"
	"github.com/Skufu/medassist/internal/knowledge"
)

func newRouter(opts Options) *Router {
	kb := knowledge.Default()
	return NewRouter(kb, interactions.NewChecker(kb), opts)
}

func TestRoute_DrugInteraction(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("Can I take ibuprofen with warfarin?", nil)

	assert.Equal(t, RuleDrug, rule)
	assert.Equal(t, "⚠️ Potential interaction: warfarin may interact with ibuprofen. Please consult your healthcare provider before combining these medications.", reply)
}

func TestRoute_DrugInteractionMetforminAlcohol(t *testing.T) {
	reply := newRouter(Options{}).Respond("Is it safe to combine metformin and alcohol?", nil)

	assert.Contains(t, reply, "metformin may interact with alcohol")
}

func TestRoute_DrugWithoutInteraction(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("Tell me about Aspirin and lisinopril", nil)

	assert.Equal(t, RuleDrug, rule)
	assert.Equal(t, noInteractionsReply, reply)
}

func TestRoute_Condition(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("What are the risks of hypertension?", nil)

	assert.Equal(t, RuleCondition, rule)
	assert.Equal(t, "Risks of Hypertension include: age, obesity, smoking, family history. Monitoring is recommended: blood pressure, kidney function. Please consult your healthcare provider for personalized advice.", reply)
}

func TestRoute_DrugBeatsCondition(t *testing.T) {
	_, rule := newRouter(Options{}).Route("hypertension and lisinopril", nil)

	assert.Equal(t, RuleDrug, rule)
}

func TestRoute_TrackedSymptoms(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("I have a headache and fever", []string{"headache", "fever"})

	assert.Equal(t, RuleSymptom, rule)
	assert.Equal(t, `Symptom: "headache". Possible causes: tension, migraine, dehydration. Urgency: low. Monitor symptoms and seek care if they worsen. `+
		`Symptom: "fever". Possible causes: infection, inflammation. Urgency: moderate. Consult a healthcare provider soon.`, reply)
}

func TestRoute_UntrackedSymptomFallsThrough(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("I have a headache and fever", nil)

	assert.Equal(t, RuleGeneric, rule)
	assert.Equal(t, genericReply, reply)
}

func TestRoute_SymptomWithoutKnowledgeFallsThrough(t *testing.T) {
	_, rule := newRouter(Options{}).Route("the nausea is bad", []string{"nausea"})

	assert.Equal(t, RuleGeneric, rule)
}

func TestRoute_HighUrgencySymptom(t *testing.T) {
	reply := newRouter(Options{}).Respond("my chestpain is back", []string{"Chest Pain"})

	assert.Contains(t, reply, "Urgency: high. Seek immediate medical attention.")
}

func TestRoute_SpacedSymptomWording(t *testing.T) {
	router := newRouter(Options{})
	for _, query := range []string{"I have chest pain again", "my Chest Pain is back", "my chestpain is back"} {
		reply, rule := router.Route(query, []string{"Chest Pain"})

		assert.Equal(t, RuleSymptom, rule, query)
		assert.Contains(t, reply, `Symptom: "chestpain"`, query)
	}

	_, rule := newRouter(Options{SymptomScope: ScopeAll}).Route("I have chest pain", nil)
	assert.Equal(t, RuleSymptom, rule)
}

func TestRoute_ScopeAllUsesVocabulary(t *testing.T) {
	reply, rule := newRouter(Options{SymptomScope: ScopeAll}).Route("I'm feeling weakness", nil)

	assert.Equal(t, RuleSymptom, rule)
	assert.Contains(t, reply, `Symptom: "weakness"`)
}

func TestRoute_SpellingCorrection(t *testing.T) {
	_, rule := newRouter(Options{}).Route("I think I have feverr", []string{"fever"})

	assert.Equal(t, RuleSymptom, rule)
}

func TestRoute_MedicationKeyword(t *testing.T) {
	reply, rule := newRouter(Options{}).Route("Which DRUG is best?", nil)

	assert.Equal(t, RuleMedicationKeyword, rule)
	assert.Equal(t, medicationReply, reply)
}

func TestRoute_EmergencyTriage(t *testing.T) {
	query := "I have chest pain, should I take aspirin?"

	reply, rule := newRouter(Options{EmergencyTriage: true}).Route(query, nil)
	assert.Equal(t, RuleEmergency, rule)
	assert.Equal(t, emergencyReply, reply)

	_, rule = newRouter(Options{}).Route(query, nil)
	assert.Equal(t, RuleDrug, rule)
}

func TestRules_Order(t *testing.T) {
	assert.Equal(t,
		[]string{RuleDrug, RuleCondition, RuleSymptom, RuleMedicationKeyword, RuleGeneric},
		newRouter(Options{}).Rules())
	assert.Equal(t, RuleEmergency, newRouter(Options{EmergencyTriage: true}).Rules()[0])
}
