package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_AllRulesFire(t *testing.T) {
	got := Score(
		[]string{"chestpain"},
		Vitals{HeartRate: 110, Temperature: 101, BloodPressure: "120/80", OxygenSat: 98},
		[]string{"hypertension"},
	)

	assert.Equal(t, 100, got.Score)
	assert.Equal(t, HighRisk, got.Category)
	assert.Equal(t, []string{"Chest pain", "High heart rate", "Fever", "Hypertension"}, got.Factors)
}

func TestScore_DefaultsAreLowRisk(t *testing.T) {
	got := Score(nil, DefaultVitals(), nil)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, LowRisk, got.Category)
	assert.NotNil(t, got.Factors)
	assert.Empty(t, got.Factors)
}

func TestScore_Categories(t *testing.T) {
	cases := []struct {
		name       string
		symptoms   []string
		vitals     Vitals
		conditions []string
		score      int
		category   Category
	}{
		{name: "fever only", vitals: Vitals{Temperature: 100.5}, score: 10, category: LowRisk},
		{name: "fever threshold is exclusive", vitals: Vitals{Temperature: 100.4}, score: 0, category: LowRisk},
		{name: "heart rate threshold is exclusive", vitals: Vitals{HeartRate: 100}, score: 0, category: LowRisk},
		{name: "tachycardia", vitals: Vitals{HeartRate: 101}, score: 20, category: LowRisk},
		{name: "tachycardia and fever", vitals: Vitals{HeartRate: 120, Temperature: 102}, score: 30, category: ModerateRisk},
		{name: "hypertension and tachycardia", vitals: Vitals{HeartRate: 120}, conditions: []string{"Hypertension"}, score: 40, category: ModerateRisk},
		{name: "chest pain alone", symptoms: []string{"chestpain"}, score: 50, category: HighRisk},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.symptoms, tc.vitals, tc.conditions)
			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, tc.category, got.Category)
		})
	}
}

func TestScore_NormalizesInputs(t *testing.T) {
	got := Score([]string{"Chest Pain"}, Vitals{}, []string{"  HYPERTENSION "})

	assert.Equal(t, 70, got.Score)
	assert.Equal(t, []string{"Chest pain", "Hypertension"}, got.Factors)
}

func TestScore_IgnoresUnknownEntries(t *testing.T) {
	got := Score([]string{"headache", "nausea"}, Vitals{}, []string{"diabetes"})

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, LowRisk, got.Category)
}

func TestParseBloodPressure(t *testing.T) {
	s, d, ok := ParseBloodPressure(" 135 / 88 ")
	assert.True(t, ok)
	assert.Equal(t, 135, s)
	assert.Equal(t, 88, d)

	_, _, ok = ParseBloodPressure("high")
	assert.False(t, ok)
}

func TestVitalsValidate(t *testing.T) {
	assert.Empty(t, DefaultVitals().Validate())
	assert.Empty(t, Vitals{}.Validate())

	problems := Vitals{HeartRate: -1, Temperature: 98.6, OxygenSat: 120, BloodPressure: "abc"}.Validate()
	assert.Len(t, problems, 3)
	assert.Contains(t, problems[2], "blood pressure")
}
