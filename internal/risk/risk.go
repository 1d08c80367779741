package risk

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Skufu/medassist/internal/knowledge"
)

type Category string

const (
	LowRisk      Category = "Low Risk"
	ModerateRisk Category = "Moderate Risk"
	HighRisk     Category = "High Risk"
)

type Vitals struct {
	HeartRate     float64 `json:"heartRate"`
	BloodPressure string  `json:"bloodPressure"`
	Temperature   float64 `json:"temperature"`
	OxygenSat     float64 `json:"oxygenSat"`
}

func DefaultVitals() Vitals {
	return Vitals{
		HeartRate:     72,
		BloodPressure: "120/80",
		Temperature:   98.6,
		OxygenSat:     98,
	}
}

type Assessment struct {
	Score    int      `json:"score"`
	Category Category `json:"category"`
	Factors  []string `json:"factors"`
}

type input struct {
	symptoms   map[string]bool
	conditions map[string]bool
	vitals     Vitals
}

type rule struct {
	points  int
	factor  string
	applies func(in input) bool
}

// Evaluated in order; every applicable rule contributes.
var rules = []rule{
	{points: 50, factor: "Chest pain", applies: func(in input) bool { return in.symptoms[string(knowledge.ChestPain)] }},
	{points: 20, factor: "High heart rate", applies: func(in input) bool { return in.vitals.HeartRate > 100 }},
	{points: 10, factor: "Fever", applies: func(in input) bool { return in.vitals.Temperature > 100.4 }},
	{points: 20, factor: "Hypertension", applies: func(in input) bool { return in.conditions[string(knowledge.Hypertension)] }},
}

// Score sums the additive rules. The total is not clamped, so several rules
// together can exceed 100.
func Score(symptoms []string, vitals Vitals, conditions []string) Assessment {
	in := input{
		symptoms:   toSet(symptoms, knowledge.NormalizeSymptom),
		conditions: toSet(conditions, knowledge.NormalizeName),
		vitals:     vitals,
	}

	score := 0
	factors := []string{}
	for _, r := range rules {
		if r.applies(in) {
			score += r.points
			factors = append(factors, r.factor)
		}
	}

	return Assessment{
		Score:    score,
		Category: classifyRisk(score),
		Factors:  factors,
	}
}

func classifyRisk(score int) Category {
	switch {
	case score >= 50:
		return HighRisk
	case score >= 25:
		return ModerateRisk
	default:
		return LowRisk
	}
}

var bpPattern = regexp.MustCompile(`^\s*(\d{2,3})\s*/\s*(\d{2,3})\s*$`)

func ParseBloodPressure(bp string) (int, int, bool) {
	m := bpPattern.FindStringSubmatch(bp)
	if len(m) != 3 {
		return 0, 0, false
	}
	s, _ := strconv.Atoi(m[1])
	d, _ := strconv.Atoi(m[2])
	return s, d, true
}

// Validate lists every problem with v; nil means the vitals are usable.
// An empty blood pressure is allowed since it does not affect the score.
func (v Vitals) Validate() []string {
	var problems []string
	if v.HeartRate < 0 || v.HeartRate > 300 {
		problems = append(problems, fmt.Sprintf("heart rate %.0f is out of range", v.HeartRate))
	}
	if v.Temperature < 0 || v.Temperature > 115 {
		problems = append(problems, fmt.Sprintf("temperature %.1f is out of range", v.Temperature))
	}
	if v.OxygenSat < 0 || v.OxygenSat > 100 {
		problems = append(problems, fmt.Sprintf("oxygen saturation %.0f is out of range", v.OxygenSat))
	}
	if v.BloodPressure != "" {
		if _, _, ok := ParseBloodPressure(v.BloodPressure); !ok {
			problems = append(problems, fmt.Sprintf("blood pressure %q must look like 120/80", v.BloodPressure))
		}
	}
	return problems
}

func toSet(values []string, normalize func(string) string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		key := normalize(v)
		if key != "" {
			out[key] = true
		}
	}
	return out
}
