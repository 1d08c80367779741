package knowledge

// DefaultTables is the small illustrative table set shipped with the service.
// It is not a clinical reference.
func DefaultTables() Tables {
	return Tables{
		Ranges: []ReferenceRange{
			{Label: "Glucose", Min: 70, Max: 110},
			{Label: "Hemoglobin", Min: 12, Max: 17},
			{Label: "Cholesterol", Min: 0, Max: 200},
			{Label: "Creatinine", Min: 0.6, Max: 1.3},
			{Label: "WBC", Min: 4, Max: 11},
			{Label: "RBC", Min: 4, Max: 6},
			{Label: "Platelet", Min: 150, Max: 400},
			{Label: "BUN", Min: 7, Max: 20},
			{Label: "Sodium", Min: 135, Max: 145},
			{Label: "Potassium", Min: 3.5, Max: 5.1},
			{Label: "Calcium", Min: 8.5, Max: 10.5},
			{Label: "ALT", Min: 0, Max: 40},
			{Label: "AST", Min: 0, Max: 40},
			{Label: "Bilirubin", Min: 0.1, Max: 1.2},
			{Label: "Alkaline Phosphatase", Min: 44, Max: 147},
		},
		Symptoms: []Symptom{
			{ID: Headache, CommonCauses: []string{"tension", "migraine", "dehydration"}, Urgency: UrgencyLow},
			{ID: Fever, CommonCauses: []string{"infection", "inflammation"}, Urgency: UrgencyModerate},
			{ID: ChestPain, CommonCauses: []string{"heart", "muscle strain", "anxiety"}, Urgency: UrgencyHigh},
			{ID: Tiredness, CommonCauses: []string{"anemia", "sleep deprivation", "chronic disease"}, Urgency: UrgencyModerate},
			{ID: Weakness, CommonCauses: []string{"electrolyte imbalance", "infection"}, Urgency: UrgencyModerate},
		},
		Conditions: []Condition{
			{
				ID:          Hypertension,
				RiskFactors: []string{"age", "obesity", "smoking", "family history"},
				Monitoring:  "blood pressure, kidney function",
			},
		},
		Drugs: []Drug{
			{Name: "warfarin", DisplayName: "Warfarin", DefaultDose: "5mg"},
			{Name: "aspirin", DisplayName: "Aspirin", DefaultDose: "81mg"},
			{Name: "ibuprofen", DisplayName: "Ibuprofen", DefaultDose: "200mg"},
			{Name: "acetaminophen", DisplayName: "Acetaminophen", DefaultDose: "500mg"},
			{Name: "lisinopril", DisplayName: "Lisinopril", DefaultDose: "10mg"},
			{Name: "metformin", DisplayName: "Metformin", DefaultDose: "500mg"},
			{Name: "spironolactone", DisplayName: "Spironolactone", DefaultDose: "25mg"},
			{Name: "potassium supplements", DisplayName: "Potassium supplements", DefaultDose: "20mEq"},
			{Name: "contrast dye", DisplayName: "Contrast dye", DefaultDose: "N/A"},
			{Name: "alcohol", DisplayName: "Alcohol", DefaultDose: "N/A"},
		},
		Interactions: map[string][]string{
			"warfarin":   {"aspirin", "ibuprofen", "acetaminophen"},
			"metformin":  {"alcohol", "contrast dye"},
			"lisinopril": {"spironolactone", "potassium supplements"},
		},
		EmergencyKeywords: []string{
			"chest pain",
			"sudden vision loss",
			"shortness of breath",
			"severe bleeding",
			"loss of consciousness",
		},
		SpellingCorrections: map[string]string{
			"feverr":  "fever",
			"diabtes": "diabetes",
		},
	}
}
