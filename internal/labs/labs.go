// Package labs pulls analyte values out of raw report text and flags them
// against the knowledge base reference ranges.
package labs

import (
	"regexp"
	"strconv"

	"github.com/Skufu/medassist/internal/knowledge"
)

type Flag string

const (
	FlagNone Flag = ""
	FlagLow  Flag = "Low"
	FlagHigh Flag = "High"
)

type Measurement struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Flag  Flag    `json:"flag"`
}

type analytePattern struct {
	label string
	re    *regexp.Regexp
}

type Extractor struct {
	kb       *knowledge.Base
	patterns []analytePattern
}

// NewExtractor builds one pattern per analyte in the knowledge base, in table
// order. The pattern is "<keyword> [:|-] <number>", case-insensitive.
func NewExtractor(kb *knowledge.Base) *Extractor {
	ranges := kb.Ranges()
	patterns := make([]analytePattern, 0, len(ranges))
	for _, r := range ranges {
		patterns = append(patterns, analytePattern{
			label: r.Label,
			re:    regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.Keyword) + `\s*[:\-]?\s*(\d+\.?\d*)`),
		})
	}
	return &Extractor{kb: kb, patterns: patterns}
}

// Extract returns the first mention of each analyte found in text. Later
// mentions of the same analyte are ignored.
func (e *Extractor) Extract(text string) []Measurement {
	out := []Measurement{}
	for _, p := range e.patterns {
		m := p.re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, Measurement{Label: p.label, Value: value})
	}
	return out
}

func (e *Extractor) Classify(m Measurement) Measurement {
	r, ok := e.kb.Range(m.Label)
	if !ok {
		m.Flag = FlagNone
		return m
	}
	m.Flag = flagFor(m.Value, r)
	return m
}

func (e *Extractor) ExtractAndClassify(text string) []Measurement {
	raw := e.Extract(text)
	for i := range raw {
		raw[i] = e.Classify(raw[i])
	}
	return raw
}

func flagFor(value float64, r knowledge.ReferenceRange) Flag {
	switch {
	case value < r.Min:
		return FlagLow
	case value > r.Max:
		return FlagHigh
	default:
		return FlagNone
	}
}

// Abnormal filters measurements down to the flagged ones.
func Abnormal(ms []Measurement) []Measurement {
	out := []Measurement{}
	for _, m := range ms {
		if m.Flag != FlagNone {
			out = append(out, m)
		}
	}
	return out
}

var sectionPattern = regexp.MustCompile(`(History|Assessment|Plan)\s*:`)

// DetectSections lists clinical note headings in order of appearance.
func DetectSections(text string) []string {
	out := []string{}
	for _, m := range sectionPattern.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}
