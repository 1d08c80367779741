// Package interactions reports medication pairs recorded as interacting in
// the knowledge base.
package interactions

import (
	"fmt"
	"strings"

	"github.com/Skufu/medassist/internal/knowledge"
)

type Interaction struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (i Interaction) Message() string {
	return fmt.Sprintf("%s may interact with %s", i.First, i.Second)
}

type Checker struct {
	kb *knowledge.Base
}

func NewChecker(kb *knowledge.Base) *Checker {
	return &Checker{kb: kb}
}

// Pairs walks each unordered pair once, in input order, so the medication that
// appears first is reported first. Names keep the caller's casing. The same
// pair mentioned twice (in any casing) is reported once.
func (c *Checker) Pairs(meds []string) []Interaction {
	out := []Interaction{}
	seen := map[[2]string]bool{}
	for i := 0; i < len(meds); i++ {
		a := knowledge.NormalizeName(meds[i])
		for j := i + 1; j < len(meds); j++ {
			b := knowledge.NormalizeName(meds[j])
			if !c.kb.Interacts(a, b) {
				continue
			}
			key := [2]string{a, b}
			if b < a {
				key = [2]string{b, a}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Interaction{
				First:  strings.TrimSpace(meds[i]),
				Second: strings.TrimSpace(meds[j]),
			})
		}
	}
	return out
}

func (c *Checker) Check(meds []string) []string {
	pairs := c.Pairs(meds)
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Message())
	}
	return out
}

// Mentioned returns the known drugs whose names occur in query, in knowledge
// base order.
func (c *Checker) Mentioned(query string) []string {
	lower := strings.ToLower(query)
	out := []string{}
	for _, d := range c.kb.Drugs() {
		if strings.Contains(lower, d.Name) {
			out = append(out, d.Name)
		}
	}
	return out
}

// ParseList splits a comma separated medication string, dropping blanks.
func ParseList(text string) []string {
	out := []string{}
	for _, t := range strings.Split(text, ",") {
		trimmed := strings.TrimSpace(t)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
