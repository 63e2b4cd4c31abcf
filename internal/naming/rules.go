package naming

import (
	"path/filepath"
	"strings"
)

// DirectivePrefix marks extended playlist directives that must never be
// transformed.
const DirectivePrefix = "#EXT"

// Replacement substitutes every literal occurrence of From with To.
type Replacement struct {
	From string
	To   string
}

// RuleSet is the immutable set of substitutions applied to every name.
type RuleSet struct {
	remove  []string
	replace []Replacement
}

// NewRuleSet copies the provided rules into a RuleSet. Replacements run in
// slice order before removals, which also run in slice order.
func NewRuleSet(remove []string, replace []Replacement) RuleSet {
	rs := RuleSet{}
	if len(remove) > 0 {
		rs.remove = append([]string(nil), remove...)
	}
	if len(replace) > 0 {
		rs.replace = append([]Replacement(nil), replace...)
	}
	return rs
}

// DefaultRuleSet returns the built-in rules: "(" becomes "- " and ":" is
// removed.
func DefaultRuleSet() RuleSet {
	return NewRuleSet([]string{":"}, []Replacement{{From: "(", To: "- "}})
}

// Remove returns a copy of the removal strings.
func (r RuleSet) Remove() []string {
	return append([]string(nil), r.remove...)
}

// Replace returns a copy of the replacement pairs.
func (r RuleSet) Replace() []Replacement {
	return append([]Replacement(nil), r.replace...)
}

// Transform normalizes a single path segment.
func (r RuleSet) Transform(text string) string {
	if strings.HasPrefix(text, DirectivePrefix) {
		return text
	}
	for _, rep := range r.replace {
		if rep.From == "" {
			continue
		}
		text = strings.ReplaceAll(text, rep.From, rep.To)
	}
	for _, token := range r.remove {
		if token == "" {
			continue
		}
		text = strings.ReplaceAll(text, token, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

// TransformStem transforms the stem of name and reattaches its extension
// verbatim.
func (r RuleSet) TransformStem(name string) string {
	stem, ext := SplitStem(name)
	return r.Transform(stem) + ext
}

// SplitStem splits a basename into stem and extension. Names whose only dot is
// the leading one (".hidden") have no extension.
func SplitStem(name string) (string, string) {
	ext := filepath.Ext(name)
	if ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
