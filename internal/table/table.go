package table

import "strings"

// Rule maps one source glyph sequence to its translated text
type Rule struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Table is an ordered list of rules with unique sources
type Table struct {
	rules []Rule
	index map[string]int
}

// New creates an empty mapping table
func New() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

// FromPairs builds a table from source/target pairs in order
func FromPairs(pairs ...string) *Table {
	t := New()
	for i := 0; i+1 < len(pairs); i += 2 {
		t.Add(pairs[i], pairs[i+1])
	}
	return t
}

// Add appends a rule. Surrounding whitespace is trimmed and rules with an
// empty source or target are ignored. A duplicate source replaces the
// earlier target but keeps the earlier position.
func (t *Table) Add(source, target string) bool {
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if source == "" || target == "" {
		return false
	}

	if i, ok := t.index[source]; ok {
		t.rules[i].Target = target
		return true
	}

	t.index[source] = len(t.rules)
	t.rules = append(t.rules, Rule{Source: source, Target: target})
	return true
}

// Lookup returns the target for an exact source
func (t *Table) Lookup(source string) (string, bool) {
	i, ok := t.index[source]
	if !ok {
		return "", false
	}
	return t.rules[i].Target, true
}

// Len returns the number of rules
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns the rules in table order
func (t *Table) Rules() []Rule {
	// Return a copy to prevent external modification
	result := make([]Rule, len(t.rules))
	copy(result, t.rules)
	return result
}
