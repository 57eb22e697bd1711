package grammar

import "fmt"

// The pattern engine is a small combinator matcher over the lexed token
// stream. A pattern is an explicit AST node; matching is recursive descent
// with backtracking scoped to optionals and alternations. Captured values
// are appended to a journal that is truncated whenever a branch is undone,
// so a failed branch leaves no trace.

type patternKind int

const (
	patNormalized patternKind = iota
	patDictionary
	patNumericRange
	patStrictTime
	patSequence
	patAlternation
	patOptional
	patEmbed
)

// Pattern is one node of a compiled rule.
type Pattern struct {
	kind  patternKind
	word  string            // patNormalized
	dict  map[string]string // patDictionary
	lo    int               // patNumericRange
	hi    int
	subs  []*Pattern // patSequence, patAlternation; single element for patOptional
	rule  *Rule      // patEmbed
	field string     // capture target, "" when the node captures nothing
}

// Normalized matches a word token whose head form equals word.
func Normalized(word string) *Pattern {
	return &Pattern{kind: patNormalized, word: word}
}

// Dictionary matches a word token whose head form is a key of dict; the
// mapped value is what gets captured.
func Dictionary(dict map[string]string) *Pattern {
	return &Pattern{kind: patDictionary, dict: dict}
}

// NumericRange matches a number token within [lo, hi].
func NumericRange(lo, hi int) *Pattern {
	return &Pattern{kind: patNumericRange, lo: lo, hi: hi}
}

// StrictTime matches an explicit "HH:MM[:SS]" token.
func StrictTime() *Pattern {
	return &Pattern{kind: patStrictTime}
}

// Sequence matches its sub-patterns over adjacent tokens, in order.
func Sequence(subs ...*Pattern) *Pattern {
	return &Pattern{kind: patSequence, subs: subs}
}

// Alternation tries its options in declaration order; the first that lets
// the rest of the rule succeed wins.
func Alternation(subs ...*Pattern) *Pattern {
	return &Pattern{kind: patAlternation, subs: subs}
}

// Optional matches p zero or one time. When p is absent the associated
// field simply stays uncaptured.
func Optional(p *Pattern) *Pattern {
	return &Pattern{kind: patOptional, subs: []*Pattern{p}}
}

// Embed matches a whole nested rule and captures its built fact.
func Embed(r *Rule, field string) *Pattern {
	return &Pattern{kind: patEmbed, rule: r, field: field}
}

// Bind returns a copy of p that captures its matched value under field.
func (p *Pattern) Bind(field string) *Pattern {
	cp := *p
	cp.field = field
	return &cp
}

// capture is one journal entry: a field name and the value captured for it.
type capture struct {
	field string
	value any
}

// Rule pairs a pattern with the interpretation that builds a fact from the
// pattern's captures.
type Rule struct {
	name    string
	pattern *Pattern
	build   func(caps []capture) (Fact, error)
}

func NewRule(name string, pattern *Pattern, build func(caps []capture) (Fact, error)) *Rule {
	return &Rule{name: name, pattern: pattern, build: build}
}

func (r *Rule) Name() string { return r.name }

// match attempts p at toks[pos]. On a local success it calls k with the
// position after the consumed tokens; if k reports failure the branch is
// undone (captures truncated) and the next possibility is tried.
func match(p *Pattern, toks []token, pos int, caps *[]capture, k func(pos int) bool) bool {
	switch p.kind {
	case patNormalized:
		if pos >= len(toks) || toks[pos].kind != tokenWord || toks[pos].norm != p.word {
			return false
		}
		return emit(p, toks[pos].norm, caps, pos+1, k)

	case patDictionary:
		if pos >= len(toks) || toks[pos].kind != tokenWord {
			return false
		}
		v, ok := p.dict[toks[pos].norm]
		if !ok {
			return false
		}
		return emit(p, v, caps, pos+1, k)

	case patNumericRange:
		if pos >= len(toks) || toks[pos].kind != tokenNumber {
			return false
		}
		if n := toks[pos].num; n < p.lo || n > p.hi {
			return false
		}
		return emit(p, toks[pos].num, caps, pos+1, k)

	case patStrictTime:
		if pos >= len(toks) || toks[pos].kind != tokenTime {
			return false
		}
		t := toks[pos]
		dt := &DayTime{Hour: t.h, Minute: t.m, Second: t.s, Strict: true}
		return emit(p, dt, caps, pos+1, k)

	case patSequence:
		return matchSeq(p.subs, toks, pos, caps, k)

	case patAlternation:
		for _, sub := range p.subs {
			// A bind on the alternation belongs to whichever option wins.
			if p.field != "" && sub.field == "" {
				sub = sub.Bind(p.field)
			}
			mark := len(*caps)
			if match(sub, toks, pos, caps, k) {
				return true
			}
			*caps = (*caps)[:mark]
		}
		return false

	case patOptional:
		mark := len(*caps)
		if match(p.subs[0], toks, pos, caps, k) {
			return true
		}
		*caps = (*caps)[:mark]
		return k(pos)

	case patEmbed:
		var sub []capture
		return match(p.rule.pattern, toks, pos, &sub, func(end int) bool {
			fact, err := p.rule.build(sub)
			if err != nil {
				return false
			}
			*caps = append(*caps, capture{field: p.field, value: fact})
			if k(end) {
				return true
			}
			*caps = (*caps)[:len(*caps)-1]
			return false
		})

	default:
		panic(fmt.Sprintf("grammar: unknown pattern kind %d", p.kind))
	}
}

func matchSeq(subs []*Pattern, toks []token, pos int, caps *[]capture, k func(pos int) bool) bool {
	if len(subs) == 0 {
		return k(pos)
	}
	return match(subs[0], toks, pos, caps, func(next int) bool {
		return matchSeq(subs[1:], toks, next, caps, k)
	})
}

// emit records the matched value when the node captures, then continues.
func emit(p *Pattern, value any, caps *[]capture, next int, k func(pos int) bool) bool {
	if p.field == "" {
		return k(next)
	}
	*caps = append(*caps, capture{field: p.field, value: value})
	if k(next) {
		return true
	}
	*caps = (*caps)[:len(*caps)-1]
	return false
}

// capValue returns the first captured value for field.
func capValue(caps []capture, field string) (any, bool) {
	for _, c := range caps {
		if c.field == field {
			return c.value, true
		}
	}
	return nil, false
}

// capInt reads a captured number that may come either from a numeric-range
// node (int) or from a dictionary substitution (digit string).
func capInt(caps []capture, field string) (int, bool) {
	v, ok := capValue(caps, field)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case string:
		var out int
		if _, err := fmt.Sscanf(n, "%d", &out); err != nil {
			return 0, false
		}
		return out, true
	}
	return 0, false
}

func capString(caps []capture, field string) (string, bool) {
	v, ok := capValue(caps, field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
