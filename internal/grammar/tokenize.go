package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Match is a recognized fact together with its byte span in the source text.
type Match struct {
	Fact       Fact
	Start, End int
}

// PhraseToken is one span of a segmented phrase: either a recognized fact
// (Fact != nil) or a stretch of raw text between facts.
type PhraseToken struct {
	Text       string
	Fact       Fact
	Start, End int
}

// IsRaw reports whether the token is plain unrecognized text.
func (t PhraseToken) IsRaw() bool { return t.Fact == nil }

// matchAt attempts rule r over toks starting at index i and returns the
// built fact and the index past the last consumed token.
func matchAt(r *Rule, toks []token, i int) (Fact, int, bool) {
	var caps []capture
	end := -1
	ok := match(r.pattern, toks, i, &caps, func(pos int) bool {
		end = pos
		return true
	})
	if !ok {
		return nil, 0, false
	}
	fact, err := r.build(caps)
	if err != nil {
		return nil, 0, false
	}
	return fact, end, true
}

// find returns the leftmost match of any of the rules; earlier rules win a
// tie at the same position.
func (g *Grammar) find(text string, rules ...*Rule) *Match {
	toks := scan(text, g.norm)
	for i := range toks {
		for _, r := range rules {
			if fact, end, ok := matchAt(r, toks, i); ok {
				return &Match{Fact: fact, Start: toks[i].start, End: toks[end-1].end}
			}
		}
	}
	return nil
}

// findAll returns every non-overlapping leftmost match, scanning left to
// right and never re-entering a span consumed by a previous match.
func (g *Grammar) findAll(text string, rules ...*Rule) []Match {
	toks := scan(text, g.norm)

	var matches []Match
	for i := 0; i < len(toks); {
		matched := false
		for _, r := range rules {
			if fact, end, ok := matchAt(r, toks, i); ok {
				matches = append(matches, Match{Fact: fact, Start: toks[i].start, End: toks[end-1].end})
				i = end
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return matches
}

// ExtractFirstMoment returns the first temporal expression found in free
// text, or nil when none matches.
func (g *Grammar) ExtractFirstMoment(text string) *Moment {
	m := g.find(text, g.Moment)
	if m == nil {
		return nil
	}
	return m.Fact.(*Moment)
}

// MatchDayTime parses text that must consist of a single time-of-day
// expression and nothing else. Used for clarification answers.
func (g *Grammar) MatchDayTime(text string) *DayTime {
	toks := scan(text, g.norm)
	if len(toks) == 0 {
		return nil
	}
	fact, end, ok := matchAt(g.DayTime, toks, 0)
	if !ok || end != len(toks) {
		return nil
	}
	return fact.(*DayTime)
}

// MatchTimeOfDay parses text that must consist of a single AM/PM word
// ("утра", "вечером"). Used for clarification answers.
func (g *Grammar) MatchTimeOfDay(text string) (TimeOfDay, bool) {
	toks := scan(text, g.norm)
	if len(toks) != 1 || toks[0].kind != tokenWord {
		return "", false
	}
	v, ok := wordsTimeOfDay[toks[0].norm]
	if !ok {
		return "", false
	}
	return TimeOfDay(v), true
}

// Tokenize segments free text into raw-text and fact spans using the full
// rule set (moments and reminder preambles).
func (g *Grammar) Tokenize(text string) []PhraseToken {
	return g.TokenizeWith(text, g.Moment, g.Preamble)
}

// TokenizeWith segments text against an explicit rule set. The output
// covers the input end to end: every gap between matches becomes a raw-text
// token, trimmed of whitespace, with empty gaps dropped. A single separator
// rune between adjacent spans belongs to neither.
func (g *Grammar) TokenizeWith(text string, rules ...*Rule) []PhraseToken {
	matches := g.findAll(text, rules...)

	var result []PhraseToken
	expected := 0

	for _, m := range matches {
		if m.Start > expected {
			if raw, ok := rawToken(text, expected, m.Start); ok {
				result = append(result, raw)
			}
		}
		result = append(result, PhraseToken{
			Text:  text[m.Start:m.End],
			Fact:  m.Fact,
			Start: m.Start,
			End:   m.End,
		})
		expected = skipRune(text, m.End)
	}

	if expected < len(text) {
		if raw, ok := rawToken(text, expected, len(text)); ok {
			result = append(result, raw)
		}
	}

	return result
}

// rawToken trims the [start, end) gap and reports whether anything is left.
func rawToken(text string, start, end int) (PhraseToken, bool) {
	for start < end {
		r, sz := utf8.DecodeRuneInString(text[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += sz
	}
	for end > start {
		r, sz := utf8.DecodeLastRuneInString(text[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= sz
	}
	if start >= end {
		return PhraseToken{}, false
	}
	return PhraseToken{Text: text[start:end], Start: start, End: end}, true
}

// skipRune steps over the single separator rune following a matched span.
func skipRune(text string, i int) int {
	if i >= len(text) {
		return i
	}
	_, sz := utf8.DecodeRuneInString(text[i:])
	return i + sz
}
