package grammar

import (
	"testing"

	"github.com/sandevgo/dobby/internal/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureAll is a rule builder that exposes the raw captures for assertions.
type capturedFact struct {
	caps []capture
}

func (*capturedFact) isFact() {}

func passthrough(caps []capture) (Fact, error) {
	cp := make([]capture, len(caps))
	copy(cp, caps)
	return &capturedFact{caps: cp}, nil
}

func testTokens(t *testing.T, text string) []token {
	t.Helper()
	return scan(text, morph.NewRussian())
}

func TestScanStrictTime(t *testing.T) {
	toks := testTokens(t, "завтра в 14:30 или в 9:05:59")

	var times []token
	for _, tok := range toks {
		if tok.kind == tokenTime {
			times = append(times, tok)
		}
	}

	require.Len(t, times, 2)
	assert.Equal(t, 14, times[0].h)
	assert.Equal(t, 30, times[0].m)
	assert.Equal(t, 9, times[1].h)
	assert.Equal(t, 5, times[1].m)
	assert.Equal(t, 59, times[1].s)
}

func TestScanRejectsOutOfRangeTime(t *testing.T) {
	// 25:00 is not a clock time; it lexes as number, punct, number.
	toks := testTokens(t, "25:00")
	require.Len(t, toks, 3)
	assert.Equal(t, tokenNumber, toks[0].kind)
	assert.Equal(t, tokenPunct, toks[1].kind)
	assert.Equal(t, tokenNumber, toks[2].kind)
}

func TestSequenceRequiresAdjacency(t *testing.T) {
	rule := NewRule("seq", Sequence(Normalized("через"), Normalized("час")), passthrough)

	_, _, ok := matchAt(rule, testTokens(t, "через час"), 0)
	assert.True(t, ok)

	// An intervening token breaks the sequence.
	_, _, ok = matchAt(rule, testTokens(t, "через один час"), 0)
	assert.False(t, ok)
}

func TestAlternationOrder(t *testing.T) {
	// Both alternatives match; the first declared wins.
	rule := NewRule("alt", Alternation(
		Dictionary(map[string]string{"час": "first"}).Bind("v"),
		Dictionary(map[string]string{"час": "second"}).Bind("v"),
	), passthrough)

	fact, _, ok := matchAt(rule, testTokens(t, "час"), 0)
	require.True(t, ok)

	v, _ := capString(fact.(*capturedFact).caps, "v")
	assert.Equal(t, "first", v)
}

func TestOptionalBacktracks(t *testing.T) {
	// The optional number greedily eats "час" (the numeral one) and must
	// give it back for the unit to match.
	rule := NewRule("interval", Sequence(
		Normalized("через"),
		Optional(Dictionary(wordsHourOfDay).Bind("amount")),
		Dictionary(wordsTemporalUnit).Bind("unit"),
	), passthrough)

	fact, end, ok := matchAt(rule, testTokens(t, "через час"), 0)
	require.True(t, ok)
	assert.Equal(t, 2, end)

	caps := fact.(*capturedFact).caps
	_, hasAmount := capValue(caps, "amount")
	assert.False(t, hasAmount, "failed branch left a capture behind")

	unit, _ := capString(caps, "unit")
	assert.Equal(t, string(UnitHour), unit)
}

// A bind placed on the alternation itself must capture the value of
// whichever option matched, spelled hour words and digits alike.
func TestAlternationBindCapturesWinner(t *testing.T) {
	rule := NewRule("hour", Alternation(
		Dictionary(wordsHourOfDay),
		NumericRange(0, 24),
	).Bind("hour"), passthrough)

	fact, _, ok := matchAt(rule, testTokens(t, "четыре"), 0)
	require.True(t, ok)
	hour, hasHour := capInt(fact.(*capturedFact).caps, "hour")
	require.True(t, hasHour, "dictionary option did not capture under the alternation's field")
	assert.Equal(t, 4, hour)

	fact, _, ok = matchAt(rule, testTokens(t, "16"), 0)
	require.True(t, ok)
	hour, hasHour = capInt(fact.(*capturedFact).caps, "hour")
	require.True(t, hasHour, "numeric option did not capture under the alternation's field")
	assert.Equal(t, 16, hour)
}

func TestNumericRangeBounds(t *testing.T) {
	rule := NewRule("num", NumericRange(0, 24).Bind("n"), passthrough)

	fact, _, ok := matchAt(rule, testTokens(t, "24"), 0)
	require.True(t, ok)
	n, _ := capInt(fact.(*capturedFact).caps, "n")
	assert.Equal(t, 24, n)

	_, _, ok = matchAt(rule, testTokens(t, "25"), 0)
	assert.False(t, ok)

	// Words are not numbers.
	_, _, ok = matchAt(rule, testTokens(t, "четыре"), 0)
	assert.False(t, ok)
}

func TestDictionarySubstitutesValue(t *testing.T) {
	rule := NewRule("dict", Dictionary(wordsHourOfDay).Bind("hour"), passthrough)

	// Inflected form normalizes to the headword before lookup.
	fact, _, ok := matchAt(rule, testTokens(t, "две"), 0)
	require.True(t, ok)

	hour, hasHour := capInt(fact.(*capturedFact).caps, "hour")
	require.True(t, hasHour)
	assert.Equal(t, 2, hour)
}

func TestEmbedCapturesNestedFact(t *testing.T) {
	g := newTestGrammar()
	rule := NewRule("wrap", Sequence(
		Normalized("завтра"),
		Embed(g.DayTime, "daytime"),
	), passthrough)

	fact, _, ok := matchAt(rule, testTokens(t, "завтра в 4 дня"), 0)
	require.True(t, ok)

	v, hasDayTime := capValue(fact.(*capturedFact).caps, "daytime")
	require.True(t, hasDayTime)
	assert.Equal(t, &DayTime{Hour: 4, TimeOfDay: Day}, v)
}

func TestFindAllNonOverlapping(t *testing.T) {
	g := newTestGrammar()

	matches := g.findAll("завтра в 3 дня послезавтра", g.Moment)
	require.Len(t, matches, 2)
	assert.Less(t, matches[0].End, matches[1].Start)
}
