package grammar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoment(t *testing.T, g *Grammar, text string) *Moment {
	t.Helper()
	m := g.ExtractFirstMoment(text)
	require.NotNil(t, m, "phrase does not match moment pattern: %q", text)
	return m
}

func TestResolveDayTime(t *testing.T) {
	g := newTestGrammar()

	tests := []struct {
		text         string
		hour, minute int
	}{
		{"14:00", 14, 0},
		{"два часа дня", 14, 0},
		{"два дня", 14, 0},
		{"12 ночи", 0, 0},
		{"12 вечера", 0, 0},
		{"12 утра", 12, 0},
		{"12 дня", 12, 0},
		{"3 утра", 3, 0},
		{"11 вечера", 23, 0},
		{"23:45", 23, 45},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dt := g.MatchDayTime(tt.text)
			require.NotNil(t, dt, "phrase does not match day time pattern: %q", tt.text)

			hour, minute, _, err := resolveDayTime(dt, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

// Every spoken hour 1-11 with an afternoon marker lands in the second half
// of the day.
func TestResolveDayTimePMShift(t *testing.T) {
	for hour := 1; hour <= 11; hour++ {
		for _, amPm := range []TimeOfDay{Day, Evening} {
			hr, _, _, err := resolveDayTime(&DayTime{Hour: hour, TimeOfDay: amPm}, nil)
			require.NoError(t, err)
			assert.Equal(t, hour+12, hr, "hour %d %s", hour, amPm)
		}
		for _, amPm := range []TimeOfDay{Morning, Night} {
			hr, _, _, err := resolveDayTime(&DayTime{Hour: hour, TimeOfDay: amPm}, nil)
			require.NoError(t, err)
			assert.Equal(t, hour, hr, "hour %d %s", hour, amPm)
		}
	}
}

func TestResolveDayTimeAmbiguous(t *testing.T) {
	for _, hour := range []int{1, 4, 11, 12} {
		_, _, _, err := resolveDayTime(&DayTime{Hour: hour}, nil)

		var clarErr *ClarificationRequiredError
		require.ErrorAs(t, err, &clarErr, "hour %d", hour)
		require.Len(t, clarErr.Required, 1)
		assert.Equal(t, TimeOfDayRequest{Hour: hour}, clarErr.Required[0])
	}

	// Above 12 there is nothing to disambiguate.
	hr, _, _, err := resolveDayTime(&DayTime{Hour: 13}, nil)
	require.NoError(t, err)
	assert.Equal(t, 13, hr)
}

func TestResolveDayTimeClarified(t *testing.T) {
	clars := []Clarification{TimeOfDayClarification{TimeOfDay: Evening}}

	hr, _, _, err := resolveDayTime(&DayTime{Hour: 4}, clars)
	require.NoError(t, err)
	assert.Equal(t, 16, hr)

	// Strict notation never consults AM/PM, clarified or not.
	hr, minute, _, err := resolveDayTime(&DayTime{Hour: 9, Minute: 30, Strict: true}, clars)
	require.NoError(t, err)
	assert.Equal(t, 9, hr)
	assert.Equal(t, 30, minute)
}

func TestResolveScenarios(t *testing.T) {
	g := newTestGrammar()
	base := time.Date(2018, 9, 2, 23, 45, 0, 0, time.UTC)

	tests := []struct {
		text     string
		base     time.Time
		expected time.Time
	}{
		{
			"через полчаса", base,
			time.Date(2018, 9, 3, 0, 15, 0, 0, time.UTC),
		},
		{
			"через час", base,
			time.Date(2018, 9, 3, 0, 45, 0, 0, time.UTC),
		},
		{
			"через 2 часа", base,
			time.Date(2018, 9, 3, 1, 45, 0, 0, time.UTC),
		},
		{
			"через 10 минут", base,
			time.Date(2018, 9, 2, 23, 55, 0, 0, time.UTC),
		},
		{
			"через день", base,
			time.Date(2018, 9, 3, 23, 45, 0, 0, time.UTC),
		},
		{
			"через неделю", base,
			time.Date(2018, 9, 9, 23, 45, 0, 0, time.UTC),
		},
		{
			"через месяц", base,
			time.Date(2018, 10, 2, 23, 45, 0, 0, time.UTC),
		},
		{
			"через год", base,
			time.Date(2019, 9, 2, 23, 45, 0, 0, time.UTC),
		},
		{
			"завтра в 14:00",
			time.Date(2018, 9, 2, 13, 45, 0, 0, time.UTC),
			time.Date(2018, 9, 3, 14, 0, 0, 0, time.UTC),
		},
		{
			"послезавтра в 4 дня",
			time.Date(2018, 9, 2, 13, 45, 0, 0, time.UTC),
			time.Date(2018, 9, 4, 16, 0, 0, 0, time.UTC),
		},
		{
			"сегодня в 11 вечера",
			time.Date(2018, 9, 2, 13, 45, 0, 0, time.UTC),
			time.Date(2018, 9, 2, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			moment := mustMoment(t, g, tt.text)

			actual, err := Resolve(moment, tt.base, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestResolveMonthClamping(t *testing.T) {
	g := newTestGrammar()
	moment := mustMoment(t, g, "через месяц")

	// Non-leap year: Jan 31 + 1 month is Feb 28, never Mar 2.
	actual, err := Resolve(moment, time.Date(2018, 1, 31, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 2, 28, 12, 0, 0, 0, time.UTC), actual)

	// Leap year keeps the 29th.
	actual, err = Resolve(moment, time.Date(2020, 1, 31, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 2, 29, 12, 0, 0, 0, time.UTC), actual)
}

// Amounts the grammar accepts can exceed what int64-nanosecond durations
// represent; those must fail loudly instead of wrapping to a wrong instant.
func TestResolveIntervalOverflow(t *testing.T) {
	base := time.Date(2018, 9, 2, 23, 45, 0, 0, time.UTC)

	for _, unit := range []IntervalUnit{UnitMinute, UnitHour} {
		_, err := resolveInterval(&RelativeInterval{Unit: unit, Amount: maxIntervalAmount}, base)
		var invErr *InvalidRelativeDateError
		require.ErrorAs(t, err, &invErr, "unit %s", unit)
	}

	// Large but representable amounts still resolve exactly.
	actual, err := resolveInterval(&RelativeInterval{Unit: UnitHour, Amount: 8760}, base)
	require.NoError(t, err)
	assert.Equal(t, base.Add(8760*time.Hour), actual)
}

func TestResolveRelativeDayNeedsTime(t *testing.T) {
	g := newTestGrammar()
	base := time.Date(2018, 9, 2, 14, 45, 0, 0, time.UTC)

	moment := mustMoment(t, g, "завтра")

	_, err := Resolve(moment, base, nil)
	var clarErr *ClarificationRequiredError
	require.ErrorAs(t, err, &clarErr)
	require.Len(t, clarErr.Required, 1)
	// The suggested default is the reference instant's own time of day.
	assert.Equal(t, DayTimeRequest{Suggested: base}, clarErr.Required[0])

	// Supplying the missing time resolves.
	clars := []Clarification{DayTimeClarification{
		DayTime: &DayTime{Hour: 15, Minute: 0, Strict: true},
	}}
	actual, err := Resolve(moment, base, clars)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 9, 3, 15, 0, 0, 0, time.UTC), actual)
}

func TestResolveChainedClarifications(t *testing.T) {
	g := newTestGrammar()
	base := time.Date(2018, 9, 2, 14, 45, 0, 0, time.UTC)
	moment := mustMoment(t, g, "завтра")

	// An ambiguous clarification time triggers a second clarification.
	clars := []Clarification{DayTimeClarification{DayTime: &DayTime{Hour: 3}}}
	_, err := Resolve(moment, base, clars)
	var clarErr *ClarificationRequiredError
	require.ErrorAs(t, err, &clarErr)
	assert.Equal(t, TimeOfDayRequest{Hour: 3}, clarErr.Required[0])

	clars = append(clars, TimeOfDayClarification{TimeOfDay: Day})
	actual, err := Resolve(moment, base, clars)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2018, 9, 3, 15, 0, 0, 0, time.UTC), actual)
}

func TestResolveIdempotent(t *testing.T) {
	g := newTestGrammar()
	base := time.Date(2018, 9, 2, 14, 45, 0, 0, time.UTC)
	moment := mustMoment(t, g, "завтра в 3 дня")

	first, err := Resolve(moment, base, nil)
	require.NoError(t, err)
	second, err := Resolve(moment, base, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveDayOfWeekUnsupported(t *testing.T) {
	g := newTestGrammar()
	moment := mustMoment(t, g, "в эту пятницу в 14:00")

	_, err := Resolve(moment, time.Date(2018, 9, 2, 14, 45, 0, 0, time.UTC), nil)
	var invErr *InvalidRelativeDateError
	require.ErrorAs(t, err, &invErr)
}

func TestResolveYesterdayUnsupported(t *testing.T) {
	g := newTestGrammar()
	moment := mustMoment(t, g, "вчера в 14:00")

	_, err := Resolve(moment, time.Date(2018, 9, 2, 14, 45, 0, 0, time.UTC), nil)
	var invErr *InvalidRelativeDateError
	require.ErrorAs(t, err, &invErr)
}
