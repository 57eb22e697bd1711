package grammar

import "errors"

// maxIntervalAmount bounds the numeric amount of "через X" intervals. The
// bound is deliberate: anything above it is treated as noise, not a date.
const maxIntervalAmount = 1_000_000_000

// Grammar is the compiled rule set. It is immutable once built; construct
// it once and share it freely, matching holds no state between calls.
type Grammar struct {
	norm Normalizer

	// DayTime matches a bare time of day; it is also what clarification
	// answers ("в 15:00") are parsed with.
	DayTime *Rule
	// Moment matches a full temporal expression.
	Moment *Rule
	// Preamble matches the "напомни мне" instruction phrase.
	Preamble *Rule
}

// New compiles the grammar against the given normalizer.
func New(norm Normalizer) *Grammar {
	g := &Grammar{norm: norm}

	g.DayTime = NewRule(
		"DAY_TIME",
		Alternation(
			Sequence(
				Optional(Normalized("в")),
				StrictTime().Bind("time"),
			),
			Sequence(
				Optional(Normalized("в")),
				Alternation(
					Dictionary(wordsHourOfDay),
					NumericRange(0, 24),
				).Bind("hour"),
				Optional(Normalized("час")),
				Optional(Dictionary(wordsTimeOfDay).Bind("ampm")),
			),
		),
		buildDayTime,
	)

	relativeDay := NewRule(
		"RELATIVE_DAY",
		Sequence(
			Optional(Normalized("в")),
			Dictionary(wordsRelativeDay).Bind("day"),
			Optional(Embed(g.DayTime, "daytime")),
		),
		buildRelativeDay,
	)

	dayOfWeek := NewRule(
		"DAY_OF_WEEK",
		Sequence(
			Optional(Normalized("в")),
			Optional(Dictionary(wordsDiscriminator).Bind("disc")),
			Dictionary(wordsDayOfWeek).Bind("weekday"),
			Optional(Embed(g.DayTime, "daytime")),
		),
		buildDayOfWeek,
	)

	relativeInterval := NewRule(
		"RELATIVE_INTERVAL",
		Sequence(
			Normalized("через"),
			Alternation(
				Sequence(
					Optional(Alternation(
						Dictionary(wordsHourOfDay),
						NumericRange(0, maxIntervalAmount),
					).Bind("amount")),
					Dictionary(wordsTemporalUnit).Bind("unit"),
				),
				Dictionary(wordsNamedInterval).Bind("unit"),
			),
		),
		buildRelativeInterval,
	)

	// Alternation order is the precedence order.
	g.Moment = NewRule(
		"MOMENT",
		Alternation(
			Embed(relativeDay, "fact"),
			Embed(dayOfWeek, "fact"),
			Embed(relativeInterval, "fact"),
		),
		buildMoment,
	)

	g.Preamble = NewRule(
		"REMINDER_PREAMBLE",
		Sequence(
			Normalized("напомни"),
			Optional(Normalized("мне").Bind("target")),
		),
		buildPreamble,
	)

	return g
}

func buildDayTime(caps []capture) (Fact, error) {
	if v, ok := capValue(caps, "time"); ok {
		return v.(*DayTime), nil
	}

	hour, ok := capInt(caps, "hour")
	if !ok {
		return nil, errors.New("day time without an hour")
	}

	dt := &DayTime{Hour: hour}
	if ampm, ok := capString(caps, "ampm"); ok {
		dt.TimeOfDay = TimeOfDay(ampm)
	}
	return dt, nil
}

func buildRelativeDay(caps []capture) (Fact, error) {
	day, ok := capString(caps, "day")
	if !ok {
		return nil, errors.New("relative day without a day word")
	}

	fact := &RelativeDay{Day: RelativeDayOption(day)}
	if v, ok := capValue(caps, "daytime"); ok {
		fact.DayTime = v.(*DayTime)
	}
	return fact, nil
}

func buildDayOfWeek(caps []capture) (Fact, error) {
	weekday, ok := capString(caps, "weekday")
	if !ok {
		return nil, errors.New("day of week without a weekday word")
	}

	fact := &DayOfWeek{Day: weekday}
	if disc, ok := capString(caps, "disc"); ok {
		fact.Discriminator = UnitRelativePosition(disc)
	}
	if v, ok := capValue(caps, "daytime"); ok {
		fact.DayTime = v.(*DayTime)
	}
	return fact, nil
}

func buildRelativeInterval(caps []capture) (Fact, error) {
	unit, ok := capString(caps, "unit")
	if !ok {
		return nil, errors.New("relative interval without a unit")
	}

	fact := &RelativeInterval{Unit: IntervalUnit(unit)}
	if amount, ok := capInt(caps, "amount"); ok {
		fact.Amount = amount
	}
	return fact, nil
}

func buildMoment(caps []capture) (Fact, error) {
	v, ok := capValue(caps, "fact")
	if !ok {
		return nil, errors.New("moment without an effective date")
	}
	return &Moment{EffectiveDate: v.(Fact)}, nil
}

func buildPreamble(caps []capture) (Fact, error) {
	fact := &ReminderPreamble{}
	if target, ok := capString(caps, "target"); ok {
		fact.Target = target
	}
	return fact, nil
}
