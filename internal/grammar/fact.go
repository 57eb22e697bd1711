package grammar

// Fact is a value produced by a successful rule match. Facts are immutable:
// they are built in one step from the captured tokens and never mutated
// afterwards.
type Fact interface {
	isFact()
}

// TimeOfDay is the AM/PM marker of a spoken time ("4 часа дня").
type TimeOfDay string

const (
	Morning TimeOfDay = "MORNING"
	Day     TimeOfDay = "DAY"
	Evening TimeOfDay = "EVENING"
	Night   TimeOfDay = "NIGHT"
)

// RelativeDayOption names a day relative to the reference date.
type RelativeDayOption string

const (
	Today               RelativeDayOption = "TODAY"
	Tomorrow            RelativeDayOption = "TOMORROW"
	TheDayAfterTomorrow RelativeDayOption = "THE_DAY_AFTER_TOMORROW"
	Yesterday           RelativeDayOption = "YESTERDAY"
)

// IntervalUnit is the unit of a "через X" interval. HalfAnHour is a named
// interval: it carries a fixed duration and never an amount.
type IntervalUnit string

const (
	UnitMinute     IntervalUnit = "MINUTE"
	UnitHour       IntervalUnit = "HOUR"
	UnitDay        IntervalUnit = "DAY"
	UnitWeek       IntervalUnit = "WEEK"
	UnitMonth      IntervalUnit = "MONTH"
	UnitYear       IntervalUnit = "YEAR"
	UnitHalfAnHour IntervalUnit = "HALF_AN_HOUR"
)

// UnitRelativePosition qualifies a weekday reference ("в эту пятницу").
type UnitRelativePosition string

const (
	PositionThis    UnitRelativePosition = "THIS"
	PositionNext    UnitRelativePosition = "NEXT"
	PositionClosest UnitRelativePosition = "CLOSEST"
)

// DayTime is a time of day. TimeOfDay is empty when the phrase carried no
// AM/PM marker; that is not the same as any default. Strict is set for
// explicit "HH:MM[:SS]" notation, which bypasses AM/PM disambiguation
// entirely.
type DayTime struct {
	Hour      int
	Minute    int
	Second    int
	TimeOfDay TimeOfDay
	Strict    bool
}

// RelativeDay is "завтра", "послезавтра в 4 дня" and the like.
type RelativeDay struct {
	Day     RelativeDayOption
	DayTime *DayTime // nil when the phrase carried no time
}

// DayOfWeek is "в эту пятницу в 4". Day holds the normalized weekday name.
type DayOfWeek struct {
	Discriminator UnitRelativePosition // empty when absent
	Day           string
	DayTime       *DayTime
}

// RelativeInterval is "через X". Amount is 0 when no number was given; the
// resolver treats that as 1 for countable units.
type RelativeInterval struct {
	Unit   IntervalUnit
	Amount int
}

// Moment is the top-level temporal fact. EffectiveDate is exactly one of
// *RelativeDay, *DayOfWeek or *RelativeInterval.
type Moment struct {
	EffectiveDate Fact
}

// ReminderPreamble is the instruction phrase preceding a reminder body
// ("напомни мне ...").
type ReminderPreamble struct {
	Target string // empty when no addressee was given
}

func (*DayTime) isFact()          {}
func (*RelativeDay) isFact()      {}
func (*DayOfWeek) isFact()        {}
func (*RelativeInterval) isFact() {}
func (*Moment) isFact()           {}
func (*ReminderPreamble) isFact() {}
