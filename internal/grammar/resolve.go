package grammar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandevgo/dobby/pkg/dateutil"
)

// Clarification is an answer the caller collected for a previously
// requested piece of missing information. Resolve only reads the list; it
// never mutates or consumes it, so re-resolving with the same list is
// idempotent.
type Clarification interface {
	isClarification()
}

// DayTimeClarification supplies the time of day for a phrase that had none
// ("завтра" -> "во сколько?").
type DayTimeClarification struct {
	DayTime *DayTime
}

// TimeOfDayClarification supplies the AM/PM half for an ambiguous hour
// ("в 4" -> morning or afternoon?).
type TimeOfDayClarification struct {
	TimeOfDay TimeOfDay
}

func (DayTimeClarification) isClarification()   {}
func (TimeOfDayClarification) isClarification() {}

// ClarificationRequest names one piece of information Resolve still needs.
type ClarificationRequest interface {
	isClarificationRequest()
	// Question is the human prompt for the missing fact.
	Question() string
}

// DayTimeRequest asks for a time of day. Suggested carries the reference
// instant so the caller can offer its clock time as the default.
type DayTimeRequest struct {
	Suggested time.Time
}

// TimeOfDayRequest asks whether the ambiguous Hour is AM or PM.
type TimeOfDayRequest struct {
	Hour int
}

func (DayTimeRequest) isClarificationRequest()   {}
func (TimeOfDayRequest) isClarificationRequest() {}

func (r DayTimeRequest) Question() string {
	return fmt.Sprintf("Во сколько? (например, в %s)", r.Suggested.Format("15:04"))
}

func (r TimeOfDayRequest) Question() string {
	return fmt.Sprintf("%d утра, дня, вечера или ночи?", r.Hour)
}

// ClarificationRequiredError signals that the moment is well-formed but
// under-specified. It lists exactly what is missing so the caller can
// prompt for it and call Resolve again with the answers appended.
type ClarificationRequiredError struct {
	Required []ClarificationRequest
}

func (e *ClarificationRequiredError) Error() string {
	parts := make([]string, len(e.Required))
	for i, r := range e.Required {
		parts[i] = fmt.Sprintf("%T", r)
	}
	return "clarification required: " + strings.Join(parts, ", ")
}

// InvalidRelativeDateError signals a structurally unsupported fact
// combination. Not recoverable by asking the user for more input.
type InvalidRelativeDateError struct {
	Reason string
}

func (e *InvalidRelativeDateError) Error() string {
	return "invalid relative date: " + e.Reason
}

func clarificationRequired(reqs ...ClarificationRequest) error {
	return &ClarificationRequiredError{Required: reqs}
}

func invalidRelativeDate(format string, args ...any) error {
	return &InvalidRelativeDateError{Reason: fmt.Sprintf(format, args...)}
}

// Resolve turns a recognized moment into an absolute time relative to base.
// It either returns the time, or a *ClarificationRequiredError naming the
// missing facts, or a *InvalidRelativeDateError for unsupported
// combinations. No partial results.
func Resolve(m *Moment, base time.Time, clarifications []Clarification) (time.Time, error) {
	switch fact := m.EffectiveDate.(type) {
	case *RelativeInterval:
		return resolveInterval(fact, base)
	case *RelativeDay:
		return resolveRelativeDay(fact, base, clarifications)
	case *DayOfWeek:
		// Recognized but deliberately unresolved: nearest-vs-next policy
		// needs product input before this can do anything sensible.
		return time.Time{}, invalidRelativeDate("day-of-week resolution is not supported: %s", fact.Day)
	default:
		return time.Time{}, invalidRelativeDate("unsupported relative date type %T", fact)
	}
}

func resolveInterval(fact *RelativeInterval, base time.Time) (time.Time, error) {
	amount := fact.Amount
	if amount == 0 {
		amount = 1
	}

	switch fact.Unit {
	case UnitMinute:
		return addDuration(base, amount, time.Minute)
	case UnitHour:
		return addDuration(base, amount, time.Hour)
	case UnitHalfAnHour:
		return base.Add(30 * time.Minute), nil
	case UnitDay:
		return base.AddDate(0, 0, amount), nil
	case UnitWeek:
		return base.AddDate(0, 0, 7*amount), nil
	case UnitMonth:
		return dateutil.AddMonths(base, amount), nil
	case UnitYear:
		return dateutil.AddMonths(base, 12*amount), nil
	default:
		return time.Time{}, invalidRelativeDate("unknown unit/amount combination: %s, %d", fact.Unit, fact.Amount)
	}
}

// addDuration shifts base by amount units. Durations are int64 nanoseconds
// under the hood, so amounts the grammar accepts can overflow; those are
// rejected rather than silently wrapped.
func addDuration(base time.Time, amount int, unit time.Duration) (time.Time, error) {
	if int64(amount) > math.MaxInt64/int64(unit) {
		return time.Time{}, invalidRelativeDate("interval amount out of range: %d", amount)
	}
	return base.Add(time.Duration(amount) * unit), nil
}

func resolveRelativeDay(fact *RelativeDay, base time.Time, clarifications []Clarification) (time.Time, error) {
	dayTime := fact.DayTime
	for _, c := range clarifications {
		if dtc, ok := c.(DayTimeClarification); ok {
			dayTime = dtc.DayTime
			break
		}
	}

	if dayTime == nil {
		return time.Time{}, clarificationRequired(DayTimeRequest{Suggested: base})
	}

	hour, minute, second, err := resolveDayTime(dayTime, clarifications)
	if err != nil {
		return time.Time{}, err
	}

	var offset int
	switch fact.Day {
	case Today:
		offset = 0
	case Tomorrow:
		offset = 1
	case TheDayAfterTomorrow:
		offset = 2
	default:
		return time.Time{}, invalidRelativeDate("unsupported relative day option: %s", fact.Day)
	}

	t := time.Date(base.Year(), base.Month(), base.Day(), hour, minute, second, 0, base.Location())
	return t.AddDate(0, 0, offset), nil
}

// resolveDayTime maps a spoken time of day onto the 24-hour clock. Strict
// "HH:MM[:SS]" input passes through verbatim; everything at or below 12
// needs an AM/PM marker, spoken or supplied as a clarification.
func resolveDayTime(dt *DayTime, clarifications []Clarification) (hour, minute, second int, err error) {
	if dt.Strict {
		return dt.Hour, dt.Minute, dt.Second, nil
	}

	if dt.Hour > 12 {
		return dt.Hour, dt.Minute, dt.Second, nil
	}

	amPm := dt.TimeOfDay
	if amPm == "" {
		for _, c := range clarifications {
			if tc, ok := c.(TimeOfDayClarification); ok {
				amPm = tc.TimeOfDay
				break
			}
		}
	}

	if dt.Hour == 12 {
		switch amPm {
		case Night, Evening:
			return 0, dt.Minute, dt.Second, nil
		case Morning, Day:
			return 12, dt.Minute, dt.Second, nil
		case "":
			return 0, 0, 0, clarificationRequired(TimeOfDayRequest{Hour: dt.Hour})
		default:
			return 0, 0, 0, invalidRelativeDate("unknown time of a day: %s", amPm)
		}
	}

	switch amPm {
	case Morning, Night:
		return dt.Hour, dt.Minute, dt.Second, nil
	case Day, Evening:
		return dt.Hour + 12, dt.Minute, dt.Second, nil
	case "":
		return 0, 0, 0, clarificationRequired(TimeOfDayRequest{Hour: dt.Hour})
	default:
		return 0, 0, 0, invalidRelativeDate("unknown time of a day: %s", amPm)
	}
}
