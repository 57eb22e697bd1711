package reminder

import (
	"errors"
	"strings"
	"time"

	"github.com/sandevgo/dobby/internal/grammar"
)

// Request is a classified inbound phrase: the reminder body plus the
// recognized temporal expression, if any.
type Request struct {
	What   string
	Moment *grammar.Moment
}

// tokenClass collapses a phrase token to its shape for pattern matching.
type tokenClass int

const (
	classRaw tokenClass = iota
	classMoment
	classPreamble
)

// The phrase shapes accepted as a natural reminder, mirroring how people
// actually order the parts: "напомни мне завтра в 3 позвонить маме",
// "позвонить маме через 10 минут" and so on.
var reminderPatterns = [][]tokenClass{
	{classPreamble, classMoment, classRaw},
	{classPreamble, classRaw, classMoment},
	{classRaw, classMoment},
	{classMoment, classRaw},
}

// Classify matches the token sequence of a phrase against the accepted
// reminder shapes and extracts the body and the moment.
func Classify(tokens []grammar.PhraseToken) (*Request, bool) {
	classes := make([]tokenClass, len(tokens))
	for i, t := range tokens {
		switch t.Fact.(type) {
		case nil:
			classes[i] = classRaw
		case *grammar.Moment:
			classes[i] = classMoment
		case *grammar.ReminderPreamble:
			classes[i] = classPreamble
		default:
			return nil, false
		}
	}

	if !matchesAnyPattern(classes) {
		return nil, false
	}

	req := &Request{}
	for _, t := range tokens {
		switch fact := t.Fact.(type) {
		case nil:
			req.What = t.Text
		case *grammar.Moment:
			req.Moment = fact
		}
	}
	if req.Moment == nil {
		return nil, false
	}
	return req, true
}

func matchesAnyPattern(classes []tokenClass) bool {
	for _, pattern := range reminderPatterns {
		if len(pattern) != len(classes) {
			continue
		}
		same := true
		for i := range pattern {
			if pattern[i] != classes[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// Conversation drives the clarification dialogue for one reminder request:
// try to resolve, ask for exactly what is missing, feed the answer back in,
// repeat. The clarification list only ever grows; the resolver never
// consumes it.
type Conversation struct {
	g       *grammar.Grammar
	request *Request

	clarifications []grammar.Clarification
	pending        grammar.ClarificationRequest
}

func NewConversation(g *grammar.Grammar, request *Request) *Conversation {
	return &Conversation{g: g, request: request}
}

func (c *Conversation) Request() *Request { return c.request }

// Advance attempts resolution against base. It returns the absolute time on
// success, or the question to ask the user when a clarification is still
// missing. Any other error is a hard failure.
func (c *Conversation) Advance(base time.Time) (time.Time, string, error) {
	due, err := grammar.Resolve(c.request.Moment, base, c.clarifications)
	if err == nil {
		c.pending = nil
		return due, "", nil
	}

	var clarErr *grammar.ClarificationRequiredError
	if errors.As(err, &clarErr) {
		c.pending = clarErr.Required[0]
		return time.Time{}, c.pending.Question(), nil
	}

	return time.Time{}, "", err
}

// Answer feeds the user's reply for the pending clarification. It reports
// false when the reply does not parse as the requested kind of fact, in
// which case the caller should re-ask.
func (c *Conversation) Answer(text string) bool {
	switch c.pending.(type) {
	case grammar.DayTimeRequest:
		dt := c.g.MatchDayTime(strings.TrimSpace(text))
		if dt == nil {
			return false
		}
		c.clarifications = append(c.clarifications, grammar.DayTimeClarification{DayTime: dt})
		return true

	case grammar.TimeOfDayRequest:
		tod, ok := c.g.MatchTimeOfDay(strings.TrimSpace(text))
		if !ok {
			return false
		}
		c.clarifications = append(c.clarifications, grammar.TimeOfDayClarification{TimeOfDay: tod})
		return true
	}
	return false
}
