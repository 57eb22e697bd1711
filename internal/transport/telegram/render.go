package telegram

import (
	"fmt"

	"github.com/sandevgo/dobby/internal/grammar"
	"github.com/sandevgo/dobby/pkg/conv"
	"gopkg.in/yaml.v3"
)

// renderMoment dumps a recognized fact as a YAML code block, converted to
// the HTML subset Telegram accepts.
func renderMoment(m *grammar.Moment) string {
	dump, err := yaml.Marshal(factToMap(m.EffectiveDate))
	if err != nil {
		return fmt.Sprintf("%+v", m.EffectiveDate)
	}
	return conv.MarkdownToTelegramHTML([]byte("```\n" + string(dump) + "```"))
}

func factToMap(fact grammar.Fact) map[string]any {
	switch f := fact.(type) {
	case *grammar.RelativeDay:
		out := map[string]any{"relative_day": string(f.Day)}
		if f.DayTime != nil {
			out["day_time"] = dayTimeToMap(f.DayTime)
		}
		return out

	case *grammar.DayOfWeek:
		out := map[string]any{"day_of_week": f.Day}
		if f.Discriminator != "" {
			out["discriminator"] = string(f.Discriminator)
		}
		if f.DayTime != nil {
			out["day_time"] = dayTimeToMap(f.DayTime)
		}
		return out

	case *grammar.RelativeInterval:
		out := map[string]any{"unit": string(f.Unit)}
		if f.Amount != 0 {
			out["amount"] = f.Amount
		}
		return out

	default:
		return map[string]any{"fact": fmt.Sprintf("%+v", fact)}
	}
}

func dayTimeToMap(dt *grammar.DayTime) map[string]any {
	out := map[string]any{"hour": dt.Hour}
	if dt.Minute != 0 || dt.Strict {
		out["minute"] = dt.Minute
	}
	if dt.TimeOfDay != "" {
		out["am_pm"] = string(dt.TimeOfDay)
	}
	if dt.Strict {
		out["strict_format"] = true
	}
	return out
}
