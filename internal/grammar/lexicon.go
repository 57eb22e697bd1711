package grammar

// The lexicon maps normalized headwords to the values the grammar rules
// substitute for them. All keys must be dictionary head forms: reducing an
// inflected word to its head form is the normalizer's job, not the lexicon's.

var wordsRelativeDay = map[string]string{
	"сегодня":     string(Today),
	"завтра":      string(Tomorrow),
	"послезавтра": string(TheDayAfterTomorrow),
	"вчера":       string(Yesterday),
}

var wordsDayOfWeek = map[string]string{
	"понедельник": "понедельник",
	"вторник":     "вторник",
	"среда":       "среда",
	"четверг":     "четверг",
	"пятница":     "пятница",
	"суббота":     "суббота",
	"воскресенье": "воскресенье",
}

// Spelled hour numerals. "час" doubles as the numeral one: "в час дня".
var wordsHourOfDay = map[string]string{
	"час":         "1",
	"два":         "2",
	"три":         "3",
	"четыре":      "4",
	"пять":        "5",
	"шесть":       "6",
	"семь":        "7",
	"восемь":      "8",
	"девять":      "9",
	"десять":      "10",
	"одиннадцать": "11",
	"двенадцать":  "12",
}

var wordsTimeOfDay = map[string]string{
	"утро":  string(Morning),
	"день":  string(Day),
	"вечер": string(Evening),
	"ночь":  string(Night),
}

var wordsDiscriminator = map[string]string{
	"эта":       string(PositionThis),
	"следующая": string(PositionNext),
	"ближайшая": string(PositionClosest),
}

var wordsTemporalUnit = map[string]string{
	"минута": string(UnitMinute),
	"час":    string(UnitHour),
	"день":   string(UnitDay),
	"неделя": string(UnitWeek),
	"месяц":  string(UnitMonth),
	"год":    string(UnitYear),
}

var wordsNamedInterval = map[string]string{
	"полчаса": string(UnitHalfAnHour),
}
