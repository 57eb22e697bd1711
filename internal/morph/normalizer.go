// Package morph supplies the lexical normalizer the grammar depends on: it
// reduces an inflected Russian word form to its dictionary head form.
//
// The grammar's vocabulary is closed, so instead of a general morphological
// analyzer this is a reverse inflection table over the word forms that
// actually occur around the lexicon's headwords. Unknown words pass through
// lowercased and with ё folded to е.
package morph

import "strings"

// forms maps each headword to the inflected forms that should normalize to
// it. The headword itself is implied.
var forms = map[string][]string{
	// temporal units
	"минута":  {"минуту", "минуты", "минут", "минутам", "минуте"},
	"час":     {"часа", "часу", "часов", "часам", "часе", "часик", "часика", "часиков"},
	"день":    {"дня", "дню", "дней", "дням", "дне", "днем"},
	"неделя":  {"неделю", "недели", "недель", "неделям", "неделе"},
	"месяц":   {"месяца", "месяцу", "месяцев", "месяцам", "месяце"},
	"год":     {"года", "году", "годов", "годам", "годе", "лет"},
	"полчаса": {"полчасика"},

	// times of a day
	"утро":  {"утра", "утру", "утром", "утре"},
	"вечер": {"вечера", "вечеру", "вечером", "вечере"},
	"ночь":  {"ночи", "ночью", "ночей"},

	// weekdays
	"понедельник": {"понедельника", "понедельнику", "понедельником", "понедельнике"},
	"вторник":     {"вторника", "вторнику", "вторником", "вторнике"},
	"среда":       {"среду", "среды", "среде", "средой"},
	"четверг":     {"четверга", "четвергу", "четвергом", "четверге"},
	"пятница":     {"пятницу", "пятницы", "пятнице", "пятницей"},
	"суббота":     {"субботу", "субботы", "субботе", "субботой"},
	"воскресенье": {"воскресенья", "воскресенью", "воскресеньем"},

	// weekday discriminators
	"эта":       {"эту", "этой", "этот", "это", "этом"},
	"следующая": {"следующую", "следующей", "следующий", "следующее", "следующем"},
	"ближайшая": {"ближайшую", "ближайшей", "ближайший", "ближайшее", "ближайшем"},

	// spelled hour numerals
	"два":         {"две", "двух"},
	"три":         {"трех"},
	"четыре":      {"четырех"},
	"пять":        {"пяти"},
	"шесть":       {"шести"},
	"семь":        {"семи"},
	"восемь":      {"восьми"},
	"девять":      {"девяти"},
	"десять":      {"десяти"},
	"одиннадцать": {"одинадцать", "одиннадцати"},
	"двенадцать":  {"двенадцати"},

	// phrase glue
	"в":       {"во"},
	"напомни": {"напомните"},
}

// Dict is a table-driven normalizer over the closed reminder vocabulary.
type Dict struct {
	headwords map[string]string
}

// NewRussian builds the normalizer for the Russian reminder vocabulary.
func NewRussian() *Dict {
	d := &Dict{headwords: make(map[string]string, 256)}
	for head, infl := range forms {
		d.headwords[head] = head
		for _, f := range infl {
			d.headwords[f] = head
		}
	}
	return d
}

// Normalize reduces word to its head form. Matching is case-insensitive
// and folds ё to е.
func (d *Dict) Normalize(word string) string {
	w := strings.ToLower(word)
	w = strings.ReplaceAll(w, "ё", "е")
	if head, ok := d.headwords[w]; ok {
		return head
	}
	return w
}
