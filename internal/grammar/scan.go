package grammar

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Normalizer reduces an inflected Russian word form to its dictionary head
// form ("часа" -> "час"). Morphology is a collaborator capability; the
// grammar only consumes it through this interface.
type Normalizer interface {
	Normalize(word string) string
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenNumber
	tokenTime
	tokenPunct
)

// token is a single lexed item with its byte span in the source text.
type token struct {
	kind       tokenKind
	text       string
	norm       string // head form, words only
	num        int    // numbers only, -1 when out of integer range
	h, m, s    int    // time tokens only
	start, end int
}

// scan splits text into word, number, strict-time and punctuation tokens.
// Whitespace separates tokens and is never emitted.
func scan(text string, norm Normalizer) []token {
	var toks []token

	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRuneInString(text[i:])

		switch {
		case unicode.IsSpace(r):
			i += sz

		case unicode.IsLetter(r):
			j := i + sz
			for j < len(text) {
				r2, sz2 := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsLetter(r2) {
					break
				}
				j += sz2
			}
			word := text[i:j]
			toks = append(toks, token{kind: tokenWord, text: word, norm: norm.Normalize(word), start: i, end: j})
			i = j

		case unicode.IsDigit(r):
			j := digitsEnd(text, i)
			if tok, ok := scanTime(text, i, j); ok {
				toks = append(toks, tok)
				i = tok.end
			} else {
				n, err := strconv.Atoi(text[i:j])
				if err != nil {
					n = -1
				}
				toks = append(toks, token{kind: tokenNumber, text: text[i:j], num: n, start: i, end: j})
				i = j
			}

		default:
			toks = append(toks, token{kind: tokenPunct, text: text[i : i+sz], start: i, end: i + sz})
			i += sz
		}
	}

	return toks
}

// scanTime recognizes an "HH:MM[:SS]" run starting at start, where the hour
// digits end at hEnd. Out-of-range components disqualify the whole run, and
// the lexer falls back to a plain number token.
func scanTime(text string, start, hEnd int) (token, bool) {
	if hEnd-start > 2 || hEnd >= len(text) || text[hEnd] != ':' {
		return token{}, false
	}

	mStart := hEnd + 1
	mEnd := digitsEnd(text, mStart)
	if mEnd-mStart < 1 || mEnd-mStart > 2 {
		return token{}, false
	}

	end := mEnd
	s := 0
	if mEnd < len(text) && text[mEnd] == ':' {
		sStart := mEnd + 1
		sEnd := digitsEnd(text, sStart)
		if sEnd-sStart >= 1 && sEnd-sStart <= 2 {
			s, _ = strconv.Atoi(text[sStart:sEnd])
			end = sEnd
		}
	}

	h, _ := strconv.Atoi(text[start:hEnd])
	m, _ := strconv.Atoi(text[mStart:mEnd])
	if h > 24 || m > 59 || s > 59 {
		return token{}, false
	}

	return token{kind: tokenTime, text: text[start:end], h: h, m: m, s: s, start: start, end: end}, true
}

func digitsEnd(text string, i int) int {
	j := i
	for j < len(text) && text[j] >= '0' && text[j] <= '9' {
		j++
	}
	return j
}
