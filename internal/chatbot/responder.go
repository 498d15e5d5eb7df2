package chatbot

import (
	"strings"
	"unicode"
)

// Reply is the bot's answer to one message.
type Reply struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions"`
	Language    string   `json:"language"`
	Matched     bool     `json:"matched"`
}

// Responder answers messages from per-language keyword tables.
type Responder struct {
	languages map[string]Language
}

// NewResponder uses the built-in tables when languages is empty. English is
// the last resort for every message, so it is added from the built-in
// tables when missing.
func NewResponder(languages map[string]Language) *Responder {
	if len(languages) == 0 {
		return &Responder{languages: DefaultLanguages()}
	}
	langs := make(map[string]Language, len(languages)+1)
	for code, l := range languages {
		langs[code] = l
	}
	if _, ok := langs[English]; !ok {
		langs[English] = DefaultLanguages()[English]
	}
	return &Responder{languages: langs}
}

// Respond picks a language (lang if supported, otherwise by script) and
// returns the first matching entry's reply or the fallback.
func (r *Responder) Respond(message, lang string) Reply {
	l := r.language(message, lang)
	lower := strings.ToLower(message)
	for _, e := range l.Entries {
		for _, k := range e.Keywords {
			if strings.Contains(lower, k) {
				return Reply{Text: e.Reply, Suggestions: e.Suggestions, Language: l.Code, Matched: true}
			}
		}
	}
	return Reply{Text: l.Fallback, Suggestions: l.QuickReplies, Language: l.Code}
}

// QuickReplies are shown before the first message.
func (r *Responder) QuickReplies(lang string) []string {
	return r.language("", lang).QuickReplies
}

func (r *Responder) Supports(lang string) bool {
	_, ok := r.languages[lang]
	return ok
}

func (r *Responder) language(message, lang string) Language {
	if l, ok := r.languages[strings.ToLower(lang)]; ok {
		return l
	}
	if l, ok := r.languages[DetectLanguage(message)]; ok {
		return l
	}
	return r.languages[English]
}

// DetectLanguage guesses from the script of the first letter that is not
// Latin: Devanagari is Hindi, Telugu script is Telugu, anything else English.
func DetectLanguage(message string) string {
	for _, c := range message {
		switch {
		case unicode.Is(unicode.Devanagari, c):
			return Hindi
		case unicode.Is(unicode.Telugu, c):
			return Telugu
		}
	}
	return English
}
