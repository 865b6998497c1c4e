// Package format renders dictionary lookup results as chat-safe text.
//
// All layout policy lives here: headings, numbering, indentation, the
// delimiter between entries, and the wording of "nothing found" and failure
// sentences. Every function returns one assembled string and never an empty
// one.
package format

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/kubishi-relay/internal/domain"
)

// Delimiter separates consecutive entries. It never trails the output.
const Delimiter = "\n---\n"

const notAvailable = "N/A"

// Outbound size policy, counted in characters.
const (
	MaxMessageLength = 4096
	truncatedLength  = 4090
	TruncationMarker = "...(truncated)"
)

// Translations renders Paiute search results for an English word.
func Translations(word string, entries []domain.LexicalEntry) string {
	if len(entries) == 0 {
		return NotFound(domain.CapTranslateToPaiute, word)
	}
	heading := fmt.Sprintf("Paiute translations for \"%s\" (%s):", word, plural(len(entries), "entry", "entries"))
	return heading + "\n\n" + lexicalEntries(entries)
}

// EnglishSearch renders English search results.
func EnglishSearch(query string, entries []domain.LexicalEntry) string {
	if len(entries) == 0 {
		return NotFound(domain.CapSearchEnglishWords, query)
	}
	heading := fmt.Sprintf("Search results for English word \"%s\" (%s):", query, plural(len(entries), "entry", "entries"))
	return heading + "\n\n" + lexicalEntries(entries)
}

// Sentences renders sentence search results.
func Sentences(query string, entries []domain.SentenceEntry) string {
	if len(entries) == 0 {
		return NotFound(domain.CapSearchSentences, query)
	}

	blocks := make([]string, len(entries))
	for i, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "*Sentence %d:* %s\n", i+1, e.Sentence)
		fmt.Fprintf(&b, "Translation: %s", e.Translation)
		if e.Note != "" {
			fmt.Fprintf(&b, "\nNote: %s", e.Note)
		}
		blocks[i] = b.String()
	}

	heading := fmt.Sprintf("Search results for sentences \"%s\" (%s):", query, plural(len(entries), "result", "results"))
	return heading + "\n\n" + Join(blocks)
}

// WordDetails renders a single entry fetched by ID. Missing fields become N/A.
func WordDetails(id string, entry *domain.LexicalEntry) string {
	if entry == nil {
		return NotFound(domain.CapGetWordDetails, id)
	}

	unit := orNA(entry.LexicalUnit)
	definition := entry.Definition
	if definition == "" && len(entry.Senses) > 0 {
		definition = entry.Senses[0].Definition
	}

	return fmt.Sprintf("Word details for ID \"%s\":\n\nLexical Unit: %s\nDefinition: %s", id, unit, orNA(definition))
}

// NotFound renders the "nothing found" sentence for a capability. The query
// always appears verbatim.
func NotFound(c domain.Capability, query string) string {
	switch c {
	case domain.CapTranslateToPaiute:
		return fmt.Sprintf("Could not find a Paiute translation for \"%s\".", query)
	case domain.CapGetWordDetails:
		return fmt.Sprintf("Could not find word details for ID \"%s\".", query)
	case domain.CapSearchEnglishWords:
		return fmt.Sprintf("Could not find English words for query \"%s\".", query)
	case domain.CapSearchSentences:
		return fmt.Sprintf("Could not find sentences for query \"%s\".", query)
	default:
		return fmt.Sprintf("Could not find anything for \"%s\".", query)
	}
}

// LookupFailure renders a failed lookup as a user-facing sentence.
func LookupFailure(c domain.Capability, query string, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFound(c, query)
	case errors.Is(err, domain.ErrInvalidQuery):
		return fmt.Sprintf("The dictionary could not process the query \"%s\". Please try rephrasing it.", query)
	default:
		return fmt.Sprintf("Sorry, the dictionary is not available right now, so I couldn't look up \"%s\". Please try again later.", query)
	}
}

// Join writes every block followed by Delimiter, then strips the final
// delimiter, so N blocks always yield N-1 delimiters.
func Join(blocks []string) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(strings.TrimRight(block, "\n"))
		b.WriteString(Delimiter)
	}
	return strings.TrimSuffix(b.String(), Delimiter)
}

// Truncate cuts messages longer than MaxMessageLength to their first
// characters followed by TruncationMarker. Shorter messages are unchanged.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= MaxMessageLength {
		return s
	}
	return string([]rune(s)[:truncatedLength]) + TruncationMarker
}

func lexicalEntries(entries []domain.LexicalEntry) string {
	blocks := make([]string, len(entries))
	for i := range entries {
		blocks[i] = lexicalEntry(i+1, &entries[i])
	}
	return Join(blocks)
}

func lexicalEntry(n int, e *domain.LexicalEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Entry %d:* %s", n, orNA(e.LexicalUnit))
	if mt := e.MorphType(); mt != "" {
		fmt.Fprintf(&b, " (%s)", mt)
	}
	b.WriteString("\n")

	if len(e.Senses) == 0 {
		b.WriteString("  No senses found for this entry.")
		return b.String()
	}

	for i, s := range e.Senses {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  Definition: %s\n", orNA(s.Definition))
		fmt.Fprintf(&b, "  Gloss: %s\n", orNA(s.Gloss))
		fmt.Fprintf(&b, "  Grammatical Info: %s\n", orNA(s.GrammaticalInfo))

		if len(s.Examples) == 0 {
			b.WriteString("  No examples provided.\n")
		} else {
			b.WriteString("  Examples:\n")
			for _, ex := range s.Examples {
				fmt.Fprintf(&b, "    Form: %s\n", ex.Form)
				fmt.Fprintf(&b, "    Translation: %s\n", ex.Translation)
			}
		}
		if s.Note != "" {
			fmt.Fprintf(&b, "  Note: %s\n", s.Note)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
