package parsers

import "strings"

// All returns one parser per supported language.
func All() []Parser {
	return []Parser{
		NewJavaParser(),
		NewCParser(),
		NewTypeScriptParser(),
	}
}

// ForLanguage returns the parser for a language identifier.
func ForLanguage(lang string) (Parser, bool) {
	for _, p := range All() {
		if p.Language() == strings.ToLower(lang) {
			return p, true
		}
	}
	return nil, false
}

// ForExtension returns the parser handling a file extension (with dot).
func ForExtension(ext string) (Parser, bool) {
	ext = strings.ToLower(ext)
	for _, p := range All() {
		for _, e := range p.Extensions() {
			if e == ext {
				return p, true
			}
		}
	}
	return nil, false
}
