package debrid

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// languageName maps an account locale code to its English display name,
// falling back to "Unknown" for unrecognized codes.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "Unknown"
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return "Unknown"
}
