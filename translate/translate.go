// Package translate formats user visible messages for the locale of the host.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	printer = NewPrinter()
}

// NewPrinter selects a printer matching the host locales, falling back to en-US.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tis100: locale: %v", err)
	}

	if len(locales) == 0 {
		return message.NewPrinter(language.AmericanEnglish)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
