// Package translate renders user visible messages in the host language.
package translate

import (
	"log"
	"sync/atomic"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DEFAULT_LOCALE is used when the host reports no locale.
const DEFAULT_LOCALE = "en-US"

var printer atomic.Pointer[message.Printer]

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ram: locale: %v", err)
	}

	Use(locales...)
}

// Use selects the message language from a list of BCP 47 tags, in order
// of preference. With no usable tags, DEFAULT_LOCALE is selected.
func Use(tags ...string) language.Tag {
	if len(tags) == 0 {
		tags = []string{DEFAULT_LOCALE}
	}

	tag := message.MatchLanguage(tags...)
	printer.Store(message.NewPrinter(tag))

	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Load().Sprintf(key, args...)
}

// Error is an error whose en-US text is translated when it is rendered,
// so package level sentinels follow a later Use.
type Error string

func (err Error) Error() string {
	return From(string(err))
}
