// Package i18n provides message printers for CLI output and API errors.
package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLang is the fallback language
var DefaultLang = language.English

// SupportedLangs are the languages we support
var SupportedLangs = []language.Tag{
	language.English,
	language.German,
}

var matcher = language.NewMatcher(SupportedLangs)

// Message keys shared by the CLI and the API.
const (
	MsgMissingFields  = "Missing required fields: %s"
	MsgInvalidBody    = "Invalid request body: %v"
	MsgRendered       = "Rendered %d sections (%d network statements)"
	MsgCopied         = "Full configuration copied to clipboard."
	MsgNoDifferences  = "No differences."
	MsgWroteTemplate  = "Wrote starter configuration to %s"
	MsgValid          = "Configuration valid!"
	MsgFieldsRequired = "This field is required to build the CLI."
)

func init() {
	de := language.German
	message.SetString(de, MsgMissingFields, "Pflichtfelder fehlen: %s")
	message.SetString(de, MsgInvalidBody, "Ungültiger Request-Body: %v")
	message.SetString(de, MsgRendered, "%d Abschnitte erzeugt (%d Netzwerk-Einträge)")
	message.SetString(de, MsgCopied, "Vollständige Konfiguration in die Zwischenablage kopiert.")
	message.SetString(de, MsgNoDifferences, "Keine Unterschiede.")
	message.SetString(de, MsgWroteTemplate, "Startkonfiguration nach %s geschrieben")
	message.SetString(de, MsgValid, "Konfiguration gültig!")
	message.SetString(de, MsgFieldsRequired, "Dieses Feld wird für die CLI benötigt.")
}

type contextKey struct{}

var printerKey = contextKey{}

// MatchLanguage returns the best matching language for the given tags
func MatchLanguage(acceptLang string) language.Tag {
	tags, _, _ := language.ParseAcceptLanguage(acceptLang)
	_, idx, _ := matcher.Match(tags...)
	return SupportedLangs[idx]
}

// NewPrinter returns a message printer for the given language
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// WithPrinter returns a new context with the printer injected
func WithPrinter(ctx context.Context, p *message.Printer) context.Context {
	return context.WithValue(ctx, printerKey, p)
}

// GetPrinter returns the printer from the context, or a default one
func GetPrinter(ctx context.Context) *message.Printer {
	p, ok := ctx.Value(printerKey).(*message.Printer)
	if !ok {
		return message.NewPrinter(DefaultLang)
	}
	return p
}

// NewCLIPrinter returns a printer for the system's locale (from env vars)
func NewCLIPrinter() *message.Printer {
	return message.NewPrinter(LocaleTag(os.Getenv("LC_ALL"), os.Getenv("LANG")))
}

// LocaleTag picks a supported language from POSIX locale values such as
// "de_DE.UTF-8". The first non-empty value wins.
func LocaleTag(values ...string) language.Tag {
	lang := ""
	for _, v := range values {
		if v != "" {
			lang = v
			break
		}
	}
	if lang == "" || lang == "C" || lang == "POSIX" {
		return DefaultLang
	}

	if i := strings.Index(lang, "."); i != -1 {
		lang = lang[:i]
	}
	lang = strings.ReplaceAll(lang, "_", "-")

	tag, err := language.Parse(lang)
	if err != nil {
		return DefaultLang
	}
	_, idx, _ := matcher.Match(tag)
	return SupportedLangs[idx]
}
