package langname

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Name returns the English display name for a BCP-47 language code
// ("fr" -> "French"). Unparseable codes are returned as-is.
func Name(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}

// Base normalizes a platform locale hint ("en-US", "pt-BR") to its base
// language code ("en", "pt"). Empty or unparseable hints yield "".
func Base(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
