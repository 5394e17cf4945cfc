package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle      *goi18n.Bundle
	localizers  map[string]*goi18n.Localizer
	supported   []string
	defaultLang = "en"
)

// Init loads the translation bundle with the given default language and
// returns, per locale, the message IDs missing relative to the default
// locale. Missing IDs fall back to the default locale at lookup time.
func Init(defaultLocale string) (map[string][]string, error) {
	if defaultLocale != "" {
		defaultLang = defaultLocale
	}
	tag, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", defaultLang, err)
	}

	bundle = goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	keys := make(map[string]map[string]bool) // locale -> message IDs
	supported = supported[:0]
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		bundle.MustParseMessageFileBytes(data, e.Name())

		locale := strings.TrimSuffix(e.Name(), ".json")
		supported = append(supported, locale)

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
		ids := make(map[string]bool, len(raw))
		for id := range raw {
			ids[id] = true
		}
		keys[locale] = ids
	}
	sort.Strings(supported)

	localizers = make(map[string]*goi18n.Localizer, len(supported))
	for _, locale := range supported {
		localizers[locale] = goi18n.NewLocalizer(bundle, locale, defaultLang)
	}

	missing := make(map[string][]string)
	for _, locale := range supported {
		if locale == defaultLang {
			continue
		}
		for id := range keys[defaultLang] {
			if !keys[locale][id] {
				missing[locale] = append(missing[locale], id)
			}
		}
		sort.Strings(missing[locale])
	}
	return missing, nil
}

// Languages returns the supported locale codes.
func Languages() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Default returns the default locale code.
func Default() string {
	return defaultLang
}

// Supported reports whether the locale is in the supported set.
func Supported(lang string) bool {
	for _, l := range supported {
		if l == lang {
			return true
		}
	}
	return false
}

// Normalize maps an arbitrary locale code to a supported one, substituting
// the default when unsupported.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if Supported(lang) {
		return lang
	}
	return defaultLang
}

func localizer(lang string) *goi18n.Localizer {
	if loc, ok := localizers[lang]; ok {
		return loc
	}
	return localizers[defaultLang]
}

// T translates a message by ID for the given locale.
func T(lang, msgID string) string {
	s, err := localizer(lang).Localize(&goi18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		return msgID
	}
	return s
}

// Td translates a message by ID with template data.
func Td(lang, msgID string, data map[string]any) string {
	s, err := localizer(lang).Localize(&goi18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
	if err != nil {
		return msgID
	}
	return s
}
