package i18n

import (
	"strings"
	"testing"
)

func initLocales(t *testing.T) {
	t.Helper()
	missing, err := Init("en")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for locale, ids := range missing {
		t.Errorf("locale %s missing message IDs: %v", locale, ids)
	}
}

func TestLocaleCoverage(t *testing.T) {
	initLocales(t)

	langs := Languages()
	want := []string{"en", "es", "fr", "hi"}
	if len(langs) != len(want) {
		t.Fatalf("Languages() = %v, want %v", langs, want)
	}
	for i, l := range want {
		if langs[i] != l {
			t.Errorf("Languages()[%d] = %q, want %q", i, langs[i], l)
		}
	}
}

func TestTranslate(t *testing.T) {
	initLocales(t)

	if got := T("en", "ResetOK"); got != "Session reset successfully" {
		t.Errorf("T(en, ResetOK) = %q", got)
	}
	if got := T("es", "ResetOK"); got != "Sesión reiniciada con éxito" {
		t.Errorf("T(es, ResetOK) = %q", got)
	}

	got := Td("en", "ReadyChapter", map[string]any{"Chapter": "Ch1", "Course": "Math101"})
	if !strings.Contains(got, "Ch1") || !strings.Contains(got, "Math101") {
		t.Errorf("Td(ReadyChapter) = %q, want chapter and course names", got)
	}
}

func TestTranslateUnknownLocaleFallsBack(t *testing.T) {
	initLocales(t)

	if got := T("de", "ResetOK"); got != "Session reset successfully" {
		t.Errorf("T(de, ResetOK) = %q, want English fallback", got)
	}
}

func TestNormalize(t *testing.T) {
	initLocales(t)

	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"ES", "es"},
		{"fr-FR", "fr"},
		{"hi_IN", "hi"},
		{"de", "en"},
		{"", "en"},
		{"  es ", "es"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeywordMatching(t *testing.T) {
	initLocales(t)

	tests := []struct {
		name    string
		lang    string
		cat     Category
		message string
		want    bool
	}{
		{"en scoring", "en", CategoryScoring, "Can you grade my homework?", true},
		{"en qa", "en", CategoryQA, "I want to take a quiz", true},
		{"en course", "en", CategoryCourse, "what courses do you have", true},
		{"en none", "en", CategoryScoring, "hello there", false},
		{"es scoring", "es", CategoryScoring, "quiero calificar una tarea", true},
		{"fr course", "fr", CategoryCourse, "quels cours avez-vous", true},
		{"hi qa", "hi", CategoryQA, "मुझे अभ्यास करना है", true},
		{"case insensitive", "en", CategoryQA, "QUIZ TIME", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.lang, tt.cat, tt.message); got != tt.want {
				t.Errorf("Matches(%s, %s, %q) = %v, want %v", tt.lang, tt.cat, tt.message, got, tt.want)
			}
		})
	}
}

func TestAllToken(t *testing.T) {
	initLocales(t)

	tests := []struct {
		lang    string
		message string
		want    bool
	}{
		{"en", "all", true},
		{"en", " All ", true},
		{"es", "todos", true},
		{"fr", "tout", true},
		{"hi", "सभी", true},
		{"es", "all", true}, // English token always accepted
		{"en", "chapter 1", false},
		{"en", "allow", false}, // equality, not containment
	}
	for _, tt := range tests {
		if got := IsAllToken(tt.lang, tt.message); got != tt.want {
			t.Errorf("IsAllToken(%s, %q) = %v, want %v", tt.lang, tt.message, got, tt.want)
		}
	}
}

func TestKeywordFallbackToEnglish(t *testing.T) {
	initLocales(t)

	// Unknown locale uses the English keyword lists.
	if !Matches("de", CategoryQA, "give me a quiz") {
		t.Error("unknown locale should fall back to English keywords")
	}
}
