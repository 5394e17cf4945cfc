package i18n

import "strings"

// Category is a keyword class used by the dialogue engine to classify
// free-text messages.
type Category string

const (
	CategoryScoring  Category = "scoring"
	CategoryQA       Category = "qa"
	CategoryCourse   Category = "course"
	CategoryGenerate Category = "generate"
	CategoryAll      Category = "all"
)

// Per-locale keyword lists. A locale missing a category falls back to the
// English list for that category.
var keywords = map[string]map[Category][]string{
	"en": {
		CategoryScoring:  {"score", "grade", "evaluate", "check", "mark", "assessment"},
		CategoryQA:       {"question", "quiz", "test", "practice", "q&a", "qa"},
		CategoryCourse:   {"course", "subject", "learn", "study", "chapter", "material"},
		CategoryGenerate: {"generate", "create", "make", "give me questions", "practice questions"},
		CategoryAll:      {"all"},
	},
	"es": {
		CategoryScoring:  {"puntuar", "calificar", "evaluar", "corregir", "nota", "puntaje"},
		CategoryQA:       {"pregunta", "cuestionario", "examen", "practicar", "quiz", "prueba"},
		CategoryCourse:   {"curso", "asignatura", "aprender", "estudiar", "capitulo", "capítulo", "materia"},
		CategoryGenerate: {"genera", "generar", "crea", "crear", "hazme preguntas", "preguntas de practica", "preguntas de práctica"},
		CategoryAll:      {"todos", "todas"},
	},
	"fr": {
		CategoryScoring:  {"noter", "note", "corriger", "evaluer", "évaluer", "barème"},
		CategoryQA:       {"question", "quiz", "test", "pratique", "entrainement", "entraînement"},
		CategoryCourse:   {"cours", "matiere", "matière", "apprendre", "etudier", "étudier", "chapitre"},
		CategoryGenerate: {"genere", "génère", "generer", "générer", "cree", "crée", "questions de pratique"},
		CategoryAll:      {"tout", "tous", "toutes"},
	},
	"hi": {
		CategoryScoring:  {"स्कोर", "ग्रेड", "मूल्यांकन", "जांच", "अंक"},
		CategoryQA:       {"प्रश्न", "क्विज़", "क्विज", "परीक्षा", "अभ्यास", "सवाल"},
		CategoryCourse:   {"कोर्स", "पाठ्यक्रम", "विषय", "सीखना", "अध्याय", "अध्ययन"},
		CategoryGenerate: {"बनाओ", "बनाएं", "उत्पन्न", "अभ्यास प्रश्न"},
		CategoryAll:      {"सभी", "सब"},
	},
}

// Keywords returns the keyword list for a locale and category, falling back
// to the English list when the locale has no entry for the category.
func Keywords(lang string, cat Category) []string {
	if byCat, ok := keywords[lang]; ok {
		if list, ok := byCat[cat]; ok && len(list) > 0 {
			return list
		}
	}
	return keywords["en"][cat]
}

// Matches reports whether the message contains any keyword of the category
// for the locale. Matching is substring containment on the lower-cased text.
func Matches(lang string, cat Category, message string) bool {
	msg := strings.ToLower(message)
	for _, kw := range Keywords(lang, cat) {
		if strings.Contains(msg, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsAllToken reports whether the trimmed message equals the localized
// "all chapters" token. The English token is always accepted.
func IsAllToken(lang, message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, tok := range Keywords(lang, CategoryAll) {
		if msg == strings.ToLower(tok) {
			return true
		}
	}
	if lang != "en" {
		for _, tok := range Keywords("en", CategoryAll) {
			if msg == tok {
				return true
			}
		}
	}
	return false
}
