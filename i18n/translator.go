package i18n

import "strings"

// Message codes understood by the built-in dictionaries.
const (
	CodeBadInput           = "bad_input"
	CodeBadInputValue      = "bad_input_value"
	CodeUnknownEnumeration = "unknown_enumeration"
	CodeMissing            = "missing"
	CodeConflicting        = "conflicting"
	CodeSeverityError      = "severity_error"
	CodeSeverityWarning    = "severity_warning"
)

// Translator retrieves localized messages for diagnostic codes.
// data provides values substituted into the message: "path", "value" and
// "other" are used by the built-in dictionaries.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		CodeBadInput:           "Bad value at '{path}'.",
		CodeBadInputValue:      "Bad value '{value}' at '{path}'.",
		CodeUnknownEnumeration: "Unknown enumeration '{value}' at '{path}'.",
		CodeMissing:            "Missing value at '{path}'.",
		CodeConflicting:        "Conflict between '{path}' and '{other}'.",
		CodeSeverityError:      "Error",
		CodeSeverityWarning:    "Warning",
	},
	"ja": {
		CodeBadInput:           "'{path}' の値が不正です。",
		CodeBadInputValue:      "'{path}' の値 '{value}' が不正です。",
		CodeUnknownEnumeration: "'{path}' の列挙値 '{value}' は未知です。",
		CodeMissing:            "'{path}' の値がありません。",
		CodeConflicting:        "'{path}' と '{other}' が競合しています。",
		CodeSeverityError:      "エラー",
		CodeSeverityWarning:    "警告",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// Supported reports whether lang has a built-in dictionary.
func Supported(lang string) bool {
	_, ok := dictionaries[lang]
	return ok
}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if !Supported(lang) {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
