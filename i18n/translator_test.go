package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"path": "resources.name"}

	// default is en
	assert.Equal(t, "Missing value at 'resources.name'.", T(CodeMissing, data))

	SetLanguage("ja")
	defer SetLanguage("en")
	assert.Equal(t, "'resources.name' の値がありません。", T(CodeMissing, data))
	assert.Equal(t, "警告", T(CodeSeverityWarning, nil))
}

func TestTranslator_Substitution(t *testing.T) {
	msg := T(CodeConflicting, map[string]string{"path": "path", "other": "data"})
	assert.Equal(t, "Conflict between 'path' and 'data'.", msg)

	msg = T(CodeBadInputValue, map[string]string{"path": "dialect.lineTerminator", "value": "\t"})
	assert.Equal(t, "Bad value '\t' at 'dialect.lineTerminator'.", msg)
}

func TestTranslator_UnknownCodeAndLanguage(t *testing.T) {
	assert.Equal(t, "no_such_code", T("no_such_code", nil))

	SetLanguage("fr")
	assert.Equal(t, "Error", T(CodeSeverityError, nil))
	assert.False(t, Supported("fr"))
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "X-" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upperTranslator{})
	assert.Equal(t, "X-missing", T(CodeMissing, nil))
	SetTranslator(nil)
	assert.Equal(t, "Error", T(CodeSeverityError, nil))
}
