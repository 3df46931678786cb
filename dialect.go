package datapackage

import (
	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/internal/descriptor"
)

// Dialect descriptor keys.
const (
	keyDelimiter           = "delimiter"
	keyLineTerminator      = "lineTerminator"
	keyQuoteChar           = "quoteChar"
	keyDoubleQuote         = "doubleQuote"
	keyEscapeChar          = "escapeChar"
	keyNullSequence        = "nullSequence"
	keySkipInitialSpace    = "skipInitialSpace"
	keyHeader              = "header"
	keyCaseSensitiveHeader = "caseSensitiveHeader"
	keyCommentChar         = "commentChar"
	keyCSVDDFVersion       = "csvddfVersion"
)

var dialectKeys = []string{
	keyDelimiter, keyLineTerminator, keyQuoteChar, keyDoubleQuote, keyEscapeChar, keyNullSequence,
	keySkipInitialSpace, keyHeader, keyCaseSensitiveHeader, keyCommentChar, keyCSVDDFVersion,
}

// Dialect describes how a CSV file is formatted. Optional characters are nil
// when not declared.
type Dialect struct {
	Delimiter           string
	LineTerminator      string
	QuoteChar           *string
	DoubleQuote         bool
	EscapeChar          *string
	NullSequence        *string
	SkipInitialSpace    bool
	Header              bool
	CaseSensitiveHeader bool
	CommentChar         *string
	CSVDDFVersion       string

	AdditionalProperties map[string]any
}

// NewDialect returns the default CSV dialect.
func NewDialect() *Dialect {
	quote := `"`
	return &Dialect{
		Delimiter:        ",",
		LineTerminator:   "\r\n",
		QuoteChar:        &quote,
		DoubleQuote:      true,
		SkipInitialSpace: true,
		Header:           true,
		CSVDDFVersion:    "1.2",
	}
}

// ParseDialect overlays declared values on the default dialect. It never fails.
func ParseDialect(d map[string]any, log *diag.Log) (*Dialect, bool) {
	m := descriptor.Map(d)
	r := descriptor.Reader{M: m, Log: log}
	dl := NewDialect()

	readString := func(key string, dst *string) {
		if m.Has(key) {
			if s, ok := m.String(key); ok {
				*dst = s
				return
			}
			r.String(key)
		}
	}
	readOptional := func(key string, dst **string) {
		if m.Has(key) {
			if s, ok := m.String(key); ok {
				*dst = &s
				return
			}
			r.String(key)
		}
	}
	readBool := func(key string, dst *bool) {
		if b, ok := r.Bool(key); ok {
			*dst = b
		}
	}

	readString(keyDelimiter, &dl.Delimiter)
	readString(keyLineTerminator, &dl.LineTerminator)
	readOptional(keyQuoteChar, &dl.QuoteChar)
	readBool(keyDoubleQuote, &dl.DoubleQuote)
	readOptional(keyEscapeChar, &dl.EscapeChar)
	readOptional(keyNullSequence, &dl.NullSequence)
	readBool(keySkipInitialSpace, &dl.SkipInitialSpace)
	readBool(keyHeader, &dl.Header)
	readBool(keyCaseSensitiveHeader, &dl.CaseSensitiveHeader)
	readOptional(keyCommentChar, &dl.CommentChar)
	readString(keyCSVDDFVersion, &dl.CSVDDFVersion)

	dl.AdditionalProperties = additional(m, dialectKeys...)
	return dl, true
}

// Serialize emits only values that differ from the default dialect.
func (dl *Dialect) Serialize() map[string]any {
	def := NewDialect()
	d := base(dl.AdditionalProperties)
	if dl.Delimiter != def.Delimiter {
		d[keyDelimiter] = dl.Delimiter
	}
	if dl.LineTerminator != def.LineTerminator {
		d[keyLineTerminator] = dl.LineTerminator
	}
	if !sameOptional(dl.QuoteChar, def.QuoteChar) {
		if dl.QuoteChar == nil {
			d[keyQuoteChar] = nil
		} else {
			d[keyQuoteChar] = *dl.QuoteChar
		}
	}
	if dl.DoubleQuote != def.DoubleQuote {
		d[keyDoubleQuote] = dl.DoubleQuote
	}
	if dl.EscapeChar != nil {
		d[keyEscapeChar] = *dl.EscapeChar
	}
	if dl.NullSequence != nil {
		d[keyNullSequence] = *dl.NullSequence
	}
	if dl.SkipInitialSpace != def.SkipInitialSpace {
		d[keySkipInitialSpace] = dl.SkipInitialSpace
	}
	if dl.Header != def.Header {
		d[keyHeader] = dl.Header
	}
	if dl.CaseSensitiveHeader != def.CaseSensitiveHeader {
		d[keyCaseSensitiveHeader] = dl.CaseSensitiveHeader
	}
	if dl.CommentChar != nil {
		d[keyCommentChar] = *dl.CommentChar
	}
	if dl.CSVDDFVersion != def.CSVDDFVersion {
		d[keyCSVDDFVersion] = dl.CSVDDFVersion
	}
	return d
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func nonEmpty(s *string) bool { return s != nil && *s != "" }

// Verify requires a known line terminator and rejects a quote character
// together with an escape character. Declared but empty values are warnings.
func (dl *Dialect) Verify(log *diag.Log) bool {
	valid := true
	if dl.LineTerminator != "\r\n" && dl.LineTerminator != "\n" {
		valid = false
		log.Error(diag.BadInput(dl.LineTerminator), keyLineTerminator)
	}
	if nonEmpty(dl.QuoteChar) && nonEmpty(dl.EscapeChar) {
		valid = false
		log.Error(diag.Conflicting(keyEscapeChar), keyQuoteChar)
	}

	if dl.Delimiter == "" {
		log.Warn(diag.BadInput(dl.Delimiter), keyDelimiter)
	}
	if dl.LineTerminator == "" {
		log.Warn(diag.BadInput(dl.LineTerminator), keyLineTerminator)
	}
	for _, opt := range []struct {
		key string
		v   *string
	}{
		{keyQuoteChar, dl.QuoteChar},
		{keyEscapeChar, dl.EscapeChar},
		{keyNullSequence, dl.NullSequence},
		{keyCommentChar, dl.CommentChar},
	} {
		if opt.v != nil && *opt.v == "" {
			log.Warn(diag.BadInput(""), opt.key)
		}
	}
	return valid
}
