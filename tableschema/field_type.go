package tableschema

// FieldType is the logical type of a column.
type FieldType string

const (
	TypeString    FieldType = "string"
	TypeNumber    FieldType = "number"
	TypeInteger   FieldType = "integer"
	TypeBoolean   FieldType = "boolean"
	TypeObject    FieldType = "object"
	TypeArray     FieldType = "array"
	TypeDate      FieldType = "date"
	TypeTime      FieldType = "time"
	TypeDateTime  FieldType = "datetime"
	TypeYear      FieldType = "year"
	TypeYearMonth FieldType = "yearmonth"
	TypeDuration  FieldType = "duration"
	TypeGeoPoint  FieldType = "geopoint"
	TypeGeoJSON   FieldType = "geojson"
	TypeAny       FieldType = "any"
)

var fieldTypes = map[FieldType]struct{}{
	TypeString: {}, TypeNumber: {}, TypeInteger: {}, TypeBoolean: {}, TypeObject: {},
	TypeArray: {}, TypeDate: {}, TypeTime: {}, TypeDateTime: {}, TypeYear: {},
	TypeYearMonth: {}, TypeDuration: {}, TypeGeoPoint: {}, TypeGeoJSON: {}, TypeAny: {},
}

// ParseFieldType returns the FieldType named by s. Unknown names are rejected.
func ParseFieldType(s string) (FieldType, bool) {
	t := FieldType(s)
	_, ok := fieldTypes[t]
	return t, ok
}

// Known reports whether t is one of the defined types.
func (t FieldType) Known() bool {
	_, ok := fieldTypes[t]
	return ok
}

// Format names shared by every type.
const (
	FormatDefault = "default"
	FormatAny     = "any"
)

var formatsByType = map[FieldType][]string{
	TypeString:   {"email", "uri", "binary", "uuid"},
	TypeGeoPoint: {"array", "object"},
	TypeGeoJSON:  {"topojson"},
}

// ValidFormat reports whether format is acceptable for t. "default" is always
// accepted; date and time types take "any" or a strptime-style pattern.
func ValidFormat(t FieldType, format string) bool {
	if format == FormatDefault {
		return true
	}
	switch t {
	case TypeDate, TypeTime, TypeDateTime:
		return format != ""
	}
	for _, f := range formatsByType[t] {
		if f == format {
			return true
		}
	}
	return false
}

// DefaultTrueValues and DefaultFalseValues are the boolean tokens used when a
// boolean field declares none.
var (
	DefaultTrueValues  = []string{"true", "True", "TRUE", "1"}
	DefaultFalseValues = []string{"false", "False", "FALSE", "0"}
)
