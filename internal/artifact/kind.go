package artifact

import "fmt"

// Kind classifies an artifact's payload format. The set is closed; config
// loading rejects anything else.
type Kind string

const (
	KindWeather              Kind = "weather"
	KindGIS                  Kind = "gis"
	KindSpreadsheetArchetype Kind = "spreadsheet-archetype"
	KindTabularProperty      Kind = "tabular-property"
	KindComputedResult       Kind = "computed-result"
	KindJSONMetadata         Kind = "json-metadata"
)

// ParseKind validates a config string against the closed kind set.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindWeather, KindGIS, KindSpreadsheetArchetype, KindTabularProperty, KindComputedResult, KindJSONMetadata:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown artifact kind %q", s)
}
