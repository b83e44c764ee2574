// Enums shared between configuration and command line handling.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested output type.
// ENUM(json, yaml)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtJson:
		return ".json"
	case OutputFmtYaml:
		return ".yaml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// What to do with attribute or tag names absent from translation dictionary.
// ENUM(transliterate, strict)
type UnknownKeyPolicy int
