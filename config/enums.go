package config

//go:generate go tool go-enum --names --marshal

// Specification of requested output type.
// ENUM(sile, pdf)
type OutputFmt int

// Ext returns the file extension for the output type.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtSile:
		return ".sil"
	case OutputFmtPdf:
		return ".pdf"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
