package style

import (
	"strings"

	"rst2sile/sile"
)

// FontKeys are the canonical font properties in the order they are passed to
// \font.
var FontKeys = []string{"script", "language", "style", "weight", "family", "size"}

// Compile turns a declaration into a pair of SILE fragments. Content placed
// between opener and closer gets the declared formatting. Wrappers are
// opened in this order and closed in reverse: margins, alignment, font,
// text-indent (no closer), color.
func Compile(d Declaration) (opener, closer string) {
	if d.Len() == 0 {
		return "", ""
	}

	var open strings.Builder
	var closers []string // innermost last

	// Margins
	if v, ok := d.Get("margin-top"); ok {
		open.WriteString(sile.Call("skip", sile.A("height", v)))
	}
	var indent []sile.Arg
	if v, ok := d.Get("margin-left"); ok {
		indent = append(indent, sile.A("left", v))
	}
	if v, ok := d.Get("margin-right"); ok {
		indent = append(indent, sile.A("right", v))
	}
	if v, ok := d.Get("margin-bottom"); ok {
		closers = append(closers, sile.Call("skip", sile.A("height", v)))
	}
	if len(indent) > 0 {
		open.WriteString(sile.Command("relindent", indent...))
		closers = append(closers, "}")
	}

	// Alignment, justified is the default
	if v, ok := d.Get("text-align"); ok {
		if env := alignEnv(v); env != "" {
			open.WriteString(sile.Env(env))
			closers = append(closers, sile.EndEnv(env))
		}
	}

	// Font
	if font := FontArgs(d); len(font) > 0 {
		open.WriteString(sile.Command("font", font...))
		closers = append(closers, "}")
	}

	// Paragraph scoped setting, nothing to close
	if v, ok := d.Get("text-indent"); ok {
		open.WriteString(sile.Call("set", sile.A("parameter", "document.parindent"), sile.A("value", v)))
	}

	// Color wraps the smallest scope
	if v, ok := d.Get("color"); ok {
		open.WriteString(sile.Command("color", sile.A("color", v)))
		closers = append(closers, "}")
	}

	var tail strings.Builder
	for i := len(closers) - 1; i >= 0; i-- {
		tail.WriteString(closers[i])
	}
	return open.String(), tail.String()
}

func alignEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left":
		return "raggedright"
	case "right":
		return "raggedleft"
	case "center":
		return "center"
	}
	return ""
}

// FontArgs returns the font properties of a declaration as command options.
func FontArgs(d Declaration) []sile.Arg {
	var args []sile.Arg
	for _, k := range FontKeys {
		if v, ok := d.Get(k); ok {
			args = append(args, sile.A(k, v))
		}
	}
	return args
}

// ImageWidth converts a width for \img: percentages are taken relative to
// the frame width.
func ImageWidth(width string) string {
	if strings.HasSuffix(width, "%") {
		return width + "fw"
	}
	return width
}
