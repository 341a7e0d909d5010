package translate

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"rst2sile/doctree"
	"rst2sile/sile"
)

// bulletGlyphs replaces the ASCII bullets of the source with typographic
// ones. Anything else is used as is.
var bulletGlyphs = map[string]string{
	"*": "•",
	"-": "◦",
	"+": "‣",
}

// enterList indents nested lists relative to their parent list.
func (t *Translator) enterList(n *doctree.Node) (string, action, error) {
	opener, closer := t.classes(n)
	if t.listDepth > 0 {
		t.emit(sile.Command("relindent", sile.A("left", "3em")))
		closer += "}"
	}
	t.listDepth++
	t.emit(opener)
	return closer, descend, nil
}

func (t *Translator) leaveList(_ *doctree.Node, pending string) error {
	t.listDepth--
	t.emit(pending)
	return nil
}

func (t *Translator) enterListItem(n *doctree.Node) (string, action, error) {
	if marker := t.marker(n); marker != "" {
		t.emit(sile.Escape(marker), " ")
	}
	return "", descend, nil
}

// marker computes the bullet or ordinal of a list item from the attributes
// of its list. An empty string means no marker.
func (t *Translator) marker(item *doctree.Node) string {
	list := item.Parent()
	if list == nil {
		return ""
	}

	bullet, hasBullet := list.Attr("bullet")
	if list.Kind == doctree.KindBulletList || bullet != "" {
		if !hasBullet {
			bullet = "*"
		}
		if strings.EqualFold(bullet, "none") {
			return ""
		}
		if glyph, ok := bulletGlyphs[bullet]; ok {
			return glyph
		}
		return bullet
	}

	start := 1
	if s := list.AttrOr("start", ""); s != "" {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			t.log.Warn("Bad list start, counting from 1", zap.String("start", s))
		} else {
			start = v
		}
	}
	ordinal := item.Index() + start

	enumtype := list.AttrOr("enumtype", "")
	switch enumtype {
	case "arabic":
		return strconv.Itoa(ordinal) + "."
	case "lowerroman", "upperroman":
		r, ok := roman(ordinal)
		if !ok {
			t.log.Warn("Ordinal cannot be written in roman numerals, using arabic", zap.Int("ordinal", ordinal))
			return strconv.Itoa(ordinal) + "."
		}
		if enumtype == "lowerroman" {
			r = strings.ToLower(r)
		}
		return r + "."
	case "loweralpha", "upperalpha":
		if ordinal < 1 {
			t.log.Warn("Ordinal cannot be written as a letter, using arabic", zap.Int("ordinal", ordinal))
			return strconv.Itoa(ordinal) + "."
		}
		if ordinal > 26 {
			t.log.Warn("Alphabetic ordinal past the end of the alphabet", zap.Int("ordinal", ordinal))
		}
		a := alpha(ordinal)
		if enumtype == "upperalpha" {
			a = strings.ToUpper(a)
		}
		return a + "."
	}
	t.log.Warn("Unknown enumeration type, item has no marker", zap.String("enumtype", enumtype))
	return ""
}

var romanDigits = []struct {
	value  int
	digits string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman writes n in upper case roman numerals. Only 1..3999 can be written.
func roman(n int) (string, bool) {
	if n < 1 || n > 3999 {
		return "", false
	}
	var sb strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			sb.WriteString(d.digits)
			n -= d.value
		}
	}
	return sb.String(), true
}

// alpha writes n >= 1 in bijective base 26: a..z, aa, ab, ...
func alpha(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append(out, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
