package style

import (
	"fmt"
	"strings"
	"testing"
)

func TestCompile_Empty(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
	}{
		{"empty", Declaration{}},
		{"justify", NewDeclaration("text-align", "justify")},
		{"unknown properties", NewDeclaration("text-decoration", "underline", "line-height", "2")},
		{"unknown alignment", NewDeclaration("text-align", "start")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, close := Compile(tt.decl)
			if open != "" || close != "" {
				t.Errorf("Compile() = (%q, %q), want empty", open, close)
			}
		})
	}
}

func TestCompile_Groups(t *testing.T) {
	tests := []struct {
		name       string
		decl       Declaration
		open, tail string
	}{
		{
			name: "alignment center",
			decl: NewDeclaration("text-align", "center"),
			open: `\begin{center}`,
			tail: `\end{center}`,
		},
		{
			name: "alignment right",
			decl: NewDeclaration("text-align", "right"),
			open: `\begin{raggedleft}`,
			tail: `\end{raggedleft}`,
		},
		{
			name: "alignment left",
			decl: NewDeclaration("text-align", "left"),
			open: `\begin{raggedright}`,
			tail: `\end{raggedright}`,
		},
		{
			name: "font keys in fixed order",
			decl: NewDeclaration("font-size", "12pt", "font-family", "Gentium", "font-style", "italic"),
			open: `\font[style=italic,family=Gentium,size=12pt]{`,
			tail: `}`,
		},
		{
			name: "color",
			decl: NewDeclaration("color", "#333"),
			open: `\color[color=#333]{`,
			tail: `}`,
		},
		{
			name: "text indent has no closer",
			decl: NewDeclaration("text-indent", "1em"),
			open: `\set[parameter=document.parindent,value=1em]`,
			tail: ``,
		},
		{
			name: "vertical margins",
			decl: NewDeclaration("margin-top", "6pt", "margin-bottom", "12pt"),
			open: `\skip[height=6pt]`,
			tail: `\skip[height=12pt]`,
		},
		{
			name: "horizontal margins wrap",
			decl: NewDeclaration("margin-right", "1em", "margin-left", "2em"),
			open: `\relindent[left=2em,right=1em]{`,
			tail: `}`,
		},
		{
			name: "everything",
			decl: NewDeclaration(
				"color", "red",
				"text-indent", "0pt",
				"font-weight", "700",
				"text-align", "center",
				"margin-left", "1em",
				"margin-top", "3pt",
				"margin-bottom", "4pt",
			),
			open: `\skip[height=3pt]\relindent[left=1em]{\begin{center}\font[weight=700]{\set[parameter=document.parindent,value=0pt]\color[color=red]{`,
			tail: `}}\end{center}}\skip[height=4pt]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, tail := Compile(tt.decl)
			if open != tt.open {
				t.Errorf("opener = %q, want %q", open, tt.open)
			}
			if tail != tt.tail {
				t.Errorf("closer = %q, want %q", tail, tt.tail)
			}
		})
	}
}

// balanced checks that braces and environments in s nest properly.
func balanced(s string) error {
	var stack []string
	for i := 0; i < len(s); i++ {
		switch {
		case strings.HasPrefix(s[i:], `\begin{`):
			end := strings.IndexByte(s[i+7:], '}')
			stack = append(stack, "env:"+s[i+7:i+7+end])
			i += 7 + end
		case strings.HasPrefix(s[i:], `\end{`):
			end := strings.IndexByte(s[i+5:], '}')
			name := "env:" + s[i+5:i+5+end]
			if len(stack) == 0 || stack[len(stack)-1] != name {
				return fmt.Errorf("unexpected %s at %d, stack %v", name, i, stack)
			}
			stack = stack[:len(stack)-1]
			i += 5 + end
		case s[i] == '\\' && i+1 < len(s) && strings.ContainsRune(`{}\%`, rune(s[i+1])):
			i++
		case s[i] == '{':
			stack = append(stack, "{")
		case s[i] == '}':
			if len(stack) == 0 || stack[len(stack)-1] != "{" {
				return fmt.Errorf("unexpected } at %d, stack %v", i, stack)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("unclosed %v", stack)
	}
	return nil
}

func TestCompile_AlwaysBalanced(t *testing.T) {
	all := [][2]string{
		{"margin-top", "1pt"},
		{"margin-bottom", "2pt"},
		{"margin-left", "3pt"},
		{"margin-right", "4pt"},
		{"text-align", "center"},
		{"font-family", "Gentium"},
		{"font-size", "10pt"},
		{"text-indent", "1em"},
		{"color", "blue"},
		{"text-align", "right"},
	}
	for mask := range 1 << len(all) {
		var d Declaration
		for i, p := range all {
			if mask&(1<<i) != 0 {
				d.Set(p[0], p[1])
			}
		}
		open, tail := Compile(d)
		if err := balanced(open + "content" + tail); err != nil {
			t.Fatalf("mask %b: %v\n%s", mask, err, open+"content"+tail)
		}
	}
}

func TestCompile_NestsInsideOtherStyles(t *testing.T) {
	o1, c1 := Compile(NewDeclaration("text-align", "center", "color", "red"))
	o2, c2 := Compile(NewDeclaration("margin-left", "1em", "font-style", "italic"))
	// classes open in order and close in reverse
	if err := balanced(o1 + o2 + "x" + c2 + c1); err != nil {
		t.Error(err)
	}
}

func TestFontArgs(t *testing.T) {
	args := FontArgs(NewDeclaration("color", "red", "font-family", "Hack", "font-size", "8pt"))
	if len(args) != 2 || args[0].Key != "family" || args[1].Key != "size" {
		t.Errorf("FontArgs() = %+v", args)
	}
}

func TestImageWidth(t *testing.T) {
	tests := map[string]string{
		"50%":   "50%fw",
		"100pt": "100pt",
		"3cm":   "3cm",
		"":      "",
	}
	for in, want := range tests {
		if got := ImageWidth(in); got != want {
			t.Errorf("ImageWidth(%q) = %q, want %q", in, got, want)
		}
	}
}
