// Package sile formats SILE markup: escaping of literal text and the
// command/environment syntax used by the translator.
package sile

import (
	"strings"
)

// metachars are the characters SILE reserves for its own syntax.
var metachars = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`%`, `\%`,
)

// Escape quotes literal text so SILE reads it back unchanged. It is a single
// pass: applying it twice escapes the escapes.
func Escape(text string) string {
	return metachars.Replace(text)
}

// Arg is a single key=value option of a command.
type Arg struct {
	Key   string
	Value string
}

// A is a shorthand for constructing an Arg.
func A(key, value string) Arg {
	return Arg{Key: key, Value: value}
}

// FormatArgs renders options in the given order as "[k=v,k=v]". No options
// render as an empty string.
func FormatArgs(args ...Arg) string {
	if len(args) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.Key)
		sb.WriteByte('=')
		sb.WriteString(a.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Command returns the opening of a command wrapping content: `\name[args]{`.
// It is closed by "}".
func Command(name string, args ...Arg) string {
	return `\` + name + FormatArgs(args...) + "{"
}

// Call returns a command without content: `\name[args]`.
func Call(name string, args ...Arg) string {
	return `\` + name + FormatArgs(args...)
}

// Env returns the opening of an environment: `\begin[args]{name}`.
func Env(name string, args ...Arg) string {
	return `\begin` + FormatArgs(args...) + "{" + name + "}"
}

// EndEnv closes an environment opened with Env.
func EndEnv(name string) string {
	return `\end{` + name + "}"
}

// Quote protects an option value that would otherwise end the option early.
// Values without separators are returned unchanged.
func Quote(value string) string {
	if !strings.ContainsAny(value, ",;=]\" \t\n") {
		return value
	}
	return `"` + quoted.Replace(value) + `"`
}

var quoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
