// Package css parses the CSS-like stylesheets that drive SILE formatting.
//
// Only plain rules are kept: a comma separated selector list and an ordered
// list of declarations. At-rules are skipped.
package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The source identifies what's being
// parsed and is used for diagnostics only.
func (p *Parser) Parse(data []byte, source string) *Stylesheet {
	sheet := &Stylesheet{
		Source:   source,
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	p.log.Debug("Parsing CSS", zap.String("source", source), zap.Int("bytes", len(data)))

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+parser.Err().Error())
				p.log.Warn("CSS parse error", zap.String("source", source), zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			// Nothing inside @media, @font-face, @page and friends maps to
			// SILE commands
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule block", zap.String("rule", atRule))
			p.skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import, @charset)
			atRule := string(data)
			sheet.Warnings = append(sheet.Warnings, "unsupported at-rule: "+atRule)
			p.log.Debug("Skipping @-rule", zap.String("rule", atRule))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser)
			if len(selectors) == 0 {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{
				Selectors:    selectors,
				Declarations: decls,
			})

		case css.QualifiedRuleGrammar:
			// Selector without a block, nothing to attach
			p.log.Debug("Skipping qualified rule without block", zap.ByteString("data", data))
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	// Build full selector string from data and values
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar,
// keeping source order.
func (p *Parser) parseDeclarations(parser *css.Parser) []Declaration {
	var decls []Declaration

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return decls

		case css.DeclarationGrammar:
			name := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			value := rawValue(values)
			if value == "" {
				continue
			}
			decls = append(decls, Declaration{Name: name, Value: value})

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) have no SILE counterpart
			continue
		}
	}
}

// rawValue rebuilds the CSS text of a value, collapsing whitespace runs to a
// single space.
func rawValue(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			// Add space between non-whitespace tokens
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
