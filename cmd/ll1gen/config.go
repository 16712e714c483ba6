package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"sigs.k8s.io/yaml"

	"github.com/ava12/ll1/langdef"
	"github.com/ava12/ll1/lexer"
	"github.com/ava12/ll1/parser"
)

type tokenConfig struct {
	Type  int    `json:"type"`
	Name  string `json:"name"`
	Re    string `json:"re"`
	Aside bool   `json:"aside,omitempty"`
}

// keywordConfig reclassifies tokens of type named From having one of Words as texts.
// Type is assigned automatically if not set and To names no declared token type.
type keywordConfig struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Type  *int     `json:"type,omitempty"`
	Words []string `json:"words"`
}

type config struct {
	Tokens    []tokenConfig   `json:"tokens"`
	Keywords  []keywordConfig `json:"keywords,omitempty"`
	MaxStates int             `json:"maxStates,omitempty"`
	Grammar   string          `json:"grammar"`
}

// loadConfig decodes YAML or JSON configuration.
func loadConfig(name string) (*config, error) {
	data, e := os.ReadFile(name)
	if e != nil {
		return nil, e
	}

	return decodeConfig(data)
}

func decodeConfig(data []byte) (*config, error) {
	c := &config{}
	e := yaml.UnmarshalStrict(data, c)
	if e != nil {
		return nil, fmt.Errorf("malformed configuration: %w", e)
	}
	if strings.TrimSpace(c.Grammar) == "" {
		return nil, fmt.Errorf("malformed configuration: no grammar")
	}

	return c, nil
}

type toolchain struct {
	lexer  *lexer.Lexer
	parser *parser.Parser
}

func (c *config) keywordOptions() ([]lexer.Option, error) {
	byName := make(map[string]lexer.TokenType, len(c.Tokens))
	nextType := 0
	for _, t := range c.Tokens {
		byName[t.Name] = lexer.TokenType{Type: t.Type, TypeName: t.Name, Re: t.Re, Aside: t.Aside}
		if t.Type >= nextType {
			nextType = t.Type + 1
		}
	}

	opts := make([]lexer.Option, 0, len(c.Keywords))
	for _, kw := range c.Keywords {
		from, has := byName[kw.From]
		if !has {
			names := maps.Keys(byName)
			slices.Sort(names)
			return nil, fmt.Errorf("keywords refer to unknown token type %q, known types are: %s",
				kw.From, strings.Join(names, ", "))
		}

		to, has := byName[kw.To]
		if !has {
			to = lexer.TokenType{Type: nextType, TypeName: kw.To}
			if kw.Type != nil {
				to.Type = *kw.Type
			}
			if to.Type >= nextType {
				nextType = to.Type + 1
			}
			byName[kw.To] = to
		}

		opts = append(opts, lexer.WithKeywords(from.Type, to, kw.Words...))
	}
	return opts, nil
}

// build creates lexer and parser for configuration.
func (c *config) build(name string, logger *slog.Logger) (*toolchain, error) {
	types := make([]lexer.TokenType, len(c.Tokens))
	for i, t := range c.Tokens {
		types[i] = lexer.TokenType{Type: t.Type, TypeName: t.Name, Re: t.Re, Aside: t.Aside}
	}

	opts, e := c.keywordOptions()
	if e != nil {
		return nil, e
	}

	opts = append(opts, lexer.WithLogger(logger), lexer.WithMaxStates(c.MaxStates))
	l, e := lexer.New(types, opts...)
	if e != nil {
		return nil, e
	}

	g, e := langdef.ParseString(name, c.Grammar)
	if e != nil {
		return nil, e
	}

	p, e := parser.New(g, parser.WithLogger(logger))
	if e != nil {
		return nil, e
	}
	if unreachable := p.Analysis().Unreachable(); len(unreachable) > 0 {
		logger.Warn("unreachable nonterminals", "names", unreachable)
	}

	return &toolchain{l, p}, nil
}
