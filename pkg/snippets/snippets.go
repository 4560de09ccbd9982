package snippets

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind tells keyword completions apart from snippet templates.
type Kind string

const (
	KindKeyword Kind = "keyword"
	KindSnippet Kind = "snippet"
)

// Snippet is a named multi-line pseudocode template.
type Snippet struct {
	Key      string `yaml:"key" json:"key"`
	Template string `yaml:"template" json:"template"`
}

// Suggestion is one completion candidate.
type Suggestion struct {
	Label  string `json:"label"`
	Kind   Kind   `json:"kind"`
	Insert string `json:"insert"`
}

// Catalog is a read-only table of keywords and snippets.
type Catalog struct {
	keywords []string
	snippets []Snippet
	byKey    map[string]int
}

type catalogFile struct {
	Keywords []string  `yaml:"keywords"`
	Snippets []Snippet `yaml:"snippets"`
}

// Parse decodes a catalog from YAML. Duplicate snippet keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing snippet catalog: %w", err)
	}

	c := &Catalog{
		keywords: file.Keywords,
		snippets: file.Snippets,
		byKey:    make(map[string]int, len(file.Snippets)),
	}
	for i, s := range file.Snippets {
		if s.Key == "" {
			return nil, fmt.Errorf("snippet %d has no key", i)
		}
		if _, dup := c.byKey[s.Key]; dup {
			return nil, fmt.Errorf("duplicate snippet key %q", s.Key)
		}
		c.byKey[s.Key] = i
	}
	return c, nil
}

var builtin *Catalog

func init() {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	builtin = c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return builtin
}

// Lookup returns the template for key.
func (c *Catalog) Lookup(key string) (string, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return "", false
	}
	return c.snippets[i].Template, true
}

// Keys returns the snippet keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.snippets))
	for i, s := range c.snippets {
		keys[i] = s.Key
	}
	return keys
}

// Snippets returns a copy of all snippets in catalog order.
func (c *Catalog) Snippets() []Snippet {
	out := make([]Snippet, len(c.snippets))
	copy(out, c.snippets)
	return out
}

// Keywords returns the keyword list.
func (c *Catalog) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Suggest returns completion candidates for the word being typed. An empty
// prefix returns every keyword followed by every snippet. Otherwise
// candidates are fuzzy matched; prefix matches come first and a keyword
// ranks above a snippet of the same spelling.
func (c *Catalog) Suggest(prefix string) []Suggestion {
	all := make([]Suggestion, 0, len(c.keywords)+len(c.snippets))
	for _, k := range c.keywords {
		all = append(all, Suggestion{Label: k, Kind: KindKeyword, Insert: k})
	}
	for _, s := range c.snippets {
		all = append(all, Suggestion{Label: s.Key, Kind: KindSnippet, Insert: s.Template})
	}

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return all
	}

	labels := make([]string, len(all))
	for i, s := range all {
		labels[i] = strings.ToLower(s.Label)
	}
	matches := fuzzy.Find(strings.ToLower(prefix), labels)

	// Prefix matches first, then keywords before snippets, then fuzzy
	// score, then catalog order.
	lower := strings.ToLower(prefix)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		pa := strings.HasPrefix(labels[a.Index], lower)
		pb := strings.HasPrefix(labels[b.Index], lower)
		if pa != pb {
			return pa
		}
		ka, kb := all[a.Index].Kind == KindKeyword, all[b.Index].Kind == KindKeyword
		if ka != kb {
			return ka
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Index < b.Index
	})

	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = all[m.Index]
	}
	return out
}
