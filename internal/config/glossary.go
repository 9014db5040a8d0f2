package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"onetexplorer/internal/impact"

	"gopkg.in/yaml.v3"
)

// Glossary is an optional YAML file of extra classifier patterns. Entries
// give either a literal phrase or a raw regular expression.
type Glossary struct {
	Terms []GlossaryTerm `yaml:"terms"`
}

type GlossaryTerm struct {
	Phrase   string          `yaml:"phrase,omitempty"`
	Pattern  string          `yaml:"pattern,omitempty"`
	Category impact.Category `yaml:"category"`
	Weight   float64         `yaml:"weight,omitempty"`
}

func LoadGlossary(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}
	var g Glossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse glossary yaml: %w", err)
	}
	if _, err := impact.CompilePatterns(g.PatternSpecs()); err != nil {
		return nil, fmt.Errorf("compile glossary: %w", err)
	}
	return &g, nil
}

// PatternSpecs converts the terms into classifier patterns.
func (g *Glossary) PatternSpecs() []impact.PatternSpec {
	if g == nil {
		return nil
	}
	specs := make([]impact.PatternSpec, 0, len(g.Terms))
	for _, t := range g.Terms {
		expr := strings.TrimSpace(t.Pattern)
		if expr == "" {
			expr = impact.PhrasePattern(t.Phrase)
		}
		specs = append(specs, impact.PatternSpec{Category: t.Category, Expr: expr, Weight: t.Weight})
	}
	return specs
}

func normalizeTextToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AppendGlossaryTerm adds a phrase to the glossary at path, creating the
// file if needed. Phrases already present are left alone.
func AppendGlossaryTerm(path, phrase string, category impact.Category, weight float64) (bool, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false, fmt.Errorf("empty glossary phrase")
	}
	if !category.Valid() {
		return false, fmt.Errorf("invalid glossary category %d", int(category))
	}
	if weight < 0 {
		return false, fmt.Errorf("negative glossary weight %v", weight)
	}

	var glossary Glossary
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &glossary); err != nil {
			return false, fmt.Errorf("parse existing glossary: %w", err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read glossary: %w", err)
	}

	normalized := normalizeTextToken(phrase)
	for _, t := range glossary.Terms {
		if normalizeTextToken(t.Phrase) == normalized {
			return false, nil
		}
	}

	glossary.Terms = append(glossary.Terms, GlossaryTerm{
		Phrase:   phrase,
		Category: category,
		Weight:   weight,
	})
	return true, saveGlossary(path, &glossary)
}

func saveGlossary(path string, glossary *Glossary) error {
	data, err := yaml.Marshal(glossary)
	if err != nil {
		return fmt.Errorf("marshal glossary: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Classifier builds the classifier for this config: the built-in patterns,
// then any glossary terms, scored with the configured policy.
func (c Config) Classifier() (*impact.Classifier, error) {
	specs := impact.DefaultPatternSpecs()
	if c.GlossaryPath != "" {
		g, err := LoadGlossary(c.GlossaryPath)
		if err != nil {
			return nil, err
		}
		specs = append(specs, g.PatternSpecs()...)
	}
	patterns, err := impact.CompilePatterns(specs)
	if err != nil {
		return nil, fmt.Errorf("compile classifier patterns: %w", err)
	}
	return impact.NewClassifier(patterns, c.Policy), nil
}
