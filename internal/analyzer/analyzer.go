// Package analyzer scores single source files against a fixed set of
// structural quality rules.
//
// An analysis is a one-way pipeline: the file is parsed into a tagged
// tree, one pre-pass extracts whole-program fact sets, then each rule
// in the registry computes its score from the tree and the facts.
// Nothing is cached between calls; analyzing the same source twice
// yields bit-identical reports.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imyousuf/codescore/internal/parser"
	"github.com/imyousuf/codescore/internal/parser/python"
)

// Analyzer parses and scores source files.
type Analyzer struct {
	registry *parser.Registry
}

// New creates an Analyzer with all built-in language parsers registered.
func New() *Analyzer {
	registry := parser.NewRegistry()
	registry.Register(python.NewParser())
	return &Analyzer{registry: registry}
}

// SupportedExtensions returns the file extensions the analyzer can score.
func (a *Analyzer) SupportedExtensions() []string {
	return a.registry.SupportedExtensions()
}

// AnalyzeFile reads and scores the file at path. The path must name an
// existing regular file in a supported language.
func (a *Analyzer) AnalyzeFile(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return a.AnalyzeSource(path, content)
}

// AnalyzeSource scores source text directly. The path selects the
// language parser by extension and labels the report; nothing is read
// from disk.
func (a *Analyzer) AnalyzeSource(path string, content []byte) (*Report, error) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := a.registry.GetByExtension(ext)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, parser.ErrUnsupportedExtension)
	}

	result, err := p.ParseFile(path, content)
	if err != nil {
		return nil, err
	}

	facts := ExtractFacts(result.Root)

	report := &Report{
		FilePath: path,
		Scores:   make([]Score, 0, len(rules)),
	}
	sum := 0.0
	for _, rule := range rules {
		value := rule.Score(result.Root, facts)
		report.Scores = append(report.Scores, Score{Metric: rule.Metric, Value: value})
		sum += value
	}
	report.Total = sum / float64(len(rules))

	return report, nil
}
