package parser

import "github.com/imyousuf/codescore/internal/syntax"

// Language represents a supported source language.
type Language string

const (
	LangPython Language = "python"
)

// FileExtensions maps each language to its recognized file extensions.
var FileExtensions = map[Language][]string{
	LangPython: {".py", ".pyi"},
}

// ParseResult holds the lowered syntax tree for one parsed file.
type ParseResult struct {
	Root     *syntax.Node
	FilePath string
	Language Language
}

// Parser defines the interface for language-specific source code parsers.
type Parser interface {
	// Language returns which language this parser handles.
	Language() Language

	// Extensions returns the file extensions this parser can handle.
	Extensions() []string

	// ParseFile parses the given file content into a lowered syntax tree.
	// A syntax error in the content is fatal: the returned error wraps
	// ErrSyntax and no tree is produced.
	ParseFile(filePath string, content []byte) (*ParseResult, error)
}
