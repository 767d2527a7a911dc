package parser

import "errors"

// Sentinel errors shared by parsers and their callers.
var (
	// ErrSyntax indicates the source text is not well formed in the
	// target grammar. Analysis aborts with no partial results.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedExtension indicates no parser is registered for the
	// file's extension.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)
