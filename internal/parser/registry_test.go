package parser

import (
	"testing"

	"github.com/imyousuf/codescore/internal/syntax"
)

// stubParser is a minimal Parser for registry tests.
type stubParser struct {
	lang Language
	exts []string
}

func (s *stubParser) Language() Language   { return s.lang }
func (s *stubParser) Extensions() []string { return s.exts }
func (s *stubParser) ParseFile(filePath string, content []byte) (*ParseResult, error) {
	return &ParseResult{
		Root:     &syntax.Node{Kind: syntax.KindModule},
		FilePath: filePath,
		Language: s.lang,
	}, nil
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	p := &stubParser{lang: LangPython, exts: []string{".py", ".pyi"}}
	r.Register(p)

	got, ok := r.Get(LangPython)
	if !ok || got != Parser(p) {
		t.Errorf("Get(%q) = %v, %v; want the registered parser", LangPython, got, ok)
	}

	byExt, ok := r.GetByExtension(".pyi")
	if !ok || byExt != Parser(p) {
		t.Errorf("GetByExtension(.pyi) = %v, %v; want the registered parser", byExt, ok)
	}

	if _, ok := r.GetByExtension(".rb"); ok {
		t.Error("GetByExtension(.rb) should not find a parser")
	}
	if _, ok := r.Get(Language("ruby")); ok {
		t.Error("Get(ruby) should not find a parser")
	}
}

func TestRegistryOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubParser{lang: Language("b"), exts: []string{".b"}})
	r.Register(&stubParser{lang: Language("a"), exts: []string{".a", ".a2"}})

	langs := r.Languages()
	if len(langs) != 2 || langs[0] != Language("b") || langs[1] != Language("a") {
		t.Errorf("Languages() = %v, want [b a] in registration order", langs)
	}

	exts := r.SupportedExtensions()
	want := []string{".b", ".a", ".a2"}
	if len(exts) != len(want) {
		t.Fatalf("SupportedExtensions() = %v, want %v", exts, want)
	}
	for i := range want {
		if exts[i] != want[i] {
			t.Errorf("SupportedExtensions()[%d] = %q, want %q", i, exts[i], want[i])
		}
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewRegistry()
	first := &stubParser{lang: LangPython, exts: []string{".py"}}
	second := &stubParser{lang: LangPython, exts: []string{".py"}}
	r.Register(first)
	r.Register(second)

	got, _ := r.Get(LangPython)
	if got != Parser(second) {
		t.Error("re-registering a language should replace the parser")
	}
	if langs := r.Languages(); len(langs) != 1 {
		t.Errorf("Languages() = %v, want a single entry", langs)
	}
}
