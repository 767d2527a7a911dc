package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imyousuf/codescore/internal/parser/python"
	"github.com/imyousuf/codescore/internal/syntax"
)

func parseTree(t *testing.T, source string) *syntax.Node {
	t.Helper()
	result, err := python.NewParser().ParseFile("facts.py", []byte(source))
	require.NoError(t, err)
	return result.Root
}

func TestExtractFacts(t *testing.T) {
	source := `class Shape:
    def area(self):
        pass

    class Meta:
        def options(self):
            pass


def free():
    global counter, total
    counter = 1
`
	facts := ExtractFacts(parseTree(t, source))

	assert.Equal(t, map[string]bool{"Shape": true, "Meta": true}, facts.ClassNames)
	assert.Equal(t, map[string]bool{"counter": true, "total": true}, facts.GlobalVars)

	// The method set is flat across classes, nested ones included, and
	// module-level functions stay out of it.
	assert.Equal(t, map[string]bool{"area": true, "options": true}, facts.ClassMethods)
}

func TestExtractFactsSkipsAsyncMethods(t *testing.T) {
	source := `class Server:
    async def start(self):
        pass

    def stop(self):
        pass
`
	facts := ExtractFacts(parseTree(t, source))
	assert.Equal(t, map[string]bool{"stop": true}, facts.ClassMethods)
}

func TestExtractFactsEmptyTree(t *testing.T) {
	facts := ExtractFacts(parseTree(t, ""))

	assert.Empty(t, facts.ClassNames)
	assert.Empty(t, facts.GlobalVars)
	assert.Empty(t, facts.ClassMethods)
}

func TestExtractFactsDecoratedMethodCounts(t *testing.T) {
	source := `class Box:
    @property
    def value(self):
        return 1
`
	facts := ExtractFacts(parseTree(t, source))
	assert.True(t, facts.ClassMethods["value"], "decorated method should register")
}
