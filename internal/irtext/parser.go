package irtext

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Module] {
	p, err := participle.Build[Module](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("irtext: failed to build parser: %w", err))
	}
	return p
}

// ParseFile reads and parses path.
func ParseFile(path string) (*Module, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("irtext: failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses source, tagging syntax errors with sourceName.
func ParseSource(sourceName, source string) (*Module, error) {
	return parser.ParseString(sourceName, source)
}
