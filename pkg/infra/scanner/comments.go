package scanner

import "strings"

type lineMarker struct {
	text string
	// spaced markers only open a comment at line start or after whitespace.
	spaced bool
}

type blockMarker struct {
	open, close string
}

// commentSyntax describes where comments may appear in one language.
type commentSyntax struct {
	line  []lineMarker
	block []blockMarker
	// quotes open string literals; comment markers inside them are code.
	quotes string
	// raw quotes take no backslash escapes.
	raw string
	// multiline quotes may span newlines; the others end at the line.
	multiline string
}

var (
	cLikeSyntax = commentSyntax{
		line:   []lineMarker{{text: "//"}},
		block:  []blockMarker{{"/*", "*/"}},
		quotes: `"'`,
	}
	javascriptSyntax = commentSyntax{
		line:      []lineMarker{{text: "//"}},
		block:     []blockMarker{{"/*", "*/"}},
		quotes:    "\"'`",
		multiline: "`",
	}
	goSyntax = commentSyntax{
		line:      []lineMarker{{text: "//"}},
		block:     []blockMarker{{"/*", "*/"}},
		quotes:    "\"'`",
		raw:       "`",
		multiline: "`",
	}
	phpSyntax = commentSyntax{
		line:      []lineMarker{{text: "//"}, {text: "#"}},
		block:     []blockMarker{{"/*", "*/"}},
		quotes:    "\"'`",
		multiline: "\"'`",
	}
	pythonSyntax = commentSyntax{
		line:   []lineMarker{{text: "#"}},
		block:  []blockMarker{{`"""`, `"""`}, {"'''", "'''"}},
		quotes: `"'`,
	}
	rubySyntax = commentSyntax{
		line:      []lineMarker{{text: "#"}},
		block:     []blockMarker{{"=begin", "=end"}},
		quotes:    `"'`,
		multiline: `"'`,
	}
	shellSyntax = commentSyntax{
		line:      []lineMarker{{text: "#", spaced: true}},
		quotes:    `"'`,
		raw:       "'",
		multiline: `"'`,
	}
	powershellSyntax = commentSyntax{
		line:      []lineMarker{{text: "#"}},
		block:     []blockMarker{{"<#", "#>"}},
		quotes:    `"'`,
		raw:       `"'`,
		multiline: `"'`,
	}
	sqlSyntax = commentSyntax{
		line:      []lineMarker{{text: "--"}},
		block:     []blockMarker{{"/*", "*/"}},
		quotes:    `"'`,
		raw:       `"'`,
		multiline: `"'`,
	}
	luaSyntax = commentSyntax{
		line:   []lineMarker{{text: "--"}},
		block:  []blockMarker{{"--[[", "]]"}},
		quotes: `"'`,
	}
	markupSyntax = commentSyntax{
		block: []blockMarker{{"<!--", "-->"}},
	}
	// plaintextSyntax is used when the language is unknown.
	plaintextSyntax = commentSyntax{
		line: []lineMarker{
			{text: "//", spaced: true},
			{text: "#", spaced: true},
			{text: "--", spaced: true},
		},
		block:  []blockMarker{{"/*", "*/"}, {"<!--", "-->"}},
		quotes: `"'`,
	}
)

var commentSyntaxes = map[string]commentSyntax{
	"javascript": javascriptSyntax,
	"js":         javascriptSyntax,
	"typescript": javascriptSyntax,
	"ts":         javascriptSyntax,
	"jsx":        javascriptSyntax,
	"tsx":        javascriptSyntax,
	"go":         goSyntax,
	"golang":     goSyntax,
	"java":       cLikeSyntax,
	"c":          cLikeSyntax,
	"cpp":        cLikeSyntax,
	"c++":        cLikeSyntax,
	"csharp":     cLikeSyntax,
	"c#":         cLikeSyntax,
	"rust":       cLikeSyntax,
	"kotlin":     cLikeSyntax,
	"swift":      cLikeSyntax,
	"php":        phpSyntax,
	"python":     pythonSyntax,
	"py":         pythonSyntax,
	"ruby":       rubySyntax,
	"rb":         rubySyntax,
	"perl":       shellSyntax,
	"r":          shellSyntax,
	"shell":      shellSyntax,
	"bash":       shellSyntax,
	"sh":         shellSyntax,
	"zsh":        shellSyntax,
	"powershell": powershellSyntax,
	"ps1":        powershellSyntax,
	"sql":        sqlSyntax,
	"lua":        luaSyntax,
	"html":       markupSyntax,
	"htm":        markupSyntax,
	"xml":        markupSyntax,
}

func syntaxFor(language string) commentSyntax {
	if syntax, ok := commentSyntaxes[normalizeLanguage(language)]; ok {
		return syntax
	}
	return plaintextSyntax
}

// stripComments removes the comments of the declared language. String
// literals are copied through untouched, so markers inside them stay code.
// Newlines inside block comments are kept so line anchors still hold.
func stripComments(code, language string) string {
	syntax := syntaxFor(language)
	var out strings.Builder
	out.Grow(len(code))

	for i := 0; i < len(code); {
		if b, ok := syntax.blockAt(code, i); ok {
			i = skipBlock(&out, code, i+len(b.open), b.close)
			continue
		}
		if syntax.lineAt(code, i) {
			if end := strings.IndexByte(code[i:], '\n'); end >= 0 {
				i += end
			} else {
				i = len(code)
			}
			continue
		}
		if q := code[i]; strings.IndexByte(syntax.quotes, q) >= 0 {
			end := syntax.stringEnd(code, i)
			out.WriteString(code[i:end])
			i = end
			continue
		}
		out.WriteByte(code[i])
		i++
	}
	return out.String()
}

func (s commentSyntax) blockAt(code string, i int) (blockMarker, bool) {
	for _, b := range s.block {
		if strings.HasPrefix(code[i:], b.open) {
			return b, true
		}
	}
	return blockMarker{}, false
}

func (s commentSyntax) lineAt(code string, i int) bool {
	for _, m := range s.line {
		if !strings.HasPrefix(code[i:], m.text) {
			continue
		}
		if !m.spaced || i == 0 || isSpace(code[i-1]) {
			return true
		}
	}
	return false
}

// stringEnd returns the index just past the literal opened at code[start].
// Unterminated literals run to the end of the line, or of the input for
// multiline quotes.
func (s commentSyntax) stringEnd(code string, start int) int {
	q := code[start]
	raw := strings.IndexByte(s.raw, q) >= 0
	multiline := strings.IndexByte(s.multiline, q) >= 0
	for i := start + 1; i < len(code); i++ {
		switch c := code[i]; {
		case c == '\\' && !raw:
			i++
		case c == q:
			return i + 1
		case c == '\n' && !multiline:
			return i
		}
	}
	return len(code)
}

func skipBlock(out *strings.Builder, code string, from int, closing string) int {
	end := strings.Index(code[from:], closing)
	body := code[from:]
	next := len(code)
	if end >= 0 {
		body = code[from : from+end]
		next = from + end + len(closing)
	}
	out.WriteByte(' ')
	out.WriteString(strings.Repeat("\n", strings.Count(body, "\n")))
	return next
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
