package scanner

import (
	"regexp"
)

const educationalMarkers = `(?:example|tutorial|for educational purposes|for demonstration purposes)`

// A marker counts only inside a comment. Line comments must start a line or
// follow whitespace so that URLs such as https://example.com are not comments.
var educationalComments = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:^|\s)//[^\n]*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?im)(?:^|\s)#[^\n]*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?im)(?:^|\s)--[^\n]*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?i)/\*(?:[^*]|\*+[^*/])*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?i)<!--(?:[^-]|-[^-])*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?i)"""(?:[^"]|"[^"])*\b` + educationalMarkers + `\b`),
	regexp.MustCompile(`(?i)'''(?:[^']|'[^'])*\b` + educationalMarkers + `\b`),
}

func hasEducationalComment(code string) bool {
	for _, re := range educationalComments {
		if re.MatchString(code) {
			return true
		}
	}
	return false
}
