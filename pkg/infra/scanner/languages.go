package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

// LanguageProfile supplements the generic catalogue for one declared language.
type LanguageProfile struct {
	// SafeContexts mark code as educational (tests, doc examples, doctests).
	SafeContexts []*regexp.Regexp
	// RiskPatterns are wrapped as lang-specific rules with a fixed score.
	RiskPatterns []*regexp.Regexp
}

// rules wraps the risk patterns of the profile registered under name.
func (p LanguageProfile) rules(name string) []PatternRule {
	out := make([]PatternRule, 0, len(p.RiskPatterns))
	for i, re := range p.RiskPatterns {
		out = append(out, PatternRule{
			ID:       name + "-" + strconv.Itoa(i+1),
			Pattern:  re,
			Score:    LangSpecificScore,
			Category: LangSpecific,
		})
	}
	return out
}

var (
	javascriptProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile("(?m)^\\s*(?:describe|it|test)\\s*\\(\\s*[\"'`]"),
			regexp.MustCompile(`@example\b`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bdocument\.write\s*\(`),
			regexp.MustCompile(`\.(?:inner|outer)HTML\s*=[^=]`),
			regexp.MustCompile(`\bwindow\.location(?:\.href)?\s*=[^=]`),
			regexp.MustCompile(`__proto__`),
		},
	}

	pythonProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*>>>\s`),
			regexp.MustCompile(`(?m)^\s*def\s+test_\w*\s*\(`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bos\.system\s*\(`),
			regexp.MustCompile(`\bsubprocess\.(?:Popen|call|run|check_output)\s*\(`),
			regexp.MustCompile(`\bpickle\.loads?\s*\(`),
			regexp.MustCompile(`\b__import__\s*\(`),
		},
	}

	phpProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*\*\s*@example\b`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\$_(?:GET|POST|REQUEST|COOKIE)\s*\[`),
			regexp.MustCompile(`\bassert\s*\(\s*\$`),
			regexp.MustCompile(`\binclude(?:_once)?\s*\(?\s*\$`),
			regexp.MustCompile(`\bunserialize\s*\(`),
		},
	}

	shellProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`(?mi)^\s*#\s*usage:`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bchmod\s+(?:-R\s+)?777\b`),
			regexp.MustCompile(`>\s*/dev/sd[a-z]\b`),
			regexp.MustCompile(`\bcrontab\s+-r\b`),
			regexp.MustCompile(`\bhistory\s+-c\b`),
		},
	}

	powershellProfile = LanguageProfile{
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:Invoke-Expression|iex)\b`),
			regexp.MustCompile(`(?i)\bDownloadString\s*\(`),
			regexp.MustCompile(`(?i)\bSet-MpPreference\b`),
		},
	}

	sqlProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`(?mi)^\s*--\s*(?:sample|demo)\b`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bxp_cmdshell\b`),
			regexp.MustCompile(`(?i)\bINTO\s+(?:OUT|DUMP)FILE\b`),
			regexp.MustCompile(`(?i)\bUNION\s+(?:ALL\s+)?SELECT\b`),
			regexp.MustCompile(`(?i)\bLOAD_FILE\s*\(`),
		},
	}

	goProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`\bfunc\s+Example\w*\s*\(\s*\)`),
			regexp.MustCompile(`\bfunc\s+Test\w*\s*\(\s*t\s+\*testing\.T\s*\)`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bexec\.Command(?:Context)?\s*\(`),
			regexp.MustCompile(`\bunsafe\.Pointer\b`),
			regexp.MustCompile(`\bsyscall\.(?:Exec|ForkExec)\s*\(`),
			regexp.MustCompile(`\bplugin\.Open\s*\(`),
		},
	}

	javaProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`@Test\b`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bRuntime\.getRuntime\(\)\.exec\s*\(`),
			regexp.MustCompile(`\bnew\s+ObjectInputStream\s*\(`),
			regexp.MustCompile(`\bClass\.forName\s*\(`),
			regexp.MustCompile(`\bScriptEngineManager\b`),
		},
	}

	rubyProfile = LanguageProfile{
		SafeContexts: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*(?:describe|it)\s+["']`),
		},
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bMarshal\.load\b`),
			regexp.MustCompile(`\binstance_eval\b`),
			regexp.MustCompile(`%x\{`),
			regexp.MustCompile(`\bOpen3\.`),
		},
	}

	cProfile = LanguageProfile{
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`\bgets\s*\(`),
			regexp.MustCompile(`\bstrcpy\s*\(`),
			regexp.MustCompile(`\bmprotect\s*\(`),
		},
	}

	htmlProfile = LanguageProfile{
		RiskPatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<iframe\b[^>]*\bsrc\s*=`),
			regexp.MustCompile(`(?i)<meta\b[^>]*http-equiv\s*=\s*["']?refresh`),
			regexp.MustCompile(`(?i)<(?:object|embed)\b`),
		},
	}
)

// defaultProfiles is keyed by lowercased language name. Aliases share a profile.
var defaultProfiles = map[string]LanguageProfile{
	"javascript": javascriptProfile,
	"js":         javascriptProfile,
	"typescript": javascriptProfile,
	"ts":         javascriptProfile,
	"jsx":        javascriptProfile,
	"tsx":        javascriptProfile,
	"python":     pythonProfile,
	"py":         pythonProfile,
	"php":        phpProfile,
	"shell":      shellProfile,
	"bash":       shellProfile,
	"sh":         shellProfile,
	"zsh":        shellProfile,
	"powershell": powershellProfile,
	"sql":        sqlProfile,
	"go":         goProfile,
	"golang":     goProfile,
	"java":       javaProfile,
	"ruby":       rubyProfile,
	"c":          cProfile,
	"cpp":        cProfile,
	"c++":        cProfile,
	"html":       htmlProfile,
	"htm":        htmlProfile,
}

// DefaultProfiles returns a copy of the built-in language table.
func DefaultProfiles() map[string]LanguageProfile {
	out := make(map[string]LanguageProfile, len(defaultProfiles))
	for name, profile := range defaultProfiles {
		out[name] = profile
	}
	return out
}

func normalizeLanguage(language string) string {
	return strings.ToLower(language)
}
