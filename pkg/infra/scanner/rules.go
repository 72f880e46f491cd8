package scanner

import (
	"regexp"
	"strings"
)

// Category groups rules by the kind of abuse they detect.
type Category string

const (
	CodeExecution    Category = "code-execution"
	CommandExecution Category = "command-execution"
	ReverseShell     Category = "reverse-shell"
	Destructive      Category = "destructive"
	XSS              Category = "xss"
	DataExfiltration Category = "data-exfiltration"
	Network          Category = "network"
	Obfuscation      Category = "obfuscation"
	Cryptomining     Category = "cryptomining"
	FileAccess       Category = "file-access"
	LangSpecific     Category = "lang-specific"
)

// Context restricts where a rule is evaluated.
type Context string

const (
	// AnyContext evaluates the rule against the raw code.
	AnyContext Context = ""
	// HTMLContext evaluates the rule only for markup languages.
	HTMLContext Context = "html"
	// NonCommentContext evaluates the rule against the code with comments removed.
	NonCommentContext Context = "non-comment"
)

// LangSpecificScore is the fixed score of every language risk pattern.
const LangSpecificScore = 5

type PatternRule struct {
	ID       string
	Pattern  *regexp.Regexp
	Score    int
	Category Category
	Context  Context
}

var inlineFlags = regexp.MustCompile(`^\(\?[a-zA-Z]+\)`)

// Source is the expression text without its inline flag group, trimmed.
func (r PatternRule) Source() string {
	return patternSource(r.Pattern)
}

func patternSource(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return strings.TrimSpace(inlineFlags.ReplaceAllString(re.String(), ""))
}

var defaultRules = []PatternRule{
	{ID: "eval-call", Pattern: regexp.MustCompile(`\beval\s*\(`), Score: 10, Category: CodeExecution},
	{ID: "function-constructor", Pattern: regexp.MustCompile(`\bnew\s+Function\s*\(`), Score: 8, Category: CodeExecution},
	{ID: "string-timer", Pattern: regexp.MustCompile("\\bset(?:Timeout|Interval)\\s*\\(\\s*[\"'`]"), Score: 5, Category: CodeExecution},
	{
		ID:       "process-exec",
		Pattern:  regexp.MustCompile(`\b(?:exec|execSync|spawn|spawnSync|popen|shell_exec|passthru|proc_open)\s*\(`),
		Score:    7,
		Category: CommandExecution,
		Context:  NonCommentContext,
	},
	{ID: "child-process", Pattern: regexp.MustCompile(`require\s*\(\s*["']child_process["']\s*\)`), Score: 8, Category: CommandExecution},
	{ID: "shell-system", Pattern: regexp.MustCompile(`\bsystem\s*\(\s*["']`), Score: 6, Category: CommandExecution, Context: NonCommentContext},
	{ID: "remote-pipe-shell", Pattern: regexp.MustCompile(`(?:curl|wget)\s+[^\n|]*\|\s*(?:sudo\s+)?(?:ba|z)?sh\b`), Score: 9, Category: CommandExecution},
	{ID: "powershell-encoded", Pattern: regexp.MustCompile(`(?i)powershell(?:\.exe)?\s+(?:-\w+\s+)*-(?:e|enc|encodedcommand)\s`), Score: 9, Category: CommandExecution},
	{ID: "reverse-shell", Pattern: regexp.MustCompile(`(?:\b(?:nc|ncat|netcat)\s+(?:-\w+\s+)*-[ec]\s|/dev/tcp/)`), Score: 10, Category: ReverseShell},
	{ID: "destructive-rm", Pattern: regexp.MustCompile(`(?m)\brm\s+-(?:rf|fr)\s+(?:/|~/?|\*)(?:\s|$)`), Score: 10, Category: Destructive, Context: NonCommentContext},
	{ID: "fork-bomb", Pattern: regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`), Score: 10, Category: Destructive},
	{ID: "disk-wipe", Pattern: regexp.MustCompile(`\b(?:mkfs(?:\.\w+)?\s+/dev/|dd\s+if=/dev/(?:zero|u?random)\s+of=/dev/)`), Score: 10, Category: Destructive},
	{ID: "sql-destructive", Pattern: regexp.MustCompile(`(?i)\b(?:DROP\s+(?:TABLE|DATABASE)|TRUNCATE\s+TABLE)\b`), Score: 3, Category: Destructive, Context: NonCommentContext},
	{ID: "script-tag", Pattern: regexp.MustCompile(`(?i)<script\b`), Score: 6, Category: XSS, Context: HTMLContext},
	{ID: "inline-event-handler", Pattern: regexp.MustCompile(`(?i)\bon(?:error|load|mouseover|focus|click)\s*=\s*["']?[^"'>\s]`), Score: 4, Category: XSS, Context: HTMLContext},
	{ID: "javascript-uri", Pattern: regexp.MustCompile(`(?i)javascript\s*:`), Score: 5, Category: XSS},
	{ID: "document-cookie", Pattern: regexp.MustCompile(`\bdocument\.cookie\b`), Score: 6, Category: DataExfiltration},
	{ID: "storage-token", Pattern: regexp.MustCompile(`(?i)\blocalStorage\.getItem\s*\(\s*["'][^"']*(?:token|auth|session|password)`), Score: 5, Category: DataExfiltration},
	{ID: "keylogger", Pattern: regexp.MustCompile(`(?i)addEventListener\s*\(\s*["']key(?:down|press|up)["']`), Score: 3, Category: DataExfiltration},
	{ID: "network-request", Pattern: regexp.MustCompile(`fetch\s*\(`), Score: 3, Category: Network},
	{ID: "xhr-request", Pattern: regexp.MustCompile(`\bnew\s+XMLHttpRequest\s*\(`), Score: 3, Category: Network},
	{ID: "websocket", Pattern: regexp.MustCompile(`\bnew\s+WebSocket\s*\(`), Score: 3, Category: Network},
	{ID: "base64-decode", Pattern: regexp.MustCompile(`\b(?:atob|base64_decode|b64decode)\s*\(`), Score: 3, Category: Obfuscation},
	{ID: "char-code", Pattern: regexp.MustCompile(`\bString\.fromCharCode\s*\(`), Score: 3, Category: Obfuscation},
	{ID: "hex-escapes", Pattern: regexp.MustCompile(`(?:\\x[0-9a-fA-F]{2}){8,}`), Score: 4, Category: Obfuscation},
	{ID: "unicode-escapes", Pattern: regexp.MustCompile(`(?:\\u[0-9a-fA-F]{4}){8,}`), Score: 4, Category: Obfuscation},
	{ID: "crypto-miner", Pattern: regexp.MustCompile(`(?i)(?:coinhive|cryptonight|coinimp|stratum\+tcp://|xmrig)`), Score: 10, Category: Cryptomining},
	{ID: "sensitive-files", Pattern: regexp.MustCompile(`/etc/(?:passwd|shadow|sudoers)\b`), Score: 5, Category: FileAccess, Context: NonCommentContext},
	{ID: "ssh-keys", Pattern: regexp.MustCompile(`\.ssh/(?:id_rsa|id_ed25519|authorized_keys)\b`), Score: 5, Category: FileAccess, Context: NonCommentContext},
}

// DefaultRules returns a copy of the built-in generic catalogue.
func DefaultRules() []PatternRule {
	out := make([]PatternRule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

var markupLanguages = map[string]struct{}{
	"html":   {},
	"htm":    {},
	"xhtml":  {},
	"svg":    {},
	"vue":    {},
	"svelte": {},
	"php":    {},
}

func isMarkupLanguage(language string) bool {
	_, ok := markupLanguages[strings.ToLower(language)]
	return ok
}
