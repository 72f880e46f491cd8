package main

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/charmbracelet/lipgloss"
)

type printer struct {
	color bool
	ok    lipgloss.Style
	warn  lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

func newPrinter(color bool) *printer {
	return &printer{
		color: color,
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		dim:   lipgloss.NewStyle().Faint(true),
	}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *printer) levelStyle(level security.RiskLevel) lipgloss.Style {
	switch level {
	case security.RiskHigh, security.RiskMedium:
		return p.bad
	case security.RiskLow:
		return p.warn
	default:
		return p.ok
	}
}

func (p *printer) render(result security.CheckResult) string {
	var b strings.Builder
	malware := result.MalwareDetails

	if result.IsSecure {
		fmt.Fprintf(&b, "%s\n", p.style(p.ok, "SECURE"))
	} else {
		fmt.Fprintf(&b, "%s\n", p.style(p.bad, "NOT SECURE"))
	}
	if result.HasProfanity {
		fmt.Fprintf(&b, "  profanity: title=%t description=%t\n",
			result.ProfanityDetails.TitleHasProfanity,
			result.ProfanityDetails.DescriptionHasProfanity)
	}
	fmt.Fprintf(&b, "  risk: %s (score %d)\n",
		p.style(p.levelStyle(malware.RiskLevel), string(malware.RiskLevel)), malware.RiskScore)
	fmt.Fprintf(&b, "  override allowed: %t\n", result.AllowOverride)

	for i, risk := range malware.Risks {
		match := ""
		if i < len(malware.Matches) {
			match = malware.Matches[i]
		}
		fmt.Fprintf(&b, "  - %-22s +%d  %s\n", risk.Category, risk.Score, p.style(p.dim, match))
	}
	return b.String()
}
