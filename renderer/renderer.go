// Package renderer renders collateral reports to markdown.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/vaultd/collateral"
)

//go:embed templates/*.md
var templates embed.FS

// renderTemplate parses one embedded template file and executes it on data.
// Rendering is best effort: a template failure renders as an error string
// rather than aborting the report.
func renderTemplate(name, file string, data any) string {
	t, err := template.New(file).ParseFS(templates, "templates/"+file)
	if err != nil {
		return fmt.Sprintf("template %s error: %v", name, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return fmt.Sprintf("template %s error: %v", name, err)
	}
	return b.String()
}

// BalancesMarkdown renders the system-wide valuation report.
func BalancesMarkdown(r *collateral.BalanceReport) string {
	return renderTemplate("balances", "balances.md", r)
}

// AccountMarkdown renders one account's valuation report.
func AccountMarkdown(r *collateral.AccountReport) string {
	return renderTemplate("account", "account.md", r)
}

// TokensMarkdown renders the token registry in first-enrollment order.
func TokensMarkdown(tokens []string) string {
	var b strings.Builder
	b.WriteString("# Registered Tokens\n\n")
	if len(tokens) == 0 {
		b.WriteString("No token has received a deposit yet.\n")
		return b.String()
	}
	for i, token := range tokens {
		fmt.Fprintf(&b, "%d. %s\n", i+1, token)
	}
	fmt.Fprintf(&b, "\n%d registered token(s).\n", len(tokens))
	return b.String()
}
