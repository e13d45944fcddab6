package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const currencySymbol = "Rs."

// TemplateEngine renders invoice templates to HTML
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a template engine with the invoice helper functions
func NewTemplateEngine() *TemplateEngine {
	titleCaser := cases.Title(language.English)

	funcMap := template.FuncMap{
		// formatMoney renders an amount with currency symbol, e.g. "Rs. 12,500.00"
		"formatMoney": func(d decimal.Decimal) string {
			return currencySymbol + " " + formatAmount(d)
		},
		// formatAmount renders an amount without the symbol, e.g. "12,500.00"
		"formatAmount": formatAmount,
		"formatDate": func(t time.Time) string {
			return t.Format("02 Jan 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("02 Jan 2006 15:04")
		},
		"titleCase": func(s string) string {
			return titleCaser.String(strings.ReplaceAll(s, "_", " "))
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"mul": func(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) },
	}

	return &TemplateEngine{funcMap: funcMap}
}

// Render parses and executes a template with the given data
func (e *TemplateEngine) Render(ctx context.Context, name, content string, data interface{}) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, fmt.Sprintf("failed to parse template %s", name), err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, fmt.Sprintf("failed to execute template %s", name), err)
	}

	return buf.String(), nil
}

// formatAmount renders a decimal with two places and thousand separators
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	result := b.String() + fracPart
	if negative {
		return "-" + result
	}
	return result
}
