package printing

import (
	"embed"
	"fmt"
)

//go:embed templates/*.html
var templateFS embed.FS

const invoiceTemplateFile = "templates/invoice_a4.html"

// InvoiceTemplate returns the built-in A4 invoice template
func InvoiceTemplate() (string, error) {
	data, err := templateFS.ReadFile(invoiceTemplateFile)
	if err != nil {
		return "", fmt.Errorf("load invoice template: %w", err)
	}
	return string(data), nil
}
