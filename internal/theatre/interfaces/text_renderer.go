package interfaces

import (
	"bytes"
	"errors"
	"text/template"

	theatre "theatre-billing/internal/theatre/domain"
)

// DefaultStatementTemplate is the plaintext statement layout.
const DefaultStatementTemplate = `Statement for {{.Customer}}
{{range .Lines}}  {{.PlayName}}: {{.Amount}} ({{.Audience}} seats)
{{end}}Amount owed is {{.TotalAmount}}
You earned {{.VolumeCredits}} credits
`

// StatementLineData is a formatted statement line.
type StatementLineData struct {
	PlayID        string
	PlayName      string
	Genre         string
	Audience      int
	Amount        string
	VolumeCredits int
}

// StatementTemplateData provides fields for rendering a statement.
type StatementTemplateData struct {
	Customer      string
	Currency      string
	Lines         []StatementLineData
	TotalAmount   string
	VolumeCredits int
}

// TextRenderer renders statements as text.
type TextRenderer struct {
	tpl   *template.Template
	money *MoneyFormatter
}

// NewTextRenderer parses a statement template, falling back to DefaultStatementTemplate.
func NewTextRenderer(tpl string, money *MoneyFormatter) (*TextRenderer, error) {
	if money == nil {
		return nil, errors.New("text renderer: nil money formatter")
	}
	if tpl == "" {
		tpl = DefaultStatementTemplate
	}
	parsed, err := template.New("statement").Option("missingkey=error").Parse(tpl)
	if err != nil {
		return nil, err
	}
	return &TextRenderer{tpl: parsed, money: money}, nil
}

// Render applies the template to a statement result.
func (r *TextRenderer) Render(result theatre.StatementResult) (string, error) {
	if r == nil || r.tpl == nil {
		return "", errors.New("text renderer: nil")
	}
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, templateData(result, r.money)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func templateData(result theatre.StatementResult, money *MoneyFormatter) StatementTemplateData {
	data := StatementTemplateData{
		Customer:      result.Customer,
		Currency:      money.Currency(),
		Lines:         make([]StatementLineData, 0, len(result.Lines)),
		TotalAmount:   money.Format(result.TotalAmount),
		VolumeCredits: result.TotalVolumeCredits,
	}
	for _, line := range result.Lines {
		data.Lines = append(data.Lines, StatementLineData{
			PlayID:        line.PlayID,
			PlayName:      line.PlayName,
			Genre:         string(line.Genre),
			Audience:      line.Audience,
			Amount:        money.Format(line.Amount),
			VolumeCredits: line.VolumeCredits,
		})
	}
	return data
}
