// Package export renders application records into downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/models"
)

var statusColors = map[string]string{
	models.StatusSaved:     "#6B7280",
	models.StatusApplied:   "#3B82F6",
	models.StatusAccepted:  "#10B981",
	models.StatusRejected:  "#EF4444",
	models.StatusWithdrawn: "#9CA3AF",
}

var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Filename derives the attachment name from the program title.
func Filename(prefix, programTitle string) string {
	safe := strings.Trim(filenameSafe.ReplaceAllString(programTitle, "-"), "-")
	return fmt.Sprintf("%s-%s.html", prefix, safe)
}

type viewField struct {
	Label string
	Value string
}

type viewSection struct {
	Title  string
	Fields []viewField
}

type applicationView struct {
	Title       string
	Status      string
	StatusColor string
	Sections    []viewSection
	GeneratedAt string
}

// RenderApplication renders the application with its joined program, school
// and profile fields into a printable HTML document.
func RenderApplication(app *models.Application) ([]byte, error) {
	color, ok := statusColors[app.Status]
	if !ok {
		color = statusColors[models.StatusSaved]
	}

	view := applicationView{
		Title:       app.Program.Title,
		Status:      app.Status,
		StatusColor: color,
		GeneratedAt: time.Now().UTC().Format("January 2, 2006"),
		Sections: []viewSection{
			{
				Title: "Applicant",
				Fields: []viewField{
					{Label: "Full Name", Value: orNotProvided(app.User.Name)},
					{Label: "Email", Value: orNotProvided(app.User.Email)},
					{Label: "Nationality", Value: orNotProvided(app.User.NationalityCode)},
					{Label: "Budget (Monthly)", Value: budgetRange(app.User.BudgetMinMonthly, app.User.BudgetMaxMonthly)},
				},
			},
			{
				Title: "Program",
				Fields: []viewField{
					{Label: "Program Name", Value: app.Program.Title},
					{Label: "Institution", Value: app.Program.School.Name},
					{Label: "Location", Value: app.Program.City + ", " + app.Program.CountryCode},
					{Label: "Degree Level", Value: app.Program.DegreeLevel},
					{Label: "Duration", Value: months(app.Program.DurationMonths)},
					{Label: "Annual Tuition", Value: tuition(app.Program.TuitionAnnual, app.Program.Currency)},
					{Label: "Application Deadline", Value: date(app.Program.ApplicationDeadline)},
					{Label: "Language", Value: orNotProvided(app.Program.Language)},
				},
			},
			{
				Title: "Application",
				Fields: []viewField{
					{Label: "Status", Value: app.Status},
					{Label: "Saved On", Value: date(&app.CreatedAt)},
					{Label: "Applied On", Value: date(app.AppliedAt)},
					{Label: "Last Updated", Value: date(&app.UpdatedAt)},
					{Label: "Notes", Value: orNotProvided(app.Notes)},
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := applicationTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render application: %w", err)
	}
	return buf.Bytes(), nil
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

func budgetRange(min, max *int) string {
	if min == nil || max == nil {
		return "Not provided"
	}
	return fmt.Sprintf("%d - %d (minor units)", *min, *max)
}

func months(m *int) string {
	if m == nil {
		return "Not provided"
	}
	return fmt.Sprintf("%d months", *m)
}

func tuition(amount *int, currency string) string {
	if amount == nil {
		return "Not provided"
	}
	return fmt.Sprintf("%d %s", *amount, currency)
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "Not provided"
	}
	return t.UTC().Format("January 2, 2006")
}

var applicationTmpl = template.Must(template.New("application").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Application - {{.Title}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #1F2937; padding: 40px; max-width: 800px; margin: 0 auto; }
.header { text-align: center; margin-bottom: 40px; padding-bottom: 20px; border-bottom: 2px solid #0D4A42; }
.header h1 { color: #0D4A42; font-size: 28px; margin-bottom: 8px; }
.status-badge { display: inline-block; padding: 8px 16px; border-radius: 20px; font-weight: 600; font-size: 14px; color: white; background-color: {{.StatusColor}}; margin-top: 10px; }
.section { margin-bottom: 30px; padding: 20px; background: #F9FAFB; border-radius: 8px; border: 1px solid #E5E7EB; }
.section h2 { font-size: 18px; color: #0D4A42; margin-bottom: 15px; padding-bottom: 10px; border-bottom: 1px solid #E5E7EB; }
.field { margin-bottom: 12px; }
.field label { display: block; font-size: 12px; color: #6B7280; text-transform: uppercase; letter-spacing: 0.5px; margin-bottom: 4px; }
.field p { font-size: 15px; color: #1F2937; }
.footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #E5E7EB; text-align: center; font-size: 12px; color: #9CA3AF; }
@media print { body { padding: 20px; } .section { break-inside: avoid; } }
</style>
</head>
<body>
<div class="header">
<h1>Study Program Application</h1>
<div class="status-badge">{{.Status}}</div>
</div>
{{range .Sections}}
<div class="section">
<h2>{{.Title}}</h2>
{{range .Fields}}
<div class="field"><label>{{.Label}}</label><p>{{.Value}}</p></div>
{{end}}
</div>
{{end}}
<div class="footer">Generated on {{.GeneratedAt}}</div>
</body>
</html>
`))
