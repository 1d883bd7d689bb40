// Package renderer turns rentbook reports into markdown.
//
// Reports are built with github.com/nao1215/markdown. The reminder digest,
// sent by email, is assembled from the text/template files in templates/.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templateFiles embed.FS

// templates is the template directory, rooted.
var templates, _ = fs.Sub(templateFiles, "templates")

// RenderReminder renders the reminder digest to a markdown string.
func RenderReminder(r *Reminder) string {
	partials := map[string]string{
		"reminder_title":   "reminder_title.md",
		"reminder_overdue": "reminder_overdue.md",
		"reminder_leases":  "reminder_leases.md",
	}
	if r.IsEmpty() {
		// Nothing but the title and the all clear.
		partials["reminder_overdue"] = ""
		partials["reminder_leases"] = ""
	}
	return renderTemplate("reminder", "reminder.md", partials, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
