// Package convert turns fetched works into local files: it renders chapter
// documents with the work skin applied and writes them in the requested
// output format under configurable names.
package convert

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"ao3/archive"
	"ao3/common"
	"ao3/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context      string
	Title        string
	Author       string
	Authors      []string
	Fandoms      []string
	Rating       string
	Language     string
	Date         string
	WorkID       int64
	Chapter      int
	ChapterTitle string
	Format       string
}

func buildAuthors(authors []archive.Pseud) []string {
	result := make([]string, 0, len(authors))
	for _, a := range authors {
		result = append(result, a.Name)
	}
	return result
}

func expandTemplate(w *archive.Work, ch *archive.Chapter, name config.TemplateFieldName, field string, format common.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:  string(name),
		Title:    w.Title,
		Authors:  buildAuthors(w.Authors),
		Fandoms:  w.Fandoms,
		Rating:   w.Rating.String(),
		Language: w.Language.String(),
		WorkID:   w.ID,
		Format:   format.String(),
	}
	if len(values.Authors) > 0 {
		values.Author = values.Authors[0]
	} else {
		values.Author = "Anonymous"
	}
	if !w.Published.IsZero() {
		values.Date = w.Published.Format("2006-01-02")
	}
	if ch != nil {
		values.Chapter = ch.Number
		values.ChapterTitle = ch.Title
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
