package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	AppName   string `json:"AppName"`
	SignInURL string `json:"SignInURL"`
	Time      string `json:"Time"`
}

// ToMap converts EmailData to the map carried in EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

func funcs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

// Template names
const (
	Welcome = "welcome"
)

// Subject and text bodies share text/template; the html body is escaped.
var (
	textSet = texttpl.Must(texttpl.New("mail").Funcs(funcs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("mail").Funcs(funcs()).ParseFS(FS, "*.html.tmpl"))
)

type executeFunc func(w *bytes.Buffer, name string, data any) error

func execText(w *bytes.Buffer, name string, data any) error {
	return textSet.ExecuteTemplate(w, name, data)
}

func execHTML(w *bytes.Buffer, name string, data any) error {
	return htmlSet.ExecuteTemplate(w, name, data)
}

func exec(run executeFunc, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := run(&buf, file, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", file, err)
	}
	return buf.String(), nil
}

// Render executes <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
func Render(name string, data any) (subject string, text string, html string, err error) {
	if subject, err = exec(execText, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = exec(execText, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = exec(execHTML, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}
