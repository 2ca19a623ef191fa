package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name    string `json:"Name"`
	Email   string `json:"Email"`
	Type    string `json:"Type"`
	AppName string `json:"AppName"`

	CompanyName string `json:"CompanyName"`
	SupportURL  string `json:"SupportURL"`

	ResetURL string `json:"ResetURL"`

	ExpiresAt     time.Time `json:"ExpiresAt"`
	ExpiresAtText string    `json:"ExpiresAtText"`
	Time          string    `json:"Time"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn backs {{ .Value | default "Fallback" }}; blank strings and zero values fall back.
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

const (
	ForgotPassword = "forgot_password"
)

// executor is satisfied by both html/template and text/template.
type executor interface {
	Execute(w io.Writer, data any) error
}

var parsed sync.Map // filename -> executor

// load parses filename from FS once. Files ending in .html.tmpl get html/template escaping.
func load(filename string) (executor, error) {
	if t, ok := parsed.Load(filename); ok {
		return t.(executor), nil
	}
	var (
		t   executor
		err error
	)
	if strings.HasSuffix(filename, ".html.tmpl") {
		t, err = htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
	} else {
		t, err = texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", filename, err)
	}
	actual, _ := parsed.LoadOrStore(filename, t)
	return actual.(executor), nil
}

func renderFile(filename string, data any) (string, error) {
	t, err := load(filename)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render executes <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
// data is an EmailData or the map form carried by queued jobs.
func Render(name string, data any) (subject string, text string, html string, err error) {
	subject, err = renderFile(name+".subject.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderFile(name+".text.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderFile(name+".html.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
