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

// EmailData defines standard fields for marketplace email templates.
type EmailData struct {
	// Recipient
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`

	// URLs
	LogoURL     string `json:"LogoURL"`
	SupportURL  string `json:"SupportURL"`
	ArtworkURL  string `json:"ArtworkURL"`
	FrontendURL string `json:"FrontendURL"`

	// Purchase details
	PurchaseID   string    `json:"PurchaseID"`
	ArtworkID    string    `json:"ArtworkID"`
	ArtworkTitle string    `json:"ArtworkTitle"`
	Price        string    `json:"Price"`
	Balance      string    `json:"Balance"`
	CounterParty string    `json:"CounterParty"` // artist for receipts, buyer for sale notices
	Time         string    `json:"Time"`
	TimeAt       time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
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
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// Template names
const (
	PurchaseReceipt = "purchase_receipt"
	ArtworkSold     = "artwork_sold"
)

// sets holds every embedded template, parsed once on first use.
type sets struct {
	text *texttpl.Template // *.subject.tmpl and *.text.tmpl
	html *htmpl.Template   // *.html.tmpl
	err  error
}

var (
	loadOnce sync.Once
	loaded   sets
)

func load() sets {
	loadOnce.Do(func() {
		loaded.text, loaded.err = texttpl.New("").Funcs(textFuncMap).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl")
		if loaded.err != nil {
			loaded.err = fmt.Errorf("parse text templates: %w", loaded.err)
			return
		}
		loaded.html, loaded.err = htmpl.New("").Funcs(htmlFuncMap).ParseFS(FS, "*.html.tmpl")
		if loaded.err != nil {
			loaded.err = fmt.Errorf("parse html templates: %w", loaded.err)
		}
	})
	return loaded
}

// Known reports whether name has a complete embedded template set.
func Known(name string) bool {
	t := load()
	if t.err != nil {
		return false
	}
	return t.text.Lookup(name+".subject.tmpl") != nil &&
		t.text.Lookup(name+".text.tmpl") != nil &&
		t.html.Lookup(name+".html.tmpl") != nil
}

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(t executor, filename string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, filename, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render renders <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
// The subject is trimmed of surrounding whitespace.
func Render(name string, data any) (subject string, text string, html string, err error) {
	t := load()
	if t.err != nil {
		return "", "", "", t.err
	}
	if subject, err = execute(t.text, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(t.text, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(t.html, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}
