// Package views renders the site's pages. Page bodies are html/template files
// embedded in the binary; each page is exposed as a templ.Component so
// handlers render every view the same way.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views/helpers"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var funcs = template.FuncMap{
	"cn":       twmerge.Merge,
	"price":    helpers.FormatPrice,
	"interval": helpers.FormatInterval,
	"date":     helpers.FormatDate,
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"loading", "landing", "entry", "dashboard", "pricing"} {
		pages[name] = template.Must(
			template.New("layout.gohtml").Funcs(funcs).ParseFS(templateFS, "templates/layout.gohtml", "templates/"+name+".gohtml"),
		)
	}
}

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

// ClientConfig tells page scripts which browser SDK owns the session.
type ClientConfig struct {
	Provider            string
	ClerkPublishableKey string
	SupabaseURL         string
	SupabaseAnonKey     string
	// SessionURL is polled by the loading view until the session settles.
	SessionURL string
	// AccessCookie and RefreshCookie name the Supabase session cookies.
	AccessCookie  string
	RefreshCookie string
}

func (c ClientConfig) IsClerk() bool    { return c.Provider == "clerk" }
func (c ClientConfig) IsSupabase() bool { return c.Provider == "supabase" }
