package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/contactform/handler"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// PageParams is everything the form page needs on first render.
type PageParams struct {
	SessionID   string
	Signals     Patch
	Presets     []string // empty in production
	DatastarURL string
}

// Views renders the HTML the module serves. Any nil entry falls back to the default.
type Views struct {
	Page       func(PageParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// DefaultViews returns the built-in page, error page and toast.
func DefaultViews() Views {
	return Views{
		Page:       FormPage,
		ErrorPage:  ErrorPage,
		ErrorToast: ErrorToast,
	}
}

func (v Views) withDefaults() Views {
	d := DefaultViews()
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.ErrorPage == nil {
		v.ErrorPage = d.ErrorPage
	}
	if v.ErrorToast == nil {
		v.ErrorToast = d.ErrorToast
	}
	return v
}

func signalsJSON(p Patch) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode signals: %w", err)
	}
	return string(b), nil
}

// action is a Datastar backend action against a session route,
// e.g. @post('/s/{id}/blur/email').
func action(method, sessionID string, path ...string) string {
	return fmt.Sprintf("@%s('/s/%s/%s')", method, sessionID, strings.Join(path, "/"))
}

func styleClass(f contactform.Field) string {
	return fmt.Sprintf("{success: $_styles.%[1]s == 'success', error: $_styles.%[1]s == 'error'}", f)
}

func fieldLabel(f contactform.Field) string {
	if f.Required() {
		return f.Label() + " *"
	}
	return f.Label()
}

func inputType(f contactform.Field) string {
	switch f {
	case contactform.FieldEmail:
		return "email"
	case contactform.FieldPhone:
		return "tel"
	default:
		return "text"
	}
}

// datastarScript loads the Datastar bundle.
func datastarScript(src string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<script type="module" src="`+templ.EscapeString(src)+`"></script>`)
		return err
	})
}
