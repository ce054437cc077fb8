package templates

import (
	"context"

	"github.com/a-h/templ"
)

// Render renders tpl into an email body.
func Render(ctx context.Context, tpl templ.Component) (string, error) {
	html, err := templ.ToGoHTML(ctx, tpl)
	return string(html), err
}
