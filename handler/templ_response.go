package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent is satisfied by templ.Component and by hand-written views.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption controls where a component lands when sent as a patch.
type TemplOption = datastar.PatchElementOption

func WithTarget(selector string) TemplOption { return datastar.WithSelector(selector) }

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption { return datastar.WithMode(mode) }

// Templ renders component as an HTML page, or as an element patch when
// the request came from DataStar.
//
//	return handler.Templ(s.views.Toast(msg),
//		handler.WithTarget("#toasts"),
//		handler.WithPatchMode(handler.PatchPrepend),
//	)
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return responseFunc(func(w http.ResponseWriter, r *http.Request) error {
		if IsDataStar(r) {
			return datastar.NewSSE(w, r).PatchElementTempl(component, opts...)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(r.Context(), w)
	})
}
