package contact

import (
	"context"

	"github.com/dmitrymomot/contactform/pkg/broadcast"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

// Signal names owned by the server. Datastar never sends signals that start
// with an underscore back to the backend, so the browser cannot forge them.
const (
	sigErrors         = "_errors"
	sigStyles         = "_styles"
	sigCount          = "_count"
	sigCountLevel     = "_countLevel"
	sigBanner         = "_banner"
	sigSubmitting     = "_submitting"
	sigFormVisible    = "_formVisible"
	sigSuccessVisible = "_successVisible"
)

// Patch is one signal merge sent to the browser.
type Patch = map[string]any

// Signals converts a snapshot into the complete signal set the page binds to.
func Signals(snap contactform.Snapshot) Patch {
	errs := make(map[string]any)
	styles := make(map[string]any)
	p := Patch{}
	for _, f := range contactform.Fields {
		p[string(f)] = fieldSignal(f, snap.Value(f))
		if f.Validated() {
			errs[string(f)] = snap.Errors[f]
			styles[string(f)] = string(snap.Styles[f])
		}
	}
	p[sigErrors] = errs
	p[sigStyles] = styles
	p[sigCount] = snap.Count.String()
	p[sigCountLevel] = string(snap.Count.Level)
	p[sigBanner] = snap.Banner
	p[sigSubmitting] = snap.Submitting()
	p[sigFormVisible] = snap.FormVisible
	p[sigSuccessVisible] = snap.SuccessVisible
	return p
}

func fieldSignal(f contactform.Field, v string) any {
	if f == contactform.FieldNewsletter {
		return contactform.Checked(v)
	}
	return v
}

// signalSurface turns controller updates into signal patches on a session bus.
// Broadcast never blocks, so it is safe under the controller lock.
type signalSurface struct {
	bus broadcast.Broadcaster[Patch]
}

var _ contactform.Surface = signalSurface{}

func (s signalSurface) publish(p Patch) {
	_ = s.bus.Broadcast(context.Background(), broadcast.Message[Patch]{Data: p})
}

func (s signalSurface) SetFieldValue(f contactform.Field, v string) {
	s.publish(Patch{string(f): fieldSignal(f, v)})
}

func (s signalSurface) SetFieldError(f contactform.Field, msg string) {
	s.publish(Patch{sigErrors: map[string]any{string(f): msg}})
}

func (s signalSurface) SetFieldStyle(f contactform.Field, style contactform.Style) {
	s.publish(Patch{sigStyles: map[string]any{string(f): string(style)}})
}

func (s signalSurface) SetCharCount(c contactform.CharCount) {
	s.publish(Patch{sigCount: c.String(), sigCountLevel: string(c.Level)})
}

func (s signalSurface) SetSubmitting(v bool) {
	s.publish(Patch{sigSubmitting: v})
}

func (s signalSurface) SetFormVisible(v bool) {
	s.publish(Patch{sigFormVisible: v})
}

func (s signalSurface) SetSuccessVisible(v bool) {
	s.publish(Patch{sigSuccessVisible: v})
}

func (s signalSurface) ShowBanner(msg string) {
	s.publish(Patch{sigBanner: msg})
}

func (s signalSurface) HideBanner() {
	s.publish(Patch{sigBanner: ""})
}
