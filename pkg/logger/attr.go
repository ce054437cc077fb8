package logger

import "log/slog"

// Keys shared by every record the form writes.
const (
	KeyError     = "error"
	KeySession   = "session_id"
	KeyField     = "field"
	KeyStatus    = "status"
	KeyEvent     = "event"
	KeyComponent = "component"
)

// Error is empty for a nil err, so it can be passed unconditionally.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(KeyError, err)
}

// SessionID is empty for a nil id.
func SessionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any(KeySession, id)
}

func FormField(name string) slog.Attr { return slog.String(KeyField, name) }

// Status is a submission lifecycle status such as "submitting".
func Status(name string) slog.Attr { return slog.String(KeyStatus, name) }

func Event(name string) slog.Attr { return slog.String(KeyEvent, name) }

func Component(name string) slog.Attr { return slog.String(KeyComponent, name) }
