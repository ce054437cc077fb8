package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender stores messages on disk instead of delivering them. Each
// message becomes <timestamp>_<name>.html with the body and
// <timestamp>_<name>.json with the headers.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender writes into dir, creating it on first send.
func NewDevSender(dir string) EmailSender {
	return &DevSender{dir: dir, now: time.Now}
}

type devHeaders struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return sendError(fmt.Errorf("failed to create directory: %w", err))
	}

	now := d.now()
	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	base := filepath.Join(d.dir, now.Format("2006_01_02_150405")+"_"+fileSafe(name))

	headers, err := json.MarshalIndent(devHeaders{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		ReplyTo:   params.ReplyTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return sendError(err)
	}

	for ext, data := range map[string][]byte{".html": []byte(params.BodyHTML), ".json": headers} {
		if err := os.WriteFile(base+ext, data, 0o644); err != nil {
			return sendError(fmt.Errorf("failed to write %s file: %w", ext, err))
		}
	}
	return nil
}

var notFileSafe = regexp.MustCompile(`[^a-z0-9\-_.]`)

// fileSafe lowercases s, turns spaces into underscores and drops anything
// outside [a-z0-9-_.], keeping at most 100 bytes. It never returns "".
func fileSafe(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	s = notFileSafe.ReplaceAllString(s, "")
	s = s[:min(len(s), 100)]
	if s == "" {
		return "email"
	}
	return s
}
