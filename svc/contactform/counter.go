package contactform

import (
	"fmt"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

// WarnAt is the character count above which the counter turns to a warning.
const WarnAt = 400

// Level grades a character count against the message limits.
type Level string

const (
	LevelNormal  Level = ""
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// CharCount is the message counter shown under the textarea.
type CharCount struct {
	Used  int
	Max   int
	Level Level
}

// Count measures the raw, untrimmed message text with validator.Length,
// the same measure the message limit uses.
func Count(text string) CharCount {
	used := validator.Length(text)
	c := CharCount{Used: used, Max: MessageMaxLen}
	switch {
	case used > MessageMaxLen:
		c.Level = LevelError
	case used > WarnAt:
		c.Level = LevelWarning
	}
	return c
}

func (c CharCount) String() string {
	return fmt.Sprintf("%d/%d characters", c.Used, c.Max)
}
