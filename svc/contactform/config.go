package contactform

import "time"

// Delivery modes for submitted messages.
const (
	DeliverySimulated = "simulated"
	DeliveryPostmark  = "postmark"
	DeliverySMTP      = "smtp"
	DeliveryDev       = "dev"
)

// Config holds the form timing and delivery settings.
type Config struct {
	DismissAfter  time.Duration `env:"CONTACT_DISMISS_AFTER" envDefault:"5s"`
	ResetAfter    time.Duration `env:"CONTACT_RESET_AFTER" envDefault:"5s"`
	SubmitTimeout time.Duration `env:"CONTACT_SUBMIT_TIMEOUT" envDefault:"30s"`

	Delivery    string        `env:"CONTACT_DELIVERY" envDefault:"simulated"`
	SubmitDelay time.Duration `env:"CONTACT_SUBMIT_DELAY" envDefault:"2s"`
	SuccessRate float64       `env:"CONTACT_SUCCESS_RATE" envDefault:"0.9"`
	Inbox       string        `env:"CONTACT_INBOX"`

	// Submissions allowed per second across all forms, and the burst on top.
	RateLimit float64 `env:"CONTACT_RATE_LIMIT" envDefault:"1"`
	RateBurst int     `env:"CONTACT_RATE_BURST" envDefault:"5"`
}

// DefaultConfig mirrors the envDefault tags for callers that do not load the environment.
func DefaultConfig() Config {
	return Config{
		DismissAfter:  5 * time.Second,
		ResetAfter:    5 * time.Second,
		SubmitTimeout: 30 * time.Second,
		Delivery:      DeliverySimulated,
		SubmitDelay:   2 * time.Second,
		SuccessRate:   0.9,
		RateLimit:     1,
		RateBurst:     5,
	}
}
