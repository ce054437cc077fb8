package email

// Config holds email service configuration.
// Provider credentials are optional so the simulated and dev delivery modes
// start without them; each sender constructor checks what it needs.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	SenderEmail  string `env:"SENDER_EMAIL"`
	SupportEmail string `env:"SUPPORT_EMAIL"`

	// DevOutputDir is where DevSender writes messages.
	DevOutputDir string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// validateIdentity checks the addresses every provider sends as.
func (c Config) validateIdentity() error {
	for _, addr := range []struct{ name, value string }{
		{"SenderEmail", c.SenderEmail},
		{"SupportEmail", c.SupportEmail},
	} {
		if addr.value == "" {
			return configError(addr.name + " is required")
		}
		if !isAddress(addr.value) {
			return configError(addr.name + " must be a valid email address")
		}
	}
	return nil
}
