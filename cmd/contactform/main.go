package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	"github.com/mattn/go-isatty"

	"github.com/dmitrymomot/contactform/modules/contact"
	"github.com/dmitrymomot/contactform/modules/tui"
	"github.com/dmitrymomot/contactform/pkg/clientip"
	"github.com/dmitrymomot/contactform/pkg/config"
	"github.com/dmitrymomot/contactform/pkg/email"
	"github.com/dmitrymomot/contactform/pkg/environment"
	"github.com/dmitrymomot/contactform/pkg/httpserver"
	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/requestid"
	"github.com/dmitrymomot/contactform/svc/contactform"
)

const serviceName = "contactform"

var (
	version = "dev"
	commit  = "unknown"
)

const (
	exitSuccess = 0
	exitInvalid = 1
	exitSetup   = 2
)

var (
	errInvalidForm     = errors.New("form has invalid fields")
	errNotTerminal     = errors.New("tui: requires a terminal (TTY)")
	errUnknownDelivery = errors.New("unknown delivery mode")
)

// CLI is the top-level command structure.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Serve   ServeCmd         `cmd:"" help:"Serve the contact form over HTTP."`
	Tui     TuiCmd           `cmd:"" help:"Fill in the contact form in the terminal."`
	Check   CheckCmd         `cmd:"" help:"Validate form values and print the result of every field."`
}

// Globals are the flags shared by every command.
type Globals struct {
	EnvFile string `help:"Load variables from this .env file before reading configuration." type:"existingfile" name:"env-file"`
}

// appConfig is the process-level configuration.
type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	// Headers set by the proxy in front of the server, checked in order for the visitor address.
	TrustedIPHeaders []string `env:"TRUSTED_IP_HEADERS" envSeparator:","`
}

// runtime is what every command builds from the environment.
type runtime struct {
	env       environment.Environment
	log       *slog.Logger
	form      contactform.Config
	ipHeaders []string
}

// setup loads configuration and builds the logger writing to out.
func (g *Globals) setup(out io.Writer) (*runtime, error) {
	if g.EnvFile != "" {
		if err := config.LoadEnv(g.EnvFile); err != nil {
			return nil, err
		}
	}

	var app appConfig
	if err := config.Load(&app); err != nil {
		return nil, err
	}
	var form contactform.Config
	if err := config.Load(&form); err != nil {
		return nil, err
	}

	env := environment.Parse(app.Env)
	opts := []logger.Option{
		logger.WithEnvironment(env, serviceName),
		logger.WithOutput(out),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if app.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(app.LogLevel)); err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		opts = append(opts, logger.WithLevel(level))
	}

	return &runtime{
		env:       env,
		log:       logger.New(opts...),
		form:      form,
		ipHeaders: app.TrustedIPHeaders,
	}, nil
}

// submitter builds the delivery chain selected by CONTACT_DELIVERY, rate limited.
func (rt *runtime) submitter() (contactform.Submitter, error) {
	var next contactform.Submitter
	switch rt.form.Delivery {
	case contactform.DeliverySimulated:
		next = contactform.NewSimulatedSubmitter(rt.form.SubmitDelay, rt.form.SuccessRate)
	case contactform.DeliveryPostmark, contactform.DeliverySMTP, contactform.DeliveryDev:
		sender, err := newSender(rt.form.Delivery)
		if err != nil {
			return nil, err
		}
		sub, err := contactform.NewEmailSubmitter(sender, rt.form.Inbox)
		if err != nil {
			return nil, err
		}
		next = sub
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDelivery, rt.form.Delivery)
	}
	return contactform.NewThrottledSubmitter(next, rt.form.RateLimit, rt.form.RateBurst), nil
}

func newSender(delivery string) (email.EmailSender, error) {
	var cfg email.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	switch delivery {
	case contactform.DeliveryPostmark:
		return email.NewPostmarkClient(cfg)
	case contactform.DeliverySMTP:
		return email.NewSMTPSender(cfg)
	default:
		return email.NewDevSender(cfg.DevOutputDir), nil
	}
}

// formOptions configures every controller the command creates.
func (rt *runtime) formOptions() ([]contactform.Option, error) {
	sub, err := rt.submitter()
	if err != nil {
		return nil, err
	}
	return []contactform.Option{
		contactform.WithConfig(rt.form),
		contactform.WithSubmitter(sub),
		contactform.WithLogger(rt.log),
	}, nil
}

// ServeCmd serves the Datastar web form.
type ServeCmd struct {
	Addr string `help:"Listen address; overrides HTTP_ADDR."`
}

// Run starts the HTTP server and blocks until interrupted.
func (c *ServeCmd) Run(g *Globals) error {
	rt, err := g.setup(os.Stdout)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	formOpts, err := rt.formOptions()
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if c.Addr != "" {
		httpCfg.Addr = c.Addr
	}
	var contactCfg contact.Config
	if err := config.Load(&contactCfg); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := contact.NewRegistry(contactCfg,
		contact.WithLogger(rt.log),
		contact.WithFormOptions(formOpts...),
	)
	defer sessions.Close()
	go sessions.Run(ctx, contactCfg.ReapInterval)

	svc := contact.NewService(contactCfg, sessions, contact.Views{}, rt.log)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware(rt.ipHeaders...),
		environment.Middleware(rt.env),
	)
	r.Mount("/", svc.Handle())

	rt.log.Info("starting contact form",
		slog.String("version", version),
		slog.String("delivery", rt.form.Delivery),
	)
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(rt.log))
	return srv.Run(ctx, r)
}

// TuiCmd runs the form in the terminal.
type TuiCmd struct{}

// Run opens the form full screen. Log records are dropped while it runs.
func (c *TuiCmd) Run(g *Globals) error {
	return c.run(g, isTerminal(os.Stdout) && isTerminal(os.Stdin))
}

func (c *TuiCmd) run(g *Globals, isTTY bool) error {
	if !isTTY {
		return errNotTerminal
	}
	rt, err := g.setup(io.Discard)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	formOpts, err := rt.formOptions()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tui.Run(ctx, os.Stdin, os.Stdout, formOpts...)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CheckCmd validates one set of values without a controller.
type CheckCmd struct {
	Preset     string `help:"Start from sample values: valid, invalid or special." short:"p"`
	Name       string `help:"Full name."`
	Email      string `help:"Email address."`
	Phone      string `help:"Phone number; formatted as the form would."`
	Subject    string `help:"Subject line."`
	Message    string `help:"Message body."`
	Newsletter bool   `help:"Subscribe to the newsletter."`
}

// Run prints a line per field and fails when any checked field is invalid.
func (c *CheckCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *CheckCmd) run(out io.Writer) error {
	values, err := c.values()
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	report := contactform.CheckAll(values)
	for _, f := range contactform.Fields {
		if !f.Validated() {
			continue
		}
		res, ok := report.Results[f]
		switch {
		case !ok:
			fmt.Fprintf(out, "  – %s: skipped\n", f.Label())
		case res.Valid:
			fmt.Fprintf(out, "  ✓ %s\n", f.Label())
		default:
			fmt.Fprintf(out, "  ✗ %s: %s\n", f.Label(), res.Message)
		}
	}
	if values[contactform.FieldMessage] != "" {
		fmt.Fprintf(out, "    %s\n", contactform.Count(values[contactform.FieldMessage]))
	}

	if !report.Valid() {
		return errInvalidForm
	}
	return nil
}

// values starts from the preset, if any, and applies the non-empty flags on top.
func (c *CheckCmd) values() (map[contactform.Field]string, error) {
	values := make(map[contactform.Field]string, len(contactform.Fields))
	if c.Preset != "" {
		preset, err := contactform.Preset(c.Preset)
		if err != nil {
			return nil, fmt.Errorf("%w (have %s)", err, strings.Join(contactform.PresetNames(), ", "))
		}
		for f, v := range preset {
			values[f] = v
		}
	}

	flags := map[contactform.Field]string{
		contactform.FieldName:    c.Name,
		contactform.FieldEmail:   c.Email,
		contactform.FieldPhone:   c.Phone,
		contactform.FieldSubject: c.Subject,
		contactform.FieldMessage: c.Message,
	}
	for f, v := range flags {
		if v != "" {
			values[f] = v
		}
	}
	values[contactform.FieldPhone] = contactform.FormatPhone(values[contactform.FieldPhone])
	if c.Newsletter {
		values[contactform.FieldNewsletter] = "true"
	}
	return values, nil
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errInvalidForm):
		return exitInvalid
	default:
		return exitSetup
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name(serviceName),
		kong.Description("Contact form with live validation, served over HTTP or in the terminal."),
		kong.Vars{"version": version + " " + commit},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
