package contactform

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/contactform/pkg/logger"
	"github.com/dmitrymomot/contactform/pkg/statemachine"
)

// Status is the submission lifecycle state of a form.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

type trigger string

const (
	triggerSubmit      trigger = "submit"
	triggerSucceed     trigger = "succeed"
	triggerFail        trigger = "fail"
	triggerReset       trigger = "reset"
	triggerAcknowledge trigger = "acknowledge"
)

// formIsValid expects the result of a whole-form check as transition data.
func formIsValid(_ context.Context, data any) bool {
	valid, _ := data.(bool)
	return valid
}

type statusMachine = statemachine.Machine[Status, trigger]

func newLifecycle(log *slog.Logger) *statusMachine {
	return statemachine.New(StatusIdle,
		statemachine.Allow(StatusIdle, StatusSubmitting, triggerSubmit, formIsValid),
		statemachine.Allow(StatusSubmitting, StatusSuccess, triggerSucceed),
		statemachine.Allow(StatusSubmitting, StatusFailed, triggerFail),
		statemachine.Allow(StatusSuccess, StatusIdle, triggerReset),
		statemachine.Allow(StatusFailed, StatusIdle, triggerAcknowledge),
		statemachine.WithObserver(func(ctx context.Context, from, to Status, ev trigger) {
			log.DebugContext(ctx, "submission status changed",
				logger.Status(string(to)),
				slog.String("from", string(from)),
				logger.Event(string(ev)),
			)
		}),
	)
}
