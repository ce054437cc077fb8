// Package logger builds *slog.Logger values with functional options and
// injects attributes pulled from context.Context into every record.
//
// New picks a text or JSON handler and applies static attributes. Registered
// ContextExtractor callbacks run on every Handle call, so values placed on a
// request context reach each record logged with it.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "contactform"),
//	    logger.WithLevel(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "contact form submitted",
//	    logger.SessionID(id),
//	    logger.Status("success"),
//	)
//
// The attribute helpers keep key names consistent. Error and SessionID
// return an empty Attr for nil input:
//
//	log.WarnContext(ctx, "submission failed", logger.Error(err))
package logger
