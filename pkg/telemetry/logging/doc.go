// Package logging configures structured logging for the gateway on top of
// log/slog.
//
// New returns a *slog.Logger with a JSON or text handler. Two things are
// layered on the handler:
//
//   - A ContextHandler that adds request_id, service, trace_id and span_id
//     from the context a record is logged with. Use the *Context logging
//     methods (slog.InfoContext and friends) for these to appear.
//   - A Redactor, installed as ReplaceAttr, that masks bearer tokens and
//     sk- style API keys in every string attribute and shortens values
//     logged under sensitive keys such as "authorization" or "token".
//
// Usage:
//
//	logger, err := logging.Setup(cfg.Telemetry.Logging, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	logger.InfoContext(ctx, "routed", "service", def.Name)
package logging
