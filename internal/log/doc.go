// Package log builds the slog loggers used by brokerseo.
//
// Every logger returned by New wraps its output handler in a RedactHandler.
// The handler masks values that must not end up in logs: credentials sent
// to the API server, tokens in query strings, and e-mail addresses that
// appear in request parameters. It also copies the chi request ID from the
// context into each record so server log lines can be correlated.
//
// # Usage
//
//	logger := log.New(os.Stderr, log.Options{Verbose: true})
//	logger.Info("request", "query", "q=pepperstone&token=abc")
//	// query="q=pepperstone&token=***REDACTED***"
//
// Design decision: redaction lives in a handler wrapper rather than at each
// call site. Call sites stay plain slog and any handler (text, JSON) can sit
// underneath.
package log
