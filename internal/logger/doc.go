// Package logger wraps zap for the project-version binaries:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and the WithLevel option.
//
// Services accept a context and log through the logger stored in it.
package logger
