// Package logger wraps zerolog with the module's logging conventions:
// leveled, structured output in console or JSON format, component-tagged
// sub-loggers, and a package-level global for code without an injected
// logger.
package logger
