// Package logger provides structured logging on top of zerolog.
//
// It supports JSON and console output, level configuration, a process-wide
// default logger and named component loggers.
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("di")
//	log.Info("service constructed", logger.Fields("type", "*demo.UserService"))
package logger
