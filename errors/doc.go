// Package errors provides the structured error type shared by the registry,
// its HTTP inspection API and configuration loading.
//
// Every failure carries a machine-readable ErrorCode, a recommended HTTP
// status and a details map; registry errors always set Details["type"] to
// the offending type.
package errors
