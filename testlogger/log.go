// Package testlogger gives tests a log.Logger honoring FROST_SIGNER_TEST_LOGS.
package testlogger

import (
	"os"
	"testing"

	"github.com/drand/frost-signer/log"
)

// Level returns the level to default the logger to, based on the
// FROST_SIGNER_TEST_LOGS environment variable.
func Level(t testing.TB) int {
	logLevel := log.InfoLevel
	debugEnv, isDebug := os.LookupEnv("FROST_SIGNER_TEST_LOGS")
	if isDebug && debugEnv == "DEBUG" {
		t.Log("enabling debug level logs")
		logLevel = log.DebugLevel
	}
	return logLevel
}

// New returns a logger configured for the given test.
func New(t testing.TB) log.Logger {
	return log.New(nil, Level(t), true).With("testName", t.Name())
}
