package cmd

import "os"

const (
	DefaultCurveFile = "curve.cbor"
	DefaultLogLevel  = "INFO"
)

// CurveFile returns CURVETOOL_FILE, falling back to DefaultCurveFile.
func CurveFile() string {
	return envOr("CURVETOOL_FILE", DefaultCurveFile)
}

// LogLevel returns CURVETOOL_LOG_LEVEL, falling back to DefaultLogLevel.
func LogLevel() string {
	return envOr("CURVETOOL_LOG_LEVEL", DefaultLogLevel)
}

func envOr(name, def string) string {
	if env := os.Getenv(name); env != "" {
		return env
	}
	return def
}
