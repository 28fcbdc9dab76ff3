package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/roadworks/tachoscan/schema"
)

// Color variables for console output.
var (
	TresGraveColor = color.New(color.FgRed, color.Bold)     // tresGraveColor represents standard danger.
	GraveColor     = color.New(color.FgMagenta, color.Bold) // graveColor represents strong, distinct warning.
	MoyenneColor   = color.New(color.FgYellow)              // moyenneColor represents standard caution, not bold.
	LegereColor    = color.New(color.FgCyan)                // legereColor represents informational / low-priority signal.
)

// GetPlainSeverityLabel returns the plain text severity label. This is the
// core value used for CSV, JSON, and table printing.
func GetPlainSeverityLabel(severity schema.Severity) string {
	return string(severity)
}

// GetColorSeverityLabel returns a colored severity label for console output (table).
func GetColorSeverityLabel(severity schema.Severity) string {
	text := GetPlainSeverityLabel(severity)

	switch severity {
	case schema.SeverityTresGrave:
		return TresGraveColor.Sprint(text)
	case schema.SeverityGrave:
		return GraveColor.Sprint(text)
	case schema.SeverityMoyenne:
		return MoyenneColor.Sprint(text)
	default: // LEGERE
		return LegereColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for report storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".tachoscan_reports.db"
	}
	return filepath.Join(homeDir, ".tachoscan_reports.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for both content and the "...".
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
