// Command validate checks server configuration JSON files before deploy.
// It verifies:
//   - JSON structure and field types
//   - Port, room cap, and room code length ranges
//   - Origin allowlist entries are absolute URLs
//
// Environment overrides are deliberately not applied, so the report
// reflects the file exactly as written.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/ludo-server/config"
)

// ValidationResult captures the outcome of validating a single file.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateFile loads and validates one configuration file.
func validateFile(path string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(path),
		Valid: true,
	}
	fail := func(format string, args ...interface{}) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fail("Failed to read file: %v", err)
		return result
	}

	settings := config.Defaults()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(settings); err != nil {
		fail("Invalid JSON: %v", err)
		return result
	}

	if err := settings.Validate(); err != nil {
		fail("%v", err)
	}

	for _, origin := range settings.AllowedOrigins {
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			fail("Allowed origin %q is not an absolute URL", origin)
		}
	}

	return result
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		paths = []string{"server.json"}
	}

	allValid := true
	for _, path := range paths {
		result := validateFile(path)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("VALID")
		} else {
			fmt.Println("INVALID")
			allValid = false
			for _, msg := range result.Errors {
				fmt.Println("  - " + msg)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("All configurations are valid")
	} else {
		fmt.Println("Some configurations have errors")
		os.Exit(1)
	}
}
