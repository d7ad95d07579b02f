// Package config loads the flags file and the layered application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	// commentLinePrefix marks a flags-file line that carries no entry.
	commentLinePrefix = "#"
	// flagsFileSeparator splits a directory reference from its flag string.
	flagsFileSeparator = ":"
)

// FlagsFileEntry is one directory-to-flag-string pair read from a
// flags file, in file order.
type FlagsFileEntry struct {
	Directory  string
	FlagString string
}

// LoadFlagsFile reads a flags file with one "directory:flags" pair per
// line. Blank lines and lines whose first non-whitespace character is
// "#" are skipped, and every line is trimmed before parsing. Lines
// without a separator are skipped as well.
//
// #nosec G304
func LoadFlagsFile(flagsFilePath string) ([]FlagsFileEntry, error) {
	fileHandle, openFileError := os.Open(flagsFilePath)
	if openFileError != nil {
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", flagsFilePath, closeError)
		}
	}()

	var entries []FlagsFileEntry
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentLinePrefix) {
			continue
		}
		separatorIndex := strings.Index(trimmedLine, flagsFileSeparator)
		if separatorIndex < 0 {
			continue
		}
		entries = append(entries, FlagsFileEntry{
			Directory:  trimmedLine[:separatorIndex],
			FlagString: trimmedLine[separatorIndex+len(flagsFileSeparator):],
		})
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return entries, nil
}
