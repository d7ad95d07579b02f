// Package flags parses per-directory flag strings and maintains the
// directory flag registry consulted during the walk.
package flags

import (
	"strconv"
	"strings"

	"github.com/temirov/lstree/internal/types"
)

const (
	depthFlagToken                = "-d"
	depthFlagLongToken            = "--depth"
	structureOnlyFlagToken        = "-s"
	structureOnlyFlagLongToken    = "--structure-only"
	filesOnlyAtLevelFlagToken     = "-f"
	filesOnlyAtLevelFlagLongToken = "--files-only-at-level"
)

// Parse converts a raw flag string such as "-d 1 -s" into a
// DirectoryFlags value. Tokens split on whitespace. Unknown tokens are
// silently ignored; a value flag whose argument is missing or does not
// parse as an integer leaves that field unset. Parsing never fails and
// an empty input yields the zero value.
func Parse(flagString string) types.DirectoryFlags {
	var parsedFlags types.DirectoryFlags

	tokens := strings.Fields(flagString)
	tokenIndex := 0
	for tokenIndex < len(tokens) {
		currentToken := tokens[tokenIndex]
		switch currentToken {
		case depthFlagToken, depthFlagLongToken:
			value, consumed := parseIntegerArgument(tokens, tokenIndex)
			if value != nil {
				parsedFlags.MaxDepth = value
			}
			tokenIndex += consumed
		case structureOnlyFlagToken, structureOnlyFlagLongToken:
			parsedFlags.StructureOnly = true
			tokenIndex++
		case filesOnlyAtLevelFlagToken, filesOnlyAtLevelFlagLongToken:
			value, consumed := parseIntegerArgument(tokens, tokenIndex)
			if value != nil {
				parsedFlags.FilesOnlyAtLevel = value
			}
			tokenIndex += consumed
		default:
			tokenIndex++
		}
	}

	return parsedFlags
}

// parseIntegerArgument reads the token following flagIndex as an
// integer. It returns the parsed value (nil when absent or malformed)
// and how many tokens the caller must advance.
func parseIntegerArgument(tokens []string, flagIndex int) (*int, int) {
	if flagIndex+1 >= len(tokens) {
		return nil, 1
	}
	parsedValue, parseError := strconv.Atoi(tokens[flagIndex+1])
	if parseError != nil {
		return nil, 2
	}
	return &parsedValue, 2
}
