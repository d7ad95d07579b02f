package flags_test

import (
	"testing"

	"github.com/temirov/lstree/internal/flags"
	"github.com/temirov/lstree/internal/types"
)

// intPointer returns a pointer to the provided value.
func intPointer(value int) *int {
	return &value
}

// flagsEqual compares two DirectoryFlags values field by field.
func flagsEqual(first types.DirectoryFlags, second types.DirectoryFlags) bool {
	if (first.MaxDepth == nil) != (second.MaxDepth == nil) {
		return false
	}
	if first.MaxDepth != nil && *first.MaxDepth != *second.MaxDepth {
		return false
	}
	if (first.FilesOnlyAtLevel == nil) != (second.FilesOnlyAtLevel == nil) {
		return false
	}
	if first.FilesOnlyAtLevel != nil && *first.FilesOnlyAtLevel != *second.FilesOnlyAtLevel {
		return false
	}
	return first.StructureOnly == second.StructureOnly
}

// TestParse verifies flag-string parsing across recognized and unrecognized tokens.
func TestParse(testingInstance *testing.T) {
	testCases := []struct {
		testName   string
		flagString string
		expected   types.DirectoryFlags
	}{
		{
			testName:   "empty string yields defaults",
			flagString: "",
			expected:   types.DirectoryFlags{},
		},
		{
			testName:   "depth and structure only",
			flagString: "-d 1 -s",
			expected:   types.DirectoryFlags{MaxDepth: intPointer(1), StructureOnly: true},
		},
		{
			testName:   "order independent",
			flagString: "-s -d 1",
			expected:   types.DirectoryFlags{MaxDepth: intPointer(1), StructureOnly: true},
		},
		{
			testName:   "long spellings",
			flagString: "--depth 2 --structure-only --files-only-at-level 3",
			expected:   types.DirectoryFlags{MaxDepth: intPointer(2), StructureOnly: true, FilesOnlyAtLevel: intPointer(3)},
		},
		{
			testName:   "files only at level",
			flagString: "-f 2",
			expected:   types.DirectoryFlags{FilesOnlyAtLevel: intPointer(2)},
		},
		{
			testName:   "unknown tokens ignored",
			flagString: "-x whatever -s",
			expected:   types.DirectoryFlags{StructureOnly: true},
		},
		{
			testName:   "missing depth argument leaves field unset",
			flagString: "-s -d",
			expected:   types.DirectoryFlags{StructureOnly: true},
		},
		{
			testName:   "non-numeric depth argument leaves field unset",
			flagString: "-d deep -f 1",
			expected:   types.DirectoryFlags{FilesOnlyAtLevel: intPointer(1)},
		},
		{
			testName:   "depth zero is a valid limit",
			flagString: "-d 0",
			expected:   types.DirectoryFlags{MaxDepth: intPointer(0)},
		},
		{
			testName:   "extra whitespace tolerated",
			flagString: "  -d   3   -s  ",
			expected:   types.DirectoryFlags{MaxDepth: intPointer(3), StructureOnly: true},
		},
	}
	for index, testCase := range testCases {
		actual := flags.Parse(testCase.flagString)
		if !flagsEqual(actual, testCase.expected) {
			testingInstance.Errorf("case %d (%s): expected %+v, got %+v", index, testCase.testName, testCase.expected, actual)
		}
	}
}

// TestParseIdempotence verifies that parsing the same string twice yields equal values.
func TestParseIdempotence(testingInstance *testing.T) {
	flagString := "-d 2 -s -f 1"
	first := flags.Parse(flagString)
	second := flags.Parse(flagString)
	if !flagsEqual(first, second) {
		testingInstance.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}
