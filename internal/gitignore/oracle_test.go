package gitignore_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/temirov/lstree/internal/gitignore"
)

// repositoryRootPath is the fake repository root used by oracle tests.
const repositoryRootPath = "/repo"

// TestOracleBuiltinNames verifies the fixed basename ignore set.
func TestOracleBuiltinNames(testingInstance *testing.T) {
	oracle := gitignore.NewOracle("", nil, nil)
	testCases := []struct {
		testName        string
		entryPath       string
		expectedIgnored bool
	}{
		{
			testName:        "git directory",
			entryPath:       filepath.Join("project", ".git"),
			expectedIgnored: true,
		},
		{
			testName:        "node modules",
			entryPath:       filepath.Join("project", "node_modules"),
			expectedIgnored: true,
		},
		{
			testName:        "archive directory",
			entryPath:       filepath.Join("project", "__ARCHIVE__"),
			expectedIgnored: true,
		},
		{
			testName:        "editor directory",
			entryPath:       filepath.Join("project", ".vscode"),
			expectedIgnored: true,
		},
		{
			testName:        "regular entry",
			entryPath:       filepath.Join("project", "src"),
			expectedIgnored: false,
		},
	}
	for index, testCase := range testCases {
		actual := oracle.IsIgnored(testCase.entryPath)
		if actual != testCase.expectedIgnored {
			testingInstance.Errorf("case %d (%s): expected %t, got %t", index, testCase.testName, testCase.expectedIgnored, actual)
		}
	}
}

// TestOracleExtraNames verifies configuration-supplied additions to the set.
func TestOracleExtraNames(testingInstance *testing.T) {
	oracle := gitignore.NewOracle("", []string{"dist", "coverage"}, nil)
	if !oracle.IsIgnored("project/dist") {
		testingInstance.Errorf("expected dist to be ignored")
	}
	if oracle.IsIgnored("project/src") {
		testingInstance.Errorf("expected src to stay visible")
	}
}

// TestOracleDegradedModeSkipsQuery verifies that without a repository
// root the version-control query is never made.
func TestOracleDegradedModeSkipsQuery(testingInstance *testing.T) {
	queryCount := 0
	oracle := gitignore.NewOracle("", nil, func(string, string) (bool, error) {
		queryCount++
		return true, nil
	})
	if oracle.IsIgnored("project/anything") {
		testingInstance.Errorf("expected entry to stay visible in degraded mode")
	}
	if queryCount != 0 {
		testingInstance.Errorf("expected zero queries, got %d", queryCount)
	}
}

// TestOracleDefersToQuery verifies that a detected repository root
// routes queries through the collaborator with a relativized path.
func TestOracleDefersToQuery(testingInstance *testing.T) {
	var observedRelativePath string
	oracle := gitignore.NewOracle(repositoryRootPath, nil, func(repositoryRoot string, relativePath string) (bool, error) {
		if repositoryRoot != repositoryRootPath {
			testingInstance.Errorf("expected repository root %s, got %s", repositoryRootPath, repositoryRoot)
		}
		observedRelativePath = relativePath
		return true, nil
	})
	if !oracle.IsIgnored(filepath.Join(repositoryRootPath, "build")) {
		testingInstance.Errorf("expected query result to be honored")
	}
	if observedRelativePath != "build" {
		testingInstance.Errorf("expected relative path build, got %s", observedRelativePath)
	}
}

// TestOracleFailOpen verifies that query failures count as not ignored.
func TestOracleFailOpen(testingInstance *testing.T) {
	oracle := gitignore.NewOracle(repositoryRootPath, nil, func(string, string) (bool, error) {
		return false, errors.New("tool unavailable")
	})
	if oracle.IsIgnored(filepath.Join(repositoryRootPath, "build")) {
		testingInstance.Errorf("expected failure to fail open")
	}
}
