// Package gitignore decides which directory entries stay out of the
// rendered tree. It combines a fixed built-in ignore set with the
// repository's own ignore rules, queried through git.
package gitignore

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/temirov/lstree/internal/utils"
)

// builtinIgnoredNames lists basenames excluded from every listing
// regardless of repository state.
var builtinIgnoredNames = map[string]struct{}{
	utils.GitDirectoryName: {},
	"node_modules":         {},
	".next":                {},
	".github":              {},
	".venv":                {},
	"__ARCHIVE__":          {},
	".cursor":              {},
	".vscode":              {},
}

// CheckIgnoreFunc asks the version-control system whether the path,
// given relative to the repository root, is ignored. Implementations
// must return an error rather than guess when the answer is unknown.
type CheckIgnoreFunc func(repositoryRoot string, relativePath string) (bool, error)

// Oracle answers ignore queries for directory entries. With an empty
// repository root it operates in degraded mode: only the name set
// applies and the version-control query is skipped entirely.
type Oracle struct {
	repositoryRoot string
	ignoredNames   map[string]struct{}
	checkIgnore    CheckIgnoreFunc
}

// NewOracle constructs an Oracle for the given repository root, which
// may be empty when no repository was detected. extraIgnoredNames
// augment the built-in set. A nil checkIgnore falls back to invoking
// git check-ignore.
func NewOracle(repositoryRoot string, extraIgnoredNames []string, checkIgnore CheckIgnoreFunc) *Oracle {
	if checkIgnore == nil {
		checkIgnore = gitCheckIgnore
	}
	ignoredNames := make(map[string]struct{}, len(builtinIgnoredNames)+len(extraIgnoredNames))
	for builtinName := range builtinIgnoredNames {
		ignoredNames[builtinName] = struct{}{}
	}
	for _, extraName := range extraIgnoredNames {
		if extraName != utils.EmptyString {
			ignoredNames[extraName] = struct{}{}
		}
	}
	return &Oracle{repositoryRoot: repositoryRoot, ignoredNames: ignoredNames, checkIgnore: checkIgnore}
}

// IsIgnored reports whether the entry at entryPath should be excluded
// from the tree. Version-control query failures are treated as "not
// ignored" so the walk continues instead of aborting.
func (oracle *Oracle) IsIgnored(entryPath string) bool {
	if _, isIgnoredName := oracle.ignoredNames[filepath.Base(entryPath)]; isIgnoredName {
		return true
	}
	if oracle.repositoryRoot == utils.EmptyString {
		return false
	}
	relativePath := utils.RelativePathOrSelf(entryPath, oracle.repositoryRoot)
	ignored, checkError := oracle.checkIgnore(oracle.repositoryRoot, relativePath)
	if checkError != nil {
		return false
	}
	return ignored
}

// DiscoverRepositoryRoot locates the version-control root containing
// startDirectory. It asks git first and falls back to walking upward
// for a .git directory. An empty result means degraded mode, not an
// error.
func DiscoverRepositoryRoot(startDirectory string) string {
	// #nosec G204
	revParseCommand := exec.Command("git", "rev-parse", "--show-toplevel")
	revParseCommand.Dir = startDirectory
	revParseOutput, revParseError := revParseCommand.Output()
	if revParseError == nil && len(revParseOutput) > 0 {
		return strings.TrimSpace(string(revParseOutput))
	}

	gitDirectoryPath, gitDirectoryError := utils.FindGitDirectory(startDirectory)
	if gitDirectoryError != nil {
		return utils.EmptyString
	}
	return gitDirectoryPath
}

// gitCheckIgnore consults git check-ignore for a single path. Exit
// status zero means ignored, status one means not ignored, and any
// other failure is reported as an error.
func gitCheckIgnore(repositoryRoot string, relativePath string) (bool, error) {
	// #nosec G204
	checkIgnoreCommand := exec.Command("git", "-C", repositoryRoot, "check-ignore", "--quiet", relativePath)
	runError := checkIgnoreCommand.Run()
	if runError == nil {
		return true, nil
	}
	var exitError *exec.ExitError
	if errors.As(runError, &exitError) && exitError.ExitCode() == 1 {
		return false, nil
	}
	return false, runError
}
