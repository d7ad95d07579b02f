package flags

import (
	"os"
	"path/filepath"

	"github.com/temirov/lstree/internal/utils"
)

// currentDirectoryReference is the relative path that collapses to the
// empty registry key, meaning "the walk's own root".
const currentDirectoryReference = "."

// Registry maps a normalized directory identity to its raw flag
// string. It is populated once before any walking begins and is
// read-only afterward, so lookups during the walk need no locking.
type Registry struct {
	flagStringsByKey map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{flagStringsByKey: make(map[string]string)}
}

// Register stores a raw flag string under the given key. The last
// registration for a key wins.
func (registry *Registry) Register(key string, flagString string) {
	registry.flagStringsByKey[key] = flagString
}

// RegisterDirectory normalizes directoryReference against the
// invocation root before registering. A reference that names an
// existing directory is stored under its path relative to the
// invocation root, with "." collapsing to the empty key. A reference
// that does not exist is stored verbatim.
func (registry *Registry) RegisterDirectory(invocationRoot string, directoryReference string, flagString string) {
	registry.Register(normalizeDirectoryKey(invocationRoot, directoryReference), flagString)
}

// Lookup returns the raw flag string for a directory, trying the
// normalized relative path first and the bare basename second.
func (registry *Registry) Lookup(normalizedRelativePath string, baseName string) (string, bool) {
	if flagString, found := registry.flagStringsByKey[normalizedRelativePath]; found {
		return flagString, true
	}
	flagString, found := registry.flagStringsByKey[baseName]
	return flagString, found
}

// normalizeDirectoryKey resolves directoryReference to a registry key.
func normalizeDirectoryKey(invocationRoot string, directoryReference string) string {
	referencedPath := directoryReference
	if !filepath.IsAbs(referencedPath) {
		referencedPath = filepath.Join(invocationRoot, referencedPath)
	}
	absolutePath, absolutePathError := filepath.Abs(referencedPath)
	if absolutePathError != nil {
		return directoryReference
	}
	directoryInformation, statError := os.Stat(absolutePath)
	if statError != nil || !directoryInformation.IsDir() {
		return directoryReference
	}
	relativePath := utils.RelativePathOrSelf(absolutePath, invocationRoot)
	if relativePath == currentDirectoryReference {
		return utils.EmptyString
	}
	return relativePath
}
