// Package walker implements the recursive tree-printing engine. Each
// frame resolves the directory's applicable flags, lists and filters
// its children, orders them under the active display policy, and
// recurses with freshly constructed per-frame state.
package walker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/temirov/lstree/internal/flags"
	"github.com/temirov/lstree/internal/output"
	"github.com/temirov/lstree/internal/types"
	"github.com/temirov/lstree/internal/utils"
)

// warningReadDirectoryFormat is used when a directory cannot be listed.
const warningReadDirectoryFormat = "Warning: unable to read directory %s: %v\n"

// IgnoreOracle reports whether an entry is excluded from the tree.
type IgnoreOracle interface {
	IsIgnored(entryPath string) bool
}

// Walker drives the depth-first traversal. It holds only read-only
// collaborators, so a single Walker serves every root walk of an
// invocation.
type Walker struct {
	registry       *flags.Registry
	ignoreOracle   IgnoreOracle
	printer        *output.Printer
	invocationRoot string
	warningWriter  io.Writer
}

// NewWalker constructs a Walker. invocationRoot anchors the normalized
// relative paths used for registry lookups; warnings about unreadable
// directories go to warningWriter.
func NewWalker(registry *flags.Registry, ignoreOracle IgnoreOracle, printer *output.Printer, invocationRoot string, warningWriter io.Writer) *Walker {
	return &Walker{
		registry:       registry,
		ignoreOracle:   ignoreOracle,
		printer:        printer,
		invocationRoot: invocationRoot,
		warningWriter:  warningWriter,
	}
}

// Walk prints the subtree rooted at the frame's directory. An empty
// directory produces no lines and no recursion.
func (walker *Walker) Walk(frame types.WalkContext) {
	effectiveMaxDepth := frame.MaxDepth
	effectiveStructureOnly := frame.StructureOnly
	effectiveFilesOnlyAtLevel := frame.FilesOnlyAtLevel
	depthSinceFlagOrigin := frame.DepthSinceFlagOrigin

	normalizedRelativePath := walker.normalizedRelativePath(frame.Path)
	if flagString, matched := walker.registry.Lookup(normalizedRelativePath, filepath.Base(frame.Path)); matched {
		// Matched flags replace the inherited set and make this
		// directory the origin for any depth limit they declare.
		parsedFlags := flags.Parse(flagString)
		effectiveMaxDepth = parsedFlags.MaxDepth
		effectiveStructureOnly = parsedFlags.StructureOnly
		effectiveFilesOnlyAtLevel = parsedFlags.FilesOnlyAtLevel
		depthSinceFlagOrigin = 0
	}

	directories, files := walker.listChildren(frame.Path)
	displayedEntries, hiddenDirectories := selectEntries(directories, files, frame, effectiveStructureOnly, effectiveFilesOnlyAtLevel)

	for entryIndex, entry := range displayedEntries {
		isLastEntry := entryIndex == len(displayedEntries)-1
		connector := output.TreeBranchConnector
		childPadding := output.TreeBranchPadding
		if isLastEntry {
			connector = output.TreeLastConnector
			childPadding = output.TreeLastPadding
		}
		walker.printer.Entry(frame.Indent, connector, entry.Name, entry.IsDir)
		if entry.IsDir {
			walker.descend(frame, entry, frame.Indent+childPadding, effectiveMaxDepth, effectiveStructureOnly, effectiveFilesOnlyAtLevel, depthSinceFlagOrigin)
		}
	}

	// Directories hidden at a files-only level still recurse. Nothing
	// was printed for them, so the continuation indent is the plain
	// four-space padding.
	for _, hiddenDirectory := range hiddenDirectories {
		walker.descend(frame, hiddenDirectory, frame.Indent+output.TreeLastPadding, effectiveMaxDepth, effectiveStructureOnly, effectiveFilesOnlyAtLevel, depthSinceFlagOrigin)
	}
}

// descend recurses into a child directory unless the active depth
// limit forbids it. The depth-since-origin counter only advances while
// a limit is active; otherwise it stays an inert zero that becomes
// meaningful if a deeper directory introduces a limit of its own.
func (walker *Walker) descend(frame types.WalkContext, directory types.Entry, childIndent string, maxDepth *int, structureOnly bool, filesOnlyAtLevel *int, depthSinceFlagOrigin int) {
	childDepthSinceOrigin := 0
	if maxDepth != nil {
		childDepthSinceOrigin = depthSinceFlagOrigin + 1
		if childDepthSinceOrigin >= *maxDepth {
			return
		}
	}
	walker.Walk(types.WalkContext{
		Path:                 directory.Path,
		Indent:               childIndent,
		MaxDepth:             maxDepth,
		AbsoluteDepth:        frame.AbsoluteDepth + 1,
		StructureOnly:        structureOnly,
		FilesOnlyAtLevel:     filesOnlyAtLevel,
		DepthSinceFlagOrigin: childDepthSinceOrigin,
	})
}

// listChildren lists the immediate children of directoryPath, drops
// ignored entries, and returns the directory and file partitions, each
// sorted by name. An unreadable directory degrades to "no children"
// with a warning.
func (walker *Walker) listChildren(directoryPath string) ([]types.Entry, []types.Entry) {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		fmt.Fprintf(walker.warningWriter, warningReadDirectoryFormat, directoryPath, readDirectoryError)
		return nil, nil
	}

	var directories []types.Entry
	var files []types.Entry
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		if walker.ignoreOracle.IsIgnored(childPath) {
			continue
		}
		entry := types.Entry{Path: childPath, Name: directoryEntry.Name(), IsDir: directoryEntry.IsDir()}
		if entry.IsDir {
			directories = append(directories, entry)
		} else {
			files = append(files, entry)
		}
	}

	sortEntriesByName(directories)
	sortEntriesByName(files)
	return directories, files
}

// selectEntries applies the display policy in priority order: the
// files-only level first, prioritized root directories second, the
// plain directories-then-files ordering last. It returns the entries
// to display plus any directories withheld from display that must
// still recurse.
func selectEntries(directories []types.Entry, files []types.Entry, frame types.WalkContext, structureOnly bool, filesOnlyAtLevel *int) ([]types.Entry, []types.Entry) {
	if filesOnlyAtLevel != nil {
		if frame.AbsoluteDepth+1 == *filesOnlyAtLevel {
			return files, directories
		}
		// At every other level the mode shows the directory skeleton
		// only; files outside the target level never appear.
		return directories, nil
	}

	displayedEntries := directories
	if len(frame.PrioritizedNames) > 0 {
		prioritizedDirectories, remainingDirectories := partitionPrioritized(directories, frame.PrioritizedNames)
		displayedEntries = append(prioritizedDirectories, remainingDirectories...)
	}
	if !structureOnly {
		displayedEntries = append(displayedEntries, files...)
	}
	return displayedEntries, nil
}

// partitionPrioritized splits directories into those whose basename is
// in prioritizedNames and the remainder, preserving listing order
// within each part.
func partitionPrioritized(directories []types.Entry, prioritizedNames map[string]struct{}) ([]types.Entry, []types.Entry) {
	var prioritizedDirectories []types.Entry
	var remainingDirectories []types.Entry
	for _, directory := range directories {
		if _, isPrioritized := prioritizedNames[directory.Name]; isPrioritized {
			prioritizedDirectories = append(prioritizedDirectories, directory)
		} else {
			remainingDirectories = append(remainingDirectories, directory)
		}
	}
	return prioritizedDirectories, remainingDirectories
}

// sortEntriesByName orders entries lexicographically by name.
func sortEntriesByName(entries []types.Entry) {
	sort.Slice(entries, func(firstIndex, secondIndex int) bool {
		return entries[firstIndex].Name < entries[secondIndex].Name
	})
}

// normalizedRelativePath converts an absolute directory path into the
// registry's normalized key form: relative to the invocation root,
// with the root itself collapsing to the empty string.
func (walker *Walker) normalizedRelativePath(directoryPath string) string {
	relativePath := utils.RelativePathOrSelf(directoryPath, walker.invocationRoot)
	if relativePath == "." {
		return utils.EmptyString
	}
	return relativePath
}
