// Package types defines every cross-package data structure used by the lstree CLI.
package types

// DirectoryFlags is the parsed form of a per-directory flag string.
// The zero value means "no overrides". A DirectoryFlags value is
// created once per flag-string lookup and never mutated afterward.
type DirectoryFlags struct {
	// MaxDepth limits how many directory levels below the flag origin
	// are traversed. Nil means no limit.
	MaxDepth *int
	// StructureOnly suppresses file entries, showing only the directory skeleton.
	StructureOnly bool
	// FilesOnlyAtLevel shows files exclusively at the given level and
	// directories exclusively everywhere else. Nil disables the mode.
	FilesOnlyAtLevel *int
}

// Entry describes one immediate child of a directory. Entries are
// produced fresh per listing and never cached across calls.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// WalkContext carries the per-frame state of the recursive walk. A new
// context is constructed for every descent; frames are never mutated
// in place and no frame outlives its parent's call.
type WalkContext struct {
	// Path is the absolute path of the directory this frame lists.
	Path string
	// Indent is the accumulated display prefix for this frame's lines.
	Indent string
	// PrioritizedNames holds subdirectory basenames listed ahead of the
	// rest. Populated only for the synthetic root call.
	PrioritizedNames map[string]struct{}
	// MaxDepth is the effective depth limit for this subtree, nil when inactive.
	MaxDepth *int
	// AbsoluteDepth counts descents from the walk root.
	AbsoluteDepth int
	// StructureOnly is the effective structure-only mode for this subtree.
	StructureOnly bool
	// FilesOnlyAtLevel is the effective files-only level for this subtree.
	FilesOnlyAtLevel *int
	// DepthSinceFlagOrigin counts descents since the directory whose
	// flags introduced the active depth limit. It resets to zero when a
	// directory's own flags match and stays an inert zero while no
	// limit is active.
	DepthSinceFlagOrigin int
}
