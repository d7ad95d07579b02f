// Package output renders tree lines to a writer. It owns the connector
// constants and the optional colorization of directory names.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	// TreeBranchConnector prefixes every sibling except the last.
	TreeBranchConnector = "├── "
	// TreeLastConnector prefixes the last sibling at a level.
	TreeLastConnector = "└── "
	// TreeBranchPadding continues the indent below a branch connector.
	TreeBranchPadding = "│   "
	// TreeLastPadding continues the indent below a last connector.
	TreeLastPadding = "    "
	// DirectoryMarker precedes directory names in the rendered tree.
	DirectoryMarker = "📁 "
	// HeaderSuffix terminates a root header line.
	HeaderSuffix = "/"

	// ColorModeAuto enables color only when stdout is a terminal.
	ColorModeAuto = "auto"
	// ColorModeAlways enables color unconditionally.
	ColorModeAlways = "always"
	// ColorModeNever disables color unconditionally.
	ColorModeNever = "never"
)

// ColorEnabled resolves a color mode against the actual stdout device.
func ColorEnabled(colorMode string, stdout *os.File) bool {
	switch colorMode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		return isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())
	}
}

// Printer writes rendered tree lines to a single destination.
type Printer struct {
	writer           io.Writer
	directoryPainter *color.Color
}

// NewPrinter constructs a Printer targeting writer. When colorize is
// true directory names are painted; header and file lines stay plain.
func NewPrinter(writer io.Writer, colorize bool) *Printer {
	printer := &Printer{writer: writer}
	if colorize {
		painter := color.New(color.FgBlue, color.Bold)
		painter.EnableColor()
		printer.directoryPainter = painter
	}
	return printer
}

// Header prints the root header line for a walk, e.g. "logs/" or "./".
func (printer *Printer) Header(rootName string) {
	fmt.Fprintln(printer.writer, rootName+HeaderSuffix)
}

// Entry prints one tree line composed of the accumulated indent, the
// sibling connector, and the entry name with its directory marker.
func (printer *Printer) Entry(indent string, connector string, entryName string, isDirectory bool) {
	if !isDirectory {
		fmt.Fprintln(printer.writer, indent+connector+entryName)
		return
	}
	displayName := entryName
	if printer.directoryPainter != nil {
		displayName = printer.directoryPainter.Sprint(entryName)
	}
	fmt.Fprintln(printer.writer, indent+connector+DirectoryMarker+displayName)
}
