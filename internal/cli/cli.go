// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/lstree/internal/config"
	"github.com/temirov/lstree/internal/flags"
	"github.com/temirov/lstree/internal/gitignore"
	"github.com/temirov/lstree/internal/output"
	"github.com/temirov/lstree/internal/services/clipboard"
	"github.com/temirov/lstree/internal/types"
	"github.com/temirov/lstree/internal/utils"
	"github.com/temirov/lstree/internal/walker"
)

const (
	flagsFileFlagName     = "ff"
	structureOnlyFlagName = "structure-only"
	depthFlagName         = "depth"
	copyFlagName          = "copy"
	colorFlagName         = "color"
	versionFlagName       = "version"
	versionTemplate       = "lstree version: %s\n"

	rootUse              = "lstree [targets...]"
	rootShortDescription = "render annotated directory trees"
	rootLongDescription  = `lstree prints an indented, connector-annotated tree for one or more directories.
Targets may be bare paths, the literal ".", or dir:flags tokens such as 'src:-d 1 -s'
(quote the token so the flag string stays one argument). Per-directory flags:
-d/--depth <n>, -s/--structure-only, -f/--files-only-at-level <n>.`
	rootUsageExample = `  # Current directory, honoring .gitignore
  lstree

  # Limit src to one level and show only structure under vendor
  lstree 'src:-d 1' 'vendor:-s'

  # Root listing with logs and tmp surfaced first
  lstree . logs tmp`

	flagsFileFlagDescription     = "file with one directory:flags pair per line"
	structureOnlyFlagDescription = "show only the directory skeleton"
	depthFlagDescription         = "default maximum depth for every root walk"
	copyFlagDescription          = "copy the rendered tree to the clipboard"
	colorFlagDescription         = "colorize directory names (auto, always, never)"
	versionFlagDescription       = "display application version"

	// currentDirectoryToken is the literal argument naming the invocation root.
	currentDirectoryToken = "."
	// currentDirectoryHeader heads the walk rooted at the invocation directory.
	currentDirectoryHeader = "."
	// targetSeparator splits a dir:flags token at its first occurrence.
	targetSeparator = ":"
	// shortFlagsFileArgument is the historical single-dash spelling of --ff.
	shortFlagsFileArgument = "-ff"
	// unsetDepthSentinel marks the depth flag as not provided.
	unsetDepthSentinel = -1

	warningFlagsFileFormat      = "skipping flags file %s: %v"
	warningClipboardFormat      = "clipboard copy failed: %v"
	advisoryNoRepositoryMessage = "no repository root detected; tree output proceeds without gitignore filtering"
	errorTargetFormat           = "Error: %s is not an accessible directory: %v\n"
	errorNotDirectoryFormat     = "Error: %s is not a directory\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// target is one positional argument split into its directory reference
// and optional raw flag string.
type target struct {
	name       string
	flagString string
	hasFlags   bool
}

// Execute runs the lstree application.
func Execute(loggerInstance *zap.Logger) error {
	rootCommand := createRootCommand(loggerInstance)
	rootCommand.SetArgs(normalizeArguments(os.Args[1:]))
	return rootCommand.Execute()
}

// normalizeArguments rewrites the historical single-dash -ff spelling
// into the --ff form pflag expects. Everything else passes through.
func normalizeArguments(arguments []string) []string {
	normalized := make([]string, 0, len(arguments))
	for _, argumentValue := range arguments {
		if argumentValue == shortFlagsFileArgument {
			argumentValue = "--" + flagsFileFlagName
		}
		normalized = append(normalized, argumentValue)
	}
	return normalized
}

// createRootCommand builds the root Cobra command.
func createRootCommand(loggerInstance *zap.Logger) *cobra.Command {
	var showVersion bool
	var flagsFilePath string
	var structureOnly bool
	var defaultDepth int
	var copyEnabled bool
	var colorMode string

	rootCommand := &cobra.Command{
		Use:                rootUse,
		Short:              rootShortDescription,
		Long:               rootLongDescription,
		Example:            rootUsageExample,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			invocation := invocationOptions{
				flagsFilePath:      flagsFilePath,
				flagsFileSet:       command.Flags().Changed(flagsFileFlagName),
				structureOnly:      structureOnly,
				structureOnlySet:   command.Flags().Changed(structureOnlyFlagName),
				defaultDepth:       defaultDepth,
				defaultDepthSet:    command.Flags().Changed(depthFlagName),
				copyEnabled:        copyEnabled,
				copyEnabledSet:     command.Flags().Changed(copyFlagName),
				colorMode:          colorMode,
				colorModeSet:       command.Flags().Changed(colorFlagName),
				positionalTargets:  arguments,
				logger:             loggerInstance,
				standardOutput:     os.Stdout,
				diagnosticOutput:   os.Stderr,
				clipboardCopier:    clipboard.NewService(),
				discoverRepository: gitignore.DiscoverRepositoryRoot,
			}
			return runTree(invocation)
		},
	}

	rootCommand.Flags().StringVar(&flagsFilePath, flagsFileFlagName, "", flagsFileFlagDescription)
	rootCommand.Flags().BoolVarP(&structureOnly, structureOnlyFlagName, "s", false, structureOnlyFlagDescription)
	rootCommand.Flags().IntVarP(&defaultDepth, depthFlagName, "d", unsetDepthSentinel, depthFlagDescription)
	rootCommand.Flags().BoolVarP(&copyEnabled, copyFlagName, "c", false, copyFlagDescription)
	rootCommand.Flags().StringVar(&colorMode, colorFlagName, output.ColorModeAuto, colorFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	return rootCommand
}

// invocationOptions gathers everything one invocation needs, with the
// Changed markers that let configuration fill in unset flags.
type invocationOptions struct {
	flagsFilePath      string
	flagsFileSet       bool
	structureOnly      bool
	structureOnlySet   bool
	defaultDepth       int
	defaultDepthSet    bool
	copyEnabled        bool
	copyEnabledSet     bool
	colorMode          string
	colorModeSet       bool
	positionalTargets  []string
	logger             *zap.Logger
	standardOutput     *os.File
	diagnosticOutput   io.Writer
	clipboardCopier    clipboard.Copier
	discoverRepository func(string) string
}

// runTree executes the whole invocation: configuration merge, registry
// population, repository discovery, and one walk per selected root.
func runTree(invocation invocationOptions) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(workingDirectory)
	if configurationError != nil {
		return configurationError
	}
	applyConfigurationDefaults(&invocation, applicationConfiguration)

	parsedTargets := parseTargets(invocation.positionalTargets)

	registry := flags.NewRegistry()
	if invocation.flagsFilePath != "" {
		loadFlagsFile(registry, workingDirectory, invocation.flagsFilePath, invocation.logger)
	}
	for _, parsedTarget := range parsedTargets {
		if parsedTarget.hasFlags {
			registry.RegisterDirectory(workingDirectory, parsedTarget.name, parsedTarget.flagString)
		}
	}

	repositoryRoot := invocation.discoverRepository(workingDirectory)
	if repositoryRoot == utils.EmptyString {
		invocation.logger.Warn(advisoryNoRepositoryMessage)
	}
	ignoreOracle := gitignore.NewOracle(repositoryRoot, applicationConfiguration.Ignore.Extra, nil)

	var clipboardBuffer bytes.Buffer
	var destination io.Writer = invocation.standardOutput
	if invocation.copyEnabled {
		destination = io.MultiWriter(invocation.standardOutput, &clipboardBuffer)
	}
	printer := output.NewPrinter(destination, output.ColorEnabled(invocation.colorMode, invocation.standardOutput))
	treeWalker := walker.NewWalker(registry, ignoreOracle, printer, workingDirectory, invocation.diagnosticOutput)

	walkSelectedRoots(invocation, parsedTargets, workingDirectory, printer, treeWalker)

	if invocation.copyEnabled {
		if copyError := invocation.clipboardCopier.Copy(clipboardBuffer.String()); copyError != nil {
			invocation.logger.Warn(fmt.Sprintf(warningClipboardFormat, copyError))
		}
	}
	return nil
}

// applyConfigurationDefaults backfills options the user did not set on
// the command line from the merged application configuration.
func applyConfigurationDefaults(invocation *invocationOptions, applicationConfiguration config.ApplicationConfiguration) {
	if !invocation.flagsFileSet && applicationConfiguration.FlagsFile != "" {
		invocation.flagsFilePath = applicationConfiguration.FlagsFile
	}
	if !invocation.colorModeSet && applicationConfiguration.Color != "" {
		invocation.colorMode = applicationConfiguration.Color
	}
	if !invocation.copyEnabledSet && applicationConfiguration.Copy != nil {
		invocation.copyEnabled = *applicationConfiguration.Copy
	}
	if !invocation.structureOnlySet && applicationConfiguration.StructureOnly != nil {
		invocation.structureOnly = *applicationConfiguration.StructureOnly
	}
}

// parseTargets splits positional arguments into directory references
// and optional flag strings at the first separator.
func parseTargets(arguments []string) []target {
	parsedTargets := make([]target, 0, len(arguments))
	for _, argumentValue := range arguments {
		separatorIndex := strings.Index(argumentValue, targetSeparator)
		if separatorIndex < 0 {
			parsedTargets = append(parsedTargets, target{name: argumentValue})
			continue
		}
		parsedTargets = append(parsedTargets, target{
			name:       argumentValue[:separatorIndex],
			flagString: argumentValue[separatorIndex+len(targetSeparator):],
			hasFlags:   true,
		})
	}
	return parsedTargets
}

// loadFlagsFile registers every entry of the flags file. A missing or
// unreadable file is a warning; the invocation continues without it.
func loadFlagsFile(registry *flags.Registry, workingDirectory string, flagsFilePath string, loggerInstance *zap.Logger) {
	entries, loadError := config.LoadFlagsFile(flagsFilePath)
	if loadError != nil {
		loggerInstance.Warn(fmt.Sprintf(warningFlagsFileFormat, flagsFilePath, loadError))
		return
	}
	for _, entry := range entries {
		registry.RegisterDirectory(workingDirectory, entry.Directory, entry.FlagString)
	}
}

// walkSelectedRoots interprets the positional pattern: no targets or
// only "." walk the invocation root; explicit paths walk independently
// in argument order; "." plus explicit paths walk the invocation root
// once with the explicit basenames prioritized.
func walkSelectedRoots(invocation invocationOptions, parsedTargets []target, workingDirectory string, printer *output.Printer, treeWalker *walker.Walker) {
	var explicitTargets []target
	currentDirectoryRequested := false
	for _, parsedTarget := range parsedTargets {
		if parsedTarget.name == currentDirectoryToken {
			currentDirectoryRequested = true
			continue
		}
		explicitTargets = append(explicitTargets, parsedTarget)
	}

	rootFrame := func(rootPath string, prioritizedNames map[string]struct{}) types.WalkContext {
		frame := types.WalkContext{
			Path:             rootPath,
			Indent:           utils.EmptyString,
			PrioritizedNames: prioritizedNames,
			StructureOnly:    invocation.structureOnly,
		}
		if invocation.defaultDepthSet && invocation.defaultDepth >= 0 {
			depthValue := invocation.defaultDepth
			frame.MaxDepth = &depthValue
		}
		return frame
	}

	switch {
	case len(explicitTargets) == 0:
		printer.Header(currentDirectoryHeader)
		treeWalker.Walk(rootFrame(workingDirectory, nil))
	case currentDirectoryRequested:
		prioritizedNames := make(map[string]struct{}, len(explicitTargets))
		for _, explicitTarget := range explicitTargets {
			prioritizedNames[filepath.Base(explicitTarget.name)] = struct{}{}
		}
		printer.Header(currentDirectoryHeader)
		treeWalker.Walk(rootFrame(workingDirectory, prioritizedNames))
	default:
		for _, explicitTarget := range explicitTargets {
			targetPath := explicitTarget.name
			if !filepath.IsAbs(targetPath) {
				targetPath = filepath.Join(workingDirectory, targetPath)
			}
			targetInformation, statError := os.Stat(targetPath)
			if statError != nil {
				fmt.Fprintf(invocation.diagnosticOutput, errorTargetFormat, explicitTarget.name, statError)
				continue
			}
			if !targetInformation.IsDir() {
				fmt.Fprintf(invocation.diagnosticOutput, errorNotDirectoryFormat, explicitTarget.name)
				continue
			}
			printer.Header(filepath.Clean(explicitTarget.name))
			treeWalker.Walk(rootFrame(targetPath, nil))
		}
	}
}
