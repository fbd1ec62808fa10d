package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/alchemist/internal/commands"
	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

const (
	analyzeUse   = "analyze <path>"
	documentUse  = "document <path>"
	refactorUse  = "refactor <path>"
	optimizeUse  = "optimize <path>"
	dashboardUse = "dashboard <path>"
	setupUse     = "setup <path>"
	transmuteUse = "transmute <path>"

	analyzeShortDescription   = "analyze code quality and structure"
	documentShortDescription  = "generate documentation for a file"
	refactorShortDescription  = "suggest refactorings for a file"
	optimizeShortDescription  = "suggest security and performance optimizations for a file"
	dashboardShortDescription = "generate a project dashboard"
	setupShortDescription     = "scaffold a new project"
	transmuteShortDescription = "run every transformation at once"

	// analyzeLongDescription provides detailed help for the analyze command.
	analyzeLongDescription = `Analyze a file or a directory. A file is sent in full; a directory is
described by its first 50 files. Use --format to select text, json, or markdown
output and --output to write it to a file instead of stdout.`
	// analyzeUsageExample demonstrates analyze command usage.
	analyzeUsageExample = `  # Analyze a single file as Markdown
  alchemist analyze --format markdown -o report.md main.py

  # Analyze a project, skipping vendored code
  alchemist analyze -e vendor/ .`

	// documentLongDescription provides detailed help for the document command.
	documentLongDescription = `Generate documentation for a single file. The result is written to
<output>/<file>.md, or <output>/<file>.html with --format html.`
	// documentUsageExample demonstrates document command usage.
	documentUsageExample = `  # Write docs/app.py.html
  alchemist document --format html app.py`

	// setupLongDescription provides detailed help for the setup command.
	setupLongDescription = `Ask the assistant for the files of a new project and write them into the
target directory. Files outside the directory are never written. Use --dry-run
to list the changes without touching the disk.`
	// setupUsageExample demonstrates setup command usage.
	setupUsageExample = `  # Preview a Python project scaffold
  alchemist setup --type python --name demo --dry-run ./demo`

	// transmuteLongDescription provides detailed help for the transmute command.
	transmuteLongDescription = `Run every transformation against one target. A file gets an analysis,
documentation, refactoring and optimization suggestions, and a dashboard of its
directory; a directory gets a dashboard.`

	analyzeOutputDescription    = "output file for analysis results (default: stdout)"
	analyzeFormatDescription    = "output format: text, json, or markdown"
	documentOutputDescription   = "output directory for documentation"
	documentFormatDescription   = "documentation format: markdown or html"
	suggestionOutputDescription = "output file for suggestions (default: stdout)"
	applyFlagName               = "apply"
	applyFlagDescription        = "apply suggested refactorings"
	securityFlagName            = "security"
	securityFlagDescription     = "focus on security optimizations"
	performanceFlagName         = "performance"
	performanceFlagDescription  = "focus on performance optimizations"
	dashboardOutputDescription  = "output file for the dashboard"
	typeFlagName                = "type"
	typeFlagDescription         = "project type: python, node, java, or general"
	nameFlagName                = "name"
	nameFlagDescription         = "project name (default: target directory name)"
	dryRunFlagName              = "dry-run"
	dryRunFlagDescription       = "list the files that would be written"
	outputDirFlagName           = "output-dir"
	outputDirFlagDescription    = "output directory for every result"
)

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	useGitignore      bool
	useIgnoreFile     bool
	excludeGit        bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlag, exclusionFlag, nil, exclusionFlagDescription)
	registerBooleanFlag(command.Flags(), &options.useGitignore, gitignoreFlag, false, gitignoreFlagDescription)
	registerBooleanFlag(command.Flags(), &options.useIgnoreFile, ignoreFileFlag, false, ignoreFileFlagDescription)
	registerBooleanFlag(command.Flags(), &options.excludeGit, excludeGitFlag, false, excludeGitFlagDescription)
}

// resolve overlays explicitly set path flags on the configured path section.
// Exclusion patterns from flags extend the configured ones.
func (options *pathOptions) resolve(command *cobra.Command, configured config.PathConfiguration) config.PathConfiguration {
	resolved := configured
	if len(options.exclusionPatterns) > 0 {
		combined := append(append([]string{}, configured.Exclude...), options.exclusionPatterns...)
		resolved.Exclude = utils.DeduplicatePatterns(combined)
	}
	if command.Flags().Changed(gitignoreFlag) {
		useGitignore := options.useGitignore
		resolved.UseGitignore = &useGitignore
	}
	if command.Flags().Changed(ignoreFileFlag) {
		useIgnoreFile := options.useIgnoreFile
		resolved.UseIgnoreFile = &useIgnoreFile
	}
	if command.Flags().Changed(excludeGitFlag) {
		excludeGit := options.excludeGit
		resolved.ExcludeGit = &excludeGit
	}
	return resolved
}

// run executes one orchestrator request with the effective configuration.
func (app *application) run(command *cobra.Command, settings config.ApplicationConfiguration, paths config.PathConfiguration, request commands.Request) error {
	return app.orchestrator(command, settings, paths).Execute(command.Context(), request)
}

// createAnalyzeCommand returns the analyze subcommand.
func createAnalyzeCommand(app *application) *cobra.Command {
	var analyzeOptions types.AnalyzeOptions
	var pathConfiguration pathOptions

	analyzeCommand := &cobra.Command{
		Use:     analyzeUse,
		Short:   analyzeShortDescription,
		Long:    analyzeLongDescription,
		Example: analyzeUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(formatFlagName) {
				analyzeOptions.Format = settings.Analyze.Format
			}
			if !command.Flags().Changed(copyFlagName) {
				analyzeOptions.Copy = *settings.Analyze.Copy
			}
			analyzeOptions.Format = strings.ToLower(analyzeOptions.Format)
			analyzeOptions.Path = arguments[0]
			return app.run(command, settings, pathConfiguration.resolve(command, settings.Paths), commands.Request{
				Command: types.CommandAnalyze,
				Analyze: analyzeOptions,
			})
		},
	}

	analyzeCommand.Flags().StringVarP(&analyzeOptions.Output, outputFlagName, outputShorthand, "", analyzeOutputDescription)
	analyzeCommand.Flags().StringVar(&analyzeOptions.Format, formatFlagName, config.DefaultAnalyzeFormat, analyzeFormatDescription)
	registerCopyFlag(analyzeCommand.Flags(), &analyzeOptions.Copy)
	addPathFlags(analyzeCommand, &pathConfiguration)
	return analyzeCommand
}

// createDocumentCommand returns the document subcommand.
func createDocumentCommand(app *application) *cobra.Command {
	var documentOptions types.DocumentOptions

	documentCommand := &cobra.Command{
		Use:     documentUse,
		Short:   documentShortDescription,
		Long:    documentLongDescription,
		Example: documentUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(formatFlagName) {
				documentOptions.Format = settings.Document.Format
			}
			if !command.Flags().Changed(outputFlagName) {
				documentOptions.OutputDir = settings.Document.Output
			}
			documentOptions.Format = strings.ToLower(documentOptions.Format)
			documentOptions.Path = arguments[0]
			return app.run(command, settings, settings.Paths, commands.Request{
				Command:  types.CommandDocument,
				Document: documentOptions,
			})
		},
	}

	documentCommand.Flags().StringVarP(&documentOptions.OutputDir, outputFlagName, outputShorthand, config.DefaultDocumentOutput, documentOutputDescription)
	documentCommand.Flags().StringVar(&documentOptions.Format, formatFlagName, config.DefaultDocumentFormat, documentFormatDescription)
	return documentCommand
}

// createRefactorCommand returns the refactor subcommand.
func createRefactorCommand(app *application) *cobra.Command {
	var refactorOptions types.RefactorOptions

	refactorCommand := &cobra.Command{
		Use:   refactorUse,
		Short: refactorShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			refactorOptions.Path = arguments[0]
			return app.run(command, settings, settings.Paths, commands.Request{
				Command:  types.CommandRefactor,
				Refactor: refactorOptions,
			})
		},
	}

	refactorCommand.Flags().StringVarP(&refactorOptions.Output, outputFlagName, outputShorthand, "", suggestionOutputDescription)
	registerBooleanFlag(refactorCommand.Flags(), &refactorOptions.Apply, applyFlagName, false, applyFlagDescription)
	registerCopyFlag(refactorCommand.Flags(), &refactorOptions.Copy)
	return refactorCommand
}

// createOptimizeCommand returns the optimize subcommand.
func createOptimizeCommand(app *application) *cobra.Command {
	var optimizeOptions types.OptimizeOptions

	optimizeCommand := &cobra.Command{
		Use:   optimizeUse,
		Short: optimizeShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			optimizeOptions.Path = arguments[0]
			return app.run(command, settings, settings.Paths, commands.Request{
				Command:  types.CommandOptimize,
				Optimize: optimizeOptions,
			})
		},
	}

	optimizeCommand.Flags().StringVarP(&optimizeOptions.Output, outputFlagName, outputShorthand, "", suggestionOutputDescription)
	registerBooleanFlag(optimizeCommand.Flags(), &optimizeOptions.Security, securityFlagName, false, securityFlagDescription)
	registerBooleanFlag(optimizeCommand.Flags(), &optimizeOptions.Performance, performanceFlagName, false, performanceFlagDescription)
	registerCopyFlag(optimizeCommand.Flags(), &optimizeOptions.Copy)
	return optimizeCommand
}

// createDashboardCommand returns the dashboard subcommand.
func createDashboardCommand(app *application) *cobra.Command {
	var dashboardOptions types.DashboardOptions
	var pathConfiguration pathOptions

	dashboardCommand := &cobra.Command{
		Use:   dashboardUse,
		Short: dashboardShortDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(outputFlagName) {
				dashboardOptions.Output = settings.Dashboard.Output
			}
			dashboardOptions.Path = arguments[0]
			return app.run(command, settings, pathConfiguration.resolve(command, settings.Paths), commands.Request{
				Command:   types.CommandDashboard,
				Dashboard: dashboardOptions,
			})
		},
	}

	dashboardCommand.Flags().StringVarP(&dashboardOptions.Output, outputFlagName, outputShorthand, config.DefaultDashboardOutput, dashboardOutputDescription)
	addPathFlags(dashboardCommand, &pathConfiguration)
	return dashboardCommand
}

// createSetupCommand returns the setup subcommand.
func createSetupCommand(app *application) *cobra.Command {
	var setupOptions types.SetupOptions

	setupCommand := &cobra.Command{
		Use:     setupUse,
		Short:   setupShortDescription,
		Long:    setupLongDescription,
		Example: setupUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			setupOptions.ProjectType = strings.ToLower(setupOptions.ProjectType)
			setupOptions.Path = arguments[0]
			return app.run(command, settings, settings.Paths, commands.Request{
				Command: types.CommandSetup,
				Setup:   setupOptions,
			})
		},
	}

	setupCommand.Flags().StringVar(&setupOptions.ProjectType, typeFlagName, types.ProjectTypeGeneral, typeFlagDescription)
	setupCommand.Flags().StringVar(&setupOptions.Name, nameFlagName, "", nameFlagDescription)
	registerBooleanFlag(setupCommand.Flags(), &setupOptions.DryRun, dryRunFlagName, false, dryRunFlagDescription)
	return setupCommand
}

// createTransmuteCommand returns the transmute subcommand.
func createTransmuteCommand(app *application) *cobra.Command {
	var transmuteOptions types.TransmuteOptions
	var pathConfiguration pathOptions

	transmuteCommand := &cobra.Command{
		Use:   transmuteUse,
		Short: transmuteShortDescription,
		Long:  transmuteLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(outputDirFlagName) {
				transmuteOptions.OutputDir = settings.Transmute.OutputDir
			}
			transmuteOptions.Path = arguments[0]
			return app.run(command, settings, pathConfiguration.resolve(command, settings.Paths), commands.Request{
				Command:   types.CommandTransmute,
				Transmute: transmuteOptions,
			})
		},
	}

	transmuteCommand.Flags().StringVar(&transmuteOptions.OutputDir, outputDirFlagName, config.DefaultTransmuteOutput, outputDirFlagDescription)
	addPathFlags(transmuteCommand, &pathConfiguration)
	return transmuteCommand
}
