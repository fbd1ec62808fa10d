// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/alchemist/internal/commands"
	"github.com/temirov/alchemist/internal/config"
	"github.com/temirov/alchemist/internal/console"
	"github.com/temirov/alchemist/internal/services/assistant"
	"github.com/temirov/alchemist/internal/services/clipboard"
	"github.com/temirov/alchemist/internal/tokenizer"
	"github.com/temirov/alchemist/internal/utils"
)

const (
	configFlagName   = "config"
	toolFlagName     = "tool"
	timeoutFlagName  = "timeout"
	noColorFlagName  = "no-color"
	tokensFlagName   = "tokens"
	modelFlagName    = "model"
	versionFlagName  = "version"
	copyFlagName     = "copy"
	outputFlagName   = "output"
	outputShorthand  = "o"
	formatFlagName   = "format"
	exclusionFlag    = "e"
	gitignoreFlag    = "gitignore"
	ignoreFileFlag   = "ignore-file"
	excludeGitFlag   = "exclude-git"
	versionTemplate  = "alchemist version: %s\n"
	rootUse          = "alchemist"
	rootShortMessage = "AI-assisted code analysis, documentation and scaffolding"

	rootLongDescription = `Code Alchemist
Transmuting chaos into code gold...

alchemist sends source files to an AI chat tool (Amazon Q Developer CLI by
default) and turns its replies into analysis reports, documentation,
refactoring and optimization suggestions, project dashboards and new project
scaffolds.`

	configFlagDescription     = "configuration file to use instead of ./" + utils.ConfigFileName
	toolFlagDescription       = "assistant executable"
	timeoutFlagDescription    = "assistant timeout in seconds"
	noColorFlagDescription    = "disable colored status output"
	tokensFlagDescription     = "log the token count of every prompt"
	modelFlagDescription      = "tokenizer model used for token counting"
	versionFlagDescription    = "display application version"
	copyFlagDescription       = "copy the rendered output to the clipboard"
	exclusionFlagDescription  = "exclude path pattern"
	gitignoreFlagDescription  = "honor .gitignore files"
	ignoreFileFlagDescription = "honor .ignore files"
	excludeGitFlagDescription = "exclude the .git directory"

	defaultToolName       = "Amazon Q Developer CLI"
	warningToolMissing    = "Warning: %s not found. Some features may not work properly."
	warningInstallHint    = "Install from: https://docs.aws.amazon.com/amazonq/latest/qdeveloper-ug/setup-qdeveloper.html"
	messageToolFound      = "Found %s: %s"
	warningTokenizerSetup = "Warning: token counting disabled: %v"
	errorLoadConfig       = "load configuration: %w"
)

// versionReporter is implemented by runners that can identify the installed tool.
type versionReporter interface {
	Version(ctx context.Context) (string, error)
}

// environment carries the process-level collaborators of every command.
type environment struct {
	logger           *zap.Logger
	stdout           io.Writer
	stderr           io.Writer
	workingDirectory string
	newRunner        func(configuration assistant.Configuration) assistant.Runner
	copier           clipboard.Copier
}

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath     string
	tool           string
	timeoutSeconds int
	noColor        bool
	tokens         bool
	model          string
}

// Execute runs the alchemist application.
func Execute(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCommand := createRootCommand(environment{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
		newRunner: func(configuration assistant.Configuration) assistant.Runner {
			return assistant.NewExecRunner(configuration)
		},
		copier: clipboard.NewSystemCopier(),
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(env environment) *cobra.Command {
	if env.logger == nil {
		env.logger = zap.NewNop()
	}
	var showVersion bool
	options := &globalOptions{}

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortMessage,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, _ = fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			return command.Help()
		},
	}
	rootCommand.SetOut(env.stdout)
	rootCommand.SetErr(env.stderr)

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	persistentFlags.StringVar(&options.tool, toolFlagName, assistant.DefaultExecutable, toolFlagDescription)
	persistentFlags.IntVar(&options.timeoutSeconds, timeoutFlagName, int(assistant.DefaultTimeout.Seconds()), timeoutFlagDescription)
	registerBooleanFlag(persistentFlags, &options.noColor, noColorFlagName, false, noColorFlagDescription)
	registerBooleanFlag(persistentFlags, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	persistentFlags.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	app := &application{env: env, options: options}
	rootCommand.AddCommand(
		createAnalyzeCommand(app),
		createDocumentCommand(app),
		createRefactorCommand(app),
		createOptimizeCommand(app),
		createDashboardCommand(app),
		createSetupCommand(app),
		createTransmuteCommand(app),
		createConfigCommand(app),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// application resolves configuration and builds the orchestrator for one run.
type application struct {
	env     environment
	options *globalOptions
}

// configuration loads the configuration files and applies the persistent
// flags that were set explicitly.
func (app *application) configuration(command *cobra.Command) (config.ApplicationConfiguration, error) {
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: app.env.workingDirectory,
		ExplicitFilePath: app.options.configPath,
	})
	if loadError != nil {
		return config.ApplicationConfiguration{}, fmt.Errorf(errorLoadConfig, loadError)
	}
	return loaded.Merge(app.flagOverrides(command)).Effective(), nil
}

func (app *application) flagOverrides(command *cobra.Command) config.ApplicationConfiguration {
	var overrides config.ApplicationConfiguration
	flagSet := command.Flags()
	if flagSet.Changed(toolFlagName) {
		overrides.Assistant.Executable = app.options.tool
	}
	if flagSet.Changed(timeoutFlagName) {
		timeoutSeconds := app.options.timeoutSeconds
		overrides.Assistant.TimeoutSeconds = &timeoutSeconds
	}
	if flagSet.Changed(noColorFlagName) {
		colorEnabled := !app.options.noColor
		overrides.Console.Color = &colorEnabled
	}
	if flagSet.Changed(tokensFlagName) {
		tokensEnabled := app.options.tokens
		overrides.Tokens.Enabled = &tokensEnabled
	}
	if flagSet.Changed(modelFlagName) {
		overrides.Tokens.Model = app.options.model
	}
	return overrides
}

// orchestrator wires the console, the assistant client and the optional token
// counter for a command run with the effective configuration.
func (app *application) orchestrator(command *cobra.Command, settings config.ApplicationConfiguration, paths config.PathConfiguration) *commands.Orchestrator {
	outputConsole := console.New(app.env.stdout, app.env.stderr, console.Options{NoColor: !settings.ColorEnabled()})
	assistantSettings := settings.AssistantSettings()
	runner := app.env.newRunner(assistantSettings)
	app.checkDependency(command.Context(), outputConsole, runner, assistantSettings.Executable)

	var tokenCounter tokenizer.Counter
	if settings.TokensEnabled() {
		counter, counterError := tokenizer.NewCounter(settings.Tokens.Model)
		if counterError != nil {
			app.env.logger.Warn(fmt.Sprintf(warningTokenizerSetup, counterError))
		} else {
			tokenCounter = counter
		}
	}

	return commands.NewOrchestrator(commands.Dependencies{
		Assistant:    assistant.NewClient(runner, app.env.logger, outputConsole),
		Console:      outputConsole,
		Logger:       app.env.logger,
		Copier:       app.env.copier,
		TokenCounter: tokenCounter,
		Paths:        paths,
	})
}

// checkDependency warns when the assistant executable cannot be run.
func (app *application) checkDependency(ctx context.Context, outputConsole *console.Console, runner assistant.Runner, executable string) {
	reporter, canReport := runner.(versionReporter)
	if !canReport {
		return
	}
	toolName := executable
	if executable == assistant.DefaultExecutable {
		toolName = defaultToolName
	}
	version, versionError := reporter.Version(ctx)
	if versionError != nil {
		outputConsole.Warning(fmt.Sprintf(warningToolMissing, toolName))
		if executable == assistant.DefaultExecutable {
			outputConsole.Warning(warningInstallHint)
		}
		app.env.logger.Debug(versionError.Error())
		return
	}
	app.env.logger.Debug(fmt.Sprintf(messageToolFound, toolName, version))
}
