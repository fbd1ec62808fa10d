package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/temirov/alchemist/internal/config"
)

const (
	configUse                  = "config"
	configShortDescription     = "manage alchemist configuration"
	configInitUse              = "init"
	configInitShortDescription = "write the default configuration file"
	configShowUse              = "show"
	configShowShortDescription = "print the effective configuration as YAML"
	globalFlagName             = "global"
	globalFlagDescription      = "write ~/.alchemist/config.yaml instead of ./.alchemist.yaml"
	forceFlagName              = "force"
	forceFlagDescription       = "overwrite an existing configuration file"
	configWrittenFormat        = "Configuration written to %s\n"
	errorEncodeConfiguration   = "encode configuration: %w"
)

// createConfigCommand returns the config subcommand with init and show.
func createConfigCommand(app *application) *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	configCommand.AddCommand(createConfigInitCommand(app), createConfigShowCommand(app))
	return configCommand
}

func createConfigInitCommand(app *application) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: app.env.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, _ = fmt.Fprintf(command.OutOrStdout(), configWrittenFormat, writtenPath)
			return nil
		},
	}

	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

func createConfigShowCommand(app *application) *cobra.Command {
	return &cobra.Command{
		Use:   configShowUse,
		Short: configShowShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			settings, configurationError := app.configuration(command)
			if configurationError != nil {
				return configurationError
			}
			encoded, encodeError := yaml.Marshal(settings)
			if encodeError != nil {
				return fmt.Errorf(errorEncodeConfiguration, encodeError)
			}
			_, writeError := command.OutOrStdout().Write(encoded)
			return writeError
		},
	}
}
