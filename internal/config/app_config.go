package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/temirov/alchemist/internal/services/assistant"
	"github.com/temirov/alchemist/internal/tokenizer"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

// Defaults applied when neither configuration files nor flags provide a value.
const (
	DefaultAnalyzeFormat   = types.FormatText
	DefaultDocumentFormat  = types.FormatMarkdown
	DefaultDocumentOutput  = "docs"
	DefaultDashboardOutput = "PROJECT_DASHBOARD.md"
	DefaultTransmuteOutput = "alchemist_output"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds every configurable default. Unset values are
// empty strings or nil pointers so that a local file overrides a global file
// field by field.
type ApplicationConfiguration struct {
	Assistant AssistantConfiguration `mapstructure:"assistant" yaml:"assistant"`
	Console   ConsoleConfiguration   `mapstructure:"console" yaml:"console"`
	Tokens    TokenConfiguration     `mapstructure:"tokens" yaml:"tokens"`
	Paths     PathConfiguration      `mapstructure:"paths" yaml:"paths"`
	Analyze   AnalyzeConfiguration   `mapstructure:"analyze" yaml:"analyze"`
	Document  DocumentConfiguration  `mapstructure:"document" yaml:"document"`
	Dashboard DashboardConfiguration `mapstructure:"dashboard" yaml:"dashboard"`
	Transmute TransmuteConfiguration `mapstructure:"transmute" yaml:"transmute"`
}

// AssistantConfiguration describes the external chat tool.
type AssistantConfiguration struct {
	Executable     string   `mapstructure:"executable" yaml:"executable,omitempty"`
	Arguments      []string `mapstructure:"arguments" yaml:"arguments,omitempty"`
	TimeoutSeconds *int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"`
}

// ConsoleConfiguration controls status line styling.
type ConsoleConfiguration struct {
	Color *bool `mapstructure:"color" yaml:"color,omitempty"`
}

// TokenConfiguration controls prompt token reporting.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Model   string `mapstructure:"model" yaml:"model,omitempty"`
}

// PathConfiguration configures exclusion rules for directory walks.
type PathConfiguration struct {
	Exclude       []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
	UseGitignore  *bool    `mapstructure:"use_gitignore" yaml:"use_gitignore,omitempty"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore" yaml:"use_ignore,omitempty"`
	ExcludeGit    *bool    `mapstructure:"exclude_git" yaml:"exclude_git,omitempty"`
}

// AnalyzeConfiguration defines defaults for the analyze command.
type AnalyzeConfiguration struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"`
	Copy   *bool  `mapstructure:"copy" yaml:"copy,omitempty"`
}

// DocumentConfiguration defines defaults for the document command.
type DocumentConfiguration struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"`
	Output string `mapstructure:"output" yaml:"output,omitempty"`
}

// DashboardConfiguration defines defaults for the dashboard command.
type DashboardConfiguration struct {
	Output string `mapstructure:"output" yaml:"output,omitempty"`
}

// TransmuteConfiguration defines defaults for the transmute command.
type TransmuteConfiguration struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir,omitempty"`
}

// LoadApplicationConfiguration loads configuration from the global file and
// then the local (or explicitly named) file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath, err := GlobalConfigurationPath(); err == nil {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)
	merged.Paths.Exclude = utils.DeduplicatePatterns(merged.Paths.Exclude)

	return merged, nil
}

// GlobalConfigurationPath returns ~/.alchemist/config.yaml.
func GlobalConfigurationPath() (string, error) {
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for configuration: %w", err)
	}
	if homeDirectory == "" {
		return "", fmt.Errorf("resolve home directory for configuration: empty home directory")
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Assistant = result.Assistant.merge(override.Assistant)
	if override.Console.Color != nil {
		result.Console.Color = cloneBool(override.Console.Color)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Paths = result.Paths.merge(override.Paths)
	if override.Analyze.Format != "" {
		result.Analyze.Format = override.Analyze.Format
	}
	if override.Analyze.Copy != nil {
		result.Analyze.Copy = cloneBool(override.Analyze.Copy)
	}
	if override.Document.Format != "" {
		result.Document.Format = override.Document.Format
	}
	if override.Document.Output != "" {
		result.Document.Output = override.Document.Output
	}
	if override.Dashboard.Output != "" {
		result.Dashboard.Output = override.Dashboard.Output
	}
	if override.Transmute.OutputDir != "" {
		result.Transmute.OutputDir = override.Transmute.OutputDir
	}
	return result
}

func (config AssistantConfiguration) merge(override AssistantConfiguration) AssistantConfiguration {
	result := config
	if override.Executable != "" {
		result.Executable = override.Executable
	}
	if len(override.Arguments) > 0 {
		result.Arguments = append([]string{}, override.Arguments...)
	}
	if override.TimeoutSeconds != nil {
		result.TimeoutSeconds = cloneInt(override.TimeoutSeconds)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.ExcludeGit != nil {
		result.ExcludeGit = cloneBool(override.ExcludeGit)
	}
	return result
}

// Effective returns a copy with every unset value replaced by its default.
func (config ApplicationConfiguration) Effective() ApplicationConfiguration {
	defaultAssistant := assistant.DefaultConfiguration()
	defaultTimeoutSeconds := int(defaultAssistant.Timeout / time.Second)
	defaults := ApplicationConfiguration{
		Assistant: AssistantConfiguration{
			Executable:     defaultAssistant.Executable,
			Arguments:      defaultAssistant.Arguments,
			TimeoutSeconds: &defaultTimeoutSeconds,
		},
		Console: ConsoleConfiguration{Color: boolPointer(true)},
		Tokens:  TokenConfiguration{Enabled: boolPointer(false), Model: tokenizer.DefaultModel},
		Paths: PathConfiguration{
			Exclude:       []string{},
			UseGitignore:  boolPointer(false),
			UseIgnoreFile: boolPointer(false),
			ExcludeGit:    boolPointer(false),
		},
		Analyze:   AnalyzeConfiguration{Format: DefaultAnalyzeFormat, Copy: boolPointer(false)},
		Document:  DocumentConfiguration{Format: DefaultDocumentFormat, Output: DefaultDocumentOutput},
		Dashboard: DashboardConfiguration{Output: DefaultDashboardOutput},
		Transmute: TransmuteConfiguration{OutputDir: DefaultTransmuteOutput},
	}
	return defaults.Merge(config)
}

// AssistantSettings converts the assistant section into invoker configuration.
func (config ApplicationConfiguration) AssistantSettings() assistant.Configuration {
	effective := config.Effective()
	return assistant.Configuration{
		Executable: effective.Assistant.Executable,
		Arguments:  append([]string{}, effective.Assistant.Arguments...),
		Timeout:    time.Duration(*effective.Assistant.TimeoutSeconds) * time.Second,
	}
}

// ColorEnabled reports whether console styling is on.
func (config ApplicationConfiguration) ColorEnabled() bool {
	return *config.Effective().Console.Color
}

// TokensEnabled reports whether prompt token counts are logged.
func (config ApplicationConfiguration) TokensEnabled() bool {
	return *config.Effective().Tokens.Enabled
}

func boolPointer(value bool) *bool {
	return &value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
