// Package types defines every cross‑package data structure used by the alchemist CLI.
package types

import "fmt"

// Command enumerates the user-facing operations.
type Command string

const (
	CommandAnalyze   Command = "analyze"
	CommandDocument  Command = "document"
	CommandRefactor  Command = "refactor"
	CommandOptimize  Command = "optimize"
	CommandDashboard Command = "dashboard"
	CommandSetup     Command = "setup"
	CommandTransmute Command = "transmute"
)

// AllCommands lists commands in the order they appear in help output.
var AllCommands = []Command{
	CommandAnalyze,
	CommandDocument,
	CommandRefactor,
	CommandOptimize,
	CommandDashboard,
	CommandSetup,
	CommandTransmute,
}

// ParseCommand converts a command name into a Command.
func ParseCommand(name string) (Command, error) {
	for _, command := range AllCommands {
		if string(command) == name {
			return command, nil
		}
	}
	return "", fmt.Errorf("unknown command %q", name)
}

const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"

	ProjectTypePython  = "python"
	ProjectTypeNode    = "node"
	ProjectTypeJava    = "java"
	ProjectTypeGeneral = "general"

	FocusSecurity    = "security"
	FocusPerformance = "performance"
)

// ValidatedPath is an absolute input path that already passed existence checks.
type ValidatedPath struct {
	InputPath    string
	AbsolutePath string
	IsDir        bool
}

// AnalysisEnvelope is the JSON document written by analyze --format json.
type AnalysisEnvelope struct {
	Path         string `json:"path"`
	AnalysisDate string `json:"analysis_date"`
	Results      string `json:"results"`
}

// AnalyzeOptions configures the analyze command.
type AnalyzeOptions struct {
	Path   string
	Output string
	Format string
	Copy   bool
}

// DocumentOptions configures the document command.
type DocumentOptions struct {
	Path      string
	OutputDir string
	Format    string
}

// RefactorOptions configures the refactor command.
type RefactorOptions struct {
	Path   string
	Output string
	Apply  bool
	Copy   bool
}

// OptimizeOptions configures the optimize command.
type OptimizeOptions struct {
	Path        string
	Output      string
	Security    bool
	Performance bool
	Copy        bool
}

// DashboardOptions configures the dashboard command.
type DashboardOptions struct {
	Path   string
	Output string
}

// SetupOptions configures the setup command.
type SetupOptions struct {
	Path        string
	ProjectType string
	Name        string
	DryRun      bool
}

// TransmuteOptions configures the transmute command.
type TransmuteOptions struct {
	Path      string
	OutputDir string
}
