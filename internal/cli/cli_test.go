package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/alchemist/internal/commands"
	"github.com/temirov/alchemist/internal/services/assistant"
	"github.com/temirov/alchemist/internal/types"
	"github.com/temirov/alchemist/internal/utils"
)

const (
	testSourceName    = "main.py"
	testSourceContent = "print('hello')\n"
	testReply         = "Looks fine."
)

type stubRunner struct {
	prompts []string
}

func (runner *stubRunner) Run(_ context.Context, prompt string) (string, error) {
	runner.prompts = append(runner.prompts, prompt)
	return testReply, nil
}

type unavailableRunner struct {
	stubRunner
}

func (runner *unavailableRunner) Version(context.Context) (string, error) {
	return "", errors.New("executable file not found")
}

type countingCopier struct {
	copies int
}

func (copier *countingCopier) Copy(string) error {
	copier.copies++
	return nil
}

type cliHarness struct {
	env              environment
	stdout           *bytes.Buffer
	stderr           *bytes.Buffer
	runner           *stubRunner
	copier           *countingCopier
	configurations   []assistant.Configuration
	workingDirectory string
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	harness := &cliHarness{
		stdout:           &bytes.Buffer{},
		stderr:           &bytes.Buffer{},
		runner:           &stubRunner{},
		copier:           &countingCopier{},
		workingDirectory: t.TempDir(),
	}
	harness.env = environment{
		stdout:           harness.stdout,
		stderr:           harness.stderr,
		workingDirectory: harness.workingDirectory,
		newRunner: func(configuration assistant.Configuration) assistant.Runner {
			harness.configurations = append(harness.configurations, configuration)
			return harness.runner
		},
		copier: harness.copier,
	}
	return harness
}

func (harness *cliHarness) execute(arguments ...string) error {
	rootCommand := createRootCommand(harness.env)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return rootCommand.ExecuteContext(context.Background())
}

func writeTestSource(t *testing.T, directory string) string {
	t.Helper()
	sourcePath := filepath.Join(directory, testSourceName)
	if writeError := os.WriteFile(sourcePath, []byte(testSourceContent), 0o644); writeError != nil {
		t.Fatalf("write source: %v", writeError)
	}
	return sourcePath
}

func TestDocumentCommandWritesMarkdown(t *testing.T) {
	harness := newCLIHarness(t)
	sourcePath := writeTestSource(t, t.TempDir())
	outputDirectory := filepath.Join(t.TempDir(), "generated")

	if executeError := harness.execute("document", "-o", outputDirectory, "--tool", "custom-q", sourcePath); executeError != nil {
		t.Fatalf("document: %v", executeError)
	}
	written, readError := os.ReadFile(filepath.Join(outputDirectory, testSourceName+".md"))
	if readError != nil {
		t.Fatalf("read documentation: %v", readError)
	}
	expected := "# Documentation for " + testSourceName + "\n\n" + testReply
	if string(written) != expected {
		t.Fatalf("expected %q, got %q", expected, string(written))
	}
	if len(harness.configurations) != 1 || harness.configurations[0].Executable != "custom-q" {
		t.Fatalf("expected the --tool override to reach the runner, got %+v", harness.configurations)
	}
}

func TestAnalyzeCommandFormatResolution(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		verify    func(t *testing.T, written string)
	}{
		{
			name:      "configured_format",
			arguments: nil,
			verify: func(t *testing.T, written string) {
				var envelope types.AnalysisEnvelope
				if decodeError := json.Unmarshal([]byte(written), &envelope); decodeError != nil {
					t.Fatalf("expected JSON from configuration, got %q: %v", written, decodeError)
				}
				if envelope.Results != testReply {
					t.Fatalf("unexpected results %q", envelope.Results)
				}
			},
		},
		{
			name:      "flag_overrides_configuration",
			arguments: []string{"--format", "MARKDOWN"},
			verify: func(t *testing.T, written string) {
				if !strings.HasPrefix(written, "# Code Analysis Results\n") {
					t.Fatalf("expected Markdown, got %q", written)
				}
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			harness := newCLIHarness(t)
			configurationPath := filepath.Join(harness.workingDirectory, utils.ConfigFileName)
			if writeError := os.WriteFile(configurationPath, []byte("analyze:\n  format: json\n"), 0o600); writeError != nil {
				t.Fatalf("write configuration: %v", writeError)
			}
			sourcePath := writeTestSource(t, t.TempDir())
			outputPath := filepath.Join(t.TempDir(), "analysis.out")

			arguments := append([]string{"analyze", "-o", outputPath}, testCase.arguments...)
			arguments = append(arguments, sourcePath)
			if executeError := harness.execute(arguments...); executeError != nil {
				t.Fatalf("analyze: %v", executeError)
			}
			written, readError := os.ReadFile(outputPath)
			if readError != nil {
				t.Fatalf("read analysis: %v", readError)
			}
			testCase.verify(t, string(written))
		})
	}
}

func TestAnalyzeCopyFlag(t *testing.T) {
	testCases := []struct {
		name           string
		flagArguments  []string
		expectedCopies int
	}{
		{name: "bare_flag_before_path", flagArguments: []string{"--copy"}, expectedCopies: 1},
		{name: "explicit_no", flagArguments: []string{"--copy", "no"}, expectedCopies: 0},
		{name: "equals_form", flagArguments: []string{"--copy=yes"}, expectedCopies: 1},
		{name: "absent", flagArguments: nil, expectedCopies: 0},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			harness := newCLIHarness(t)
			sourcePath := writeTestSource(t, t.TempDir())
			arguments := append([]string{"analyze"}, testCase.flagArguments...)
			arguments = append(arguments, sourcePath)
			if executeError := harness.execute(arguments...); executeError != nil {
				t.Fatalf("analyze: %v", executeError)
			}
			if harness.copier.copies != testCase.expectedCopies {
				t.Fatalf("expected %d copies, got %d", testCase.expectedCopies, harness.copier.copies)
			}
			if !strings.Contains(harness.stdout.String(), "CODE ANALYSIS RESULTS FOR: "+sourcePath) {
				t.Fatalf("expected report on stdout, got %q", harness.stdout.String())
			}
		})
	}
}

func TestMissingPathIsReported(t *testing.T) {
	harness := newCLIHarness(t)
	missingPath := filepath.Join(t.TempDir(), "missing.py")
	executeError := harness.execute("refactor", missingPath)
	if !errors.Is(executeError, commands.ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", executeError)
	}
	if len(harness.runner.prompts) != 0 {
		t.Fatalf("assistant must not be queried")
	}
}

func TestMissingToolProducesWarning(t *testing.T) {
	harness := newCLIHarness(t)
	unavailable := &unavailableRunner{}
	harness.env.newRunner = func(assistant.Configuration) assistant.Runner {
		return unavailable
	}
	sourcePath := writeTestSource(t, t.TempDir())

	if executeError := harness.execute("refactor", sourcePath); executeError != nil {
		t.Fatalf("refactor: %v", executeError)
	}
	for _, fragment := range []string{"Warning: Amazon Q Developer CLI not found.", "Install from: "} {
		if !strings.Contains(harness.stderr.String(), fragment) {
			t.Fatalf("expected %q on stderr, got %q", fragment, harness.stderr.String())
		}
	}
	if len(unavailable.prompts) != 1 {
		t.Fatalf("the command must still run, got %d prompts", len(unavailable.prompts))
	}
}

func TestConfigShowPrintsEffectiveConfiguration(t *testing.T) {
	harness := newCLIHarness(t)
	if executeError := harness.execute("config", "show", "--tool", "custom-q", "--timeout", "12", "--no-color"); executeError != nil {
		t.Fatalf("config show: %v", executeError)
	}
	output := harness.stdout.String()
	for _, fragment := range []string{"executable: custom-q", "timeout_seconds: 12", "color: false", "output_dir: alchemist_output", "output: PROJECT_DASHBOARD.md"} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, output)
		}
	}
}

func TestConfigInitWritesLocalFile(t *testing.T) {
	harness := newCLIHarness(t)
	if executeError := harness.execute("config", "init"); executeError != nil {
		t.Fatalf("config init: %v", executeError)
	}
	configurationPath := filepath.Join(harness.workingDirectory, utils.ConfigFileName)
	if _, statError := os.Stat(configurationPath); statError != nil {
		t.Fatalf("expected %s: %v", configurationPath, statError)
	}
	if !strings.Contains(harness.stdout.String(), "Configuration written to "+configurationPath) {
		t.Fatalf("unexpected output %q", harness.stdout.String())
	}
	if executeError := harness.execute("config", "init"); executeError == nil {
		t.Fatalf("expected an error when the file exists and --force is absent")
	}
	if executeError := harness.execute("config", "init", "--force"); executeError != nil {
		t.Fatalf("config init --force: %v", executeError)
	}
}

func TestVersionFlag(t *testing.T) {
	harness := newCLIHarness(t)
	if executeError := harness.execute("--version"); executeError != nil {
		t.Fatalf("version: %v", executeError)
	}
	if !strings.HasPrefix(harness.stdout.String(), "alchemist version: ") {
		t.Fatalf("unexpected version output %q", harness.stdout.String())
	}
}

func TestSetupDryRunFlag(t *testing.T) {
	harness := newCLIHarness(t)
	projectDirectory := filepath.Join(t.TempDir(), "demo")
	if executeError := harness.execute("setup", "--type", "Python", "--dry-run", projectDirectory); executeError != nil {
		t.Fatalf("setup: %v", executeError)
	}
	if harness.runner.prompts[0] != "Setup python project 'demo' structure with config files" {
		t.Fatalf("unexpected prompt %q", harness.runner.prompts[0])
	}
	if _, statError := os.Stat(projectDirectory); !os.IsNotExist(statError) {
		t.Fatalf("dry run must not create %s", projectDirectory)
	}
}
