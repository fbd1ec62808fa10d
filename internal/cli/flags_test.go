package cli

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestRegisterBooleanFlagParsesLiterals(testingHandle *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expected    bool
		expectError bool
	}{
		{name: "bare", arguments: []string{"--dry-run"}, expected: true},
		{name: "yes", arguments: []string{"--dry-run=yes"}, expected: true},
		{name: "upper_on", arguments: []string{"--dry-run=ON"}, expected: true},
		{name: "zero", arguments: []string{"--dry-run=0"}, expected: false},
		{name: "off", arguments: []string{"--dry-run=off"}, expected: false},
		{name: "absent", arguments: nil, expected: false},
		{name: "invalid", arguments: []string{"--dry-run=maybe"}, expectError: true},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTestHandle *testing.T) {
			var target bool
			flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
			registerBooleanFlag(flagSet, &target, "dry-run", false, "")
			parseError := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				if parseError == nil {
					subTestHandle.Fatalf("expected a parse error")
				}
				return
			}
			if parseError != nil {
				subTestHandle.Fatalf("parse: %v", parseError)
			}
			if target != testCase.expected {
				subTestHandle.Fatalf("expected %v, got %v", testCase.expected, target)
			}
		})
	}
}

func TestRegisterBooleanFlagDefault(testingHandle *testing.T) {
	target := false
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerBooleanFlag(flagSet, &target, "exclude-git", true, "")
	if !target {
		testingHandle.Fatalf("expected the default to be applied")
	}
	registered := flagSet.Lookup("exclude-git")
	if registered.DefValue != "true" || registered.NoOptDefVal != "true" {
		testingHandle.Fatalf("unexpected flag defaults %q %q", registered.DefValue, registered.NoOptDefVal)
	}
}

func TestNormalizeBooleanFlagArguments(testingHandle *testing.T) {
	rootCommand := &cobra.Command{Use: "root"}
	var noColor, copyOutput bool
	var output string
	registerBooleanFlag(rootCommand.PersistentFlags(), &noColor, noColorFlagName, false, "")
	analyzeCommand := &cobra.Command{Use: "analyze"}
	registerCopyFlag(analyzeCommand.Flags(), &copyOutput)
	analyzeCommand.Flags().StringVarP(&output, outputFlagName, outputShorthand, "", "")
	rootCommand.AddCommand(analyzeCommand)

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "literal_joined",
			arguments: []string{"analyze", "--copy", "no", "main.py"},
			expected:  []string{"analyze", "--copy=no", "main.py"},
		},
		{
			name:      "path_kept_positional",
			arguments: []string{"analyze", "--copy", "main.py"},
			expected:  []string{"analyze", "--copy", "main.py"},
		},
		{
			name:      "persistent_flag",
			arguments: []string{"--no-color", "true", "analyze", "main.py"},
			expected:  []string{"--no-color=true", "analyze", "main.py"},
		},
		{
			name:      "string_flag_untouched",
			arguments: []string{"analyze", "--output", "yes", "main.py"},
			expected:  []string{"analyze", "--output", "yes", "main.py"},
		},
		{
			name:      "after_terminator",
			arguments: []string{"analyze", "--", "--copy", "yes"},
			expected:  []string{"analyze", "--", "--copy", "yes"},
		},
		{
			name:      "followed_by_flag",
			arguments: []string{"analyze", "--copy", "-o", "out.txt", "main.py"},
			expected:  []string{"analyze", "--copy", "-o", "out.txt", "main.py"},
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTestHandle *testing.T) {
			normalized := normalizeBooleanFlagArguments(rootCommand, testCase.arguments)
			if !reflect.DeepEqual(normalized, testCase.expected) {
				subTestHandle.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}
