package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleFlagType         = "bool"
	toggleImpliedLiteral   = "true"
	toggleAcceptedLiterals = "true, false, yes, no, on, off, 1, 0"
	errorToggleValue       = "invalid boolean value %q for --%s; accepted values: %s"
	flagTerminator         = "--"
)

// toggleLiterals lists every spelling accepted by boolean flags.
var toggleLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

func parseToggleLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = toggleImpliedLiteral
	}
	parsed, known := toggleLiterals[normalized]
	return parsed, known
}

// toggleValue is a pflag.Value accepting the spellings in toggleLiterals.
type toggleValue struct {
	target *bool
	name   string
}

func (value *toggleValue) Set(input string) error {
	parsed, known := parseToggleLiteral(input)
	if !known || value.target == nil {
		return fmt.Errorf(errorToggleValue, input, value.name, toggleAcceptedLiterals)
	}
	*value.target = parsed
	return nil
}

func (value *toggleValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return toggleFlagType
}

// registerBooleanFlag adds a flag that is true when given bare and otherwise
// accepts any literal from toggleLiterals.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&toggleValue{target: target, name: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(defaultValue)
		registered.NoOptDefVal = toggleImpliedLiteral
	}
}

// registerCopyFlag adds --copy, which sends the rendered output to the clipboard.
func registerCopyFlag(flagSet *pflag.FlagSet, target *bool) {
	registerBooleanFlag(flagSet, target, copyFlagName, false, copyFlagDescription)
}

// normalizeBooleanFlagArguments joins "--flag literal" pairs into
// "--flag=literal" for every boolean flag known to the command tree. A value
// that is not a boolean literal stays a separate argument, so
// "analyze --copy main.py" keeps main.py as the path.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	toggleNames := map[string]struct{}{}
	collectBooleanFlagNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == flagTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(current, flagTerminator) && !strings.Contains(current, "=") && index+1 < len(arguments) {
			name := strings.TrimPrefix(current, flagTerminator)
			next := arguments[index+1]
			if _, isToggle := toggleNames[name]; isToggle && !strings.HasPrefix(next, "-") {
				if _, known := parseToggleLiteral(next); known && strings.TrimSpace(next) != "" {
					normalized = append(normalized, current+"="+next)
					index++
					continue
				}
			}
		}
		normalized = append(normalized, current)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flagSet *pflag.FlagSet) {
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag.Value != nil && flag.Value.Type() == toggleFlagType {
				target[flag.Name] = struct{}{}
			}
		})
	}
	collect(command.PersistentFlags())
	collect(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
