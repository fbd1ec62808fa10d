package utils

const (
	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".alchemist.yaml"
	// GlobalConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".alchemist"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal log line emitted by main.
	ApplicationExecutionFailedMessage = "application execution failed"
)
