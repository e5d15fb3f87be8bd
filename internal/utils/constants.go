package utils

// ErrorLogFormat defines the formatting string for error log messages.
const ErrorLogFormat = "Error: %v"

const (
	// ApplicationName is the binary name used in messages and temp file prefixes.
	ApplicationName = "repoctx"
	// LocalConfigFileName is the per-project configuration file looked up in the working directory.
	LocalConfigFileName = ".scan-repo-config.toml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".repoctx"
	// GlobalConfigFileName is the global configuration file name.
	GlobalConfigFileName = "config.toml"
	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage is the message main logs with a fatal error field.
	ApplicationExecutionFailedMessage = "Fatal error"
)
