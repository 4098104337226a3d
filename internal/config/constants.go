package config

// Application constants for the battery archive converter.
const (
	AppName    = "battcli"
	AppVersion = "1.2.0"

	// ArchiveNamePrefix and ArchiveExt define the fixed source naming
	// convention: battery index 5 maps to B0005.mat.
	ArchiveNamePrefix = "B00"
	ArchiveExt        = ".mat"

	// DefaultConfigFileName is looked up next to the executable.
	DefaultConfigFileName = "config.yaml"

	// EnvPrefix is the environment variable prefix for envconfig.
	EnvPrefix = "BATT"
)
