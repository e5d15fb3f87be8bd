// Package config loads repoctx defaults from global and project configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	Logger           *zap.Logger
}

// ApplicationConfiguration holds defaults applied to CLI options the user left unset.
// Nil pointers and empty values mean the key was absent.
type ApplicationConfiguration struct {
	Output        string   `mapstructure:"output"`
	Recent        *bool    `mapstructure:"recent"`
	RecentDays    *int     `mapstructure:"recent_days"`
	Verbose       *bool    `mapstructure:"verbose"`
	Paths         []string `mapstructure:"paths"`
	MaxFileSize   *int     `mapstructure:"max_file_size"`
	StripComments *bool    `mapstructure:"strip_comments"`
	IncludeHidden *bool    `mapstructure:"include_hidden"`
	Exclude       []string `mapstructure:"exclude"`
	Gitignore     *bool    `mapstructure:"gitignore"`
	Copy          *bool    `mapstructure:"copy"`
	Tokens        *bool    `mapstructure:"tokens"`
	Model         string   `mapstructure:"model"`
}

// GlobalConfigurationPath returns ~/.repoctx/config.toml for the current user.
func GlobalConfigurationPath() (string, error) {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		return "", fmt.Errorf("resolve home directory: %w", homeError)
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), nil
}

// LoadApplicationConfiguration merges the global file with the local (or
// explicit) file, local values winning. A file that cannot be read or decoded
// is logged once at warn level and treated as absent.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath, globalPathError := GlobalConfigurationPath(); globalPathError == nil {
		merged = merged.Merge(loadOrWarn(globalPath, logger))
	}
	merged = merged.Merge(loadOrWarn(resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath), logger))

	merged.Exclude = utils.DeduplicatePatterns(merged.Exclude)
	return merged, nil
}

func loadOrWarn(path string, logger *zap.Logger) ApplicationConfiguration {
	loaded, loadError := loadConfigurationFromPath(path)
	if loadError != nil {
		logger.Warn("Ignoring configuration file", zap.String("path", path), zap.Error(loadError))
		return ApplicationConfiguration{}
	}
	return loaded
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, apperrors.New(apperrors.KindConfigParse, "stat configuration "+path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, apperrors.New(apperrors.KindConfigParse, "configuration path "+path+" is a directory", nil)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("toml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, apperrors.New(apperrors.KindConfigParse, "read configuration from "+path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, apperrors.New(apperrors.KindConfigParse, "decode configuration from "+path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Recent != nil {
		result.Recent = cloneBool(override.Recent)
	}
	if override.RecentDays != nil {
		result.RecentDays = cloneInt(override.RecentDays)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	if len(override.Paths) > 0 {
		result.Paths = append([]string{}, override.Paths...)
	}
	if override.MaxFileSize != nil {
		result.MaxFileSize = cloneInt(override.MaxFileSize)
	}
	if override.StripComments != nil {
		result.StripComments = cloneBool(override.StripComments)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.Gitignore != nil {
		result.Gitignore = cloneBool(override.Gitignore)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Tokens != nil {
		result.Tokens = cloneBool(override.Tokens)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
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
