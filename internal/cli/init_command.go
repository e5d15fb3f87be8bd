package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/repoctx/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write a configuration file holding every supported key with its default.
Without --global the file is .scan-repo-config.toml in the working directory.`
	initGlobalFlagName        = "global"
	initGlobalFlagDescription = "write ~/.repoctx/config.toml instead"
	initForceFlagName         = "force"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initSuccessFormat         = "Configuration written to %s\n"
)

func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, path)
			return writeError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, initGlobalFlagName, "", false, initGlobalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, initForceFlagName, "", false, initForceFlagDescription)
	return initCommand
}
