// worldcodec inspects and converts chunks of voxel world region files.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/richgrov/worldcodec/cmd/worldcodec/command"
)

const (
	cliName        = "worldcodec"
	cliDescription = "inspect and convert chunks between world storage versions"
)

var (
	globalFlags = &command.GlobalFlags{}

	rootCmd = &cobra.Command{
		Use:               cliName,
		Short:             cliDescription,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return command.Setup(globalFlags) },
	}
)

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "config file, defaults apply when empty")
	rootCmd.PersistentFlags().StringVar(&globalFlags.LogLevel, "log-level", "", "log level overriding the config: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&globalFlags.Format, "output-format", "table", "table or json")

	rootCmd.AddCommand(
		command.NewInspectCommand(globalFlags),
		command.NewConvertCommand(globalFlags),
		command.NewCodecsCommand(globalFlags),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("%s error: %s", cliName, err)
		os.Exit(1)
	}
}
