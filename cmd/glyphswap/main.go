package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/glyphswap/internal/cli"
	"codeberg.org/snonux/glyphswap/internal/logging"
	"codeberg.org/snonux/glyphswap/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Merge config file and environment into the flags
	cli.ApplyConfig(flags)

	logger, err := logging.New(flags.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Create processor
	proc, err := processor.NewProcessor(flags, logger)
	if err != nil {
		return err
	}

	// Handle --index flag
	if flags.Index {
		return proc.GenerateIndex()
	}

	if len(args) > 0 {
		// Translate a single document
		return proc.ProcessSingleFile(args[0])
	}

	// No input provided - translate the input folder or batch list
	return proc.ProcessBatch()
}
