package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	debugFlag bool
	logFile   *os.File
)

func main() {
	root := &cobra.Command{
		Use:   "ikrig",
		Short: "Timed limb IK attachment scheduling and blending for humanoid rigs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debugFlag)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug log to "+logDir+"/"+logFileName)
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(validateCmd())
	root.AddCommand(simulateCmd())
	root.AddCommand(sandboxCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
