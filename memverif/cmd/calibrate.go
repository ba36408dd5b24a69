package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memverif/mem/sram"
	"github.com/sarchlab/memverif/verif"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Run the built-in calibration script.",
	Long: "Run the built-in script on a 16 x 8-bit memory: writes and reads " +
		"at the lowest, a middle and the highest address, a read of an " +
		"unwritten word and an overwrite.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		script := verif.CalibrationScript()

		policy, err := sram.ParseReadDuringWrite(
			GetString(cmd, "read-during-write"))
		if err != nil {
			log.Error(err)
			atexit.Exit(ExitConfigError)
		}
		script.Config.ReadDuringWrite = policy

		result, err := runScript(cmd, script)
		if err != nil {
			log.Error(err)
		}

		atexit.Exit(exitCode(result, err))
	},
}

func init() {
	rootCmd.AddCommand(calibrateCmd)
	calibrateCmd.Flags().String("read-during-write", "read-first",
		"what a write step observes: read-first or write-first")
}
