package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memverif/verif"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] script",
	Short: "Run a script file.",
	Long: "Run a YAML or JSON script and report every step. The exit status " +
		"is 0 when all reads match, 1 on a mismatch and 2 when the script " +
		"is invalid.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		script, err := verif.LoadScript(args[0])
		if err != nil {
			log.Error(err)
			atexit.Exit(ExitConfigError)
		}

		result, err := runScript(cmd, script)
		if err != nil {
			log.Error(err)
		}

		atexit.Exit(exitCode(result, err))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
