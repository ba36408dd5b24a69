// Package cmd provides the command-line interface of memverif.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Exit codes.
const (
	ExitPass        = 0
	ExitMismatch    = 1
	ExitConfigError = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memverif",
	Short: "Cycle-level verification harness for a synchronous memory.",
	Long: "memverif drives scripted reads and writes into a simulated " +
		"single-port memory, one per clock period, and checks every read " +
		"against its expected word.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadEnvDefaults(cmd)

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It never returns.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(ExitConfigError)
	}

	atexit.Exit(ExitPass)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("trace", "", "write a signal trace to this file")
	flags.String("trace-format", "",
		"trace format: vcd, csv or sqlite (default from the file extension)")
	flags.Bool("log-events", false, "log every simulation event")
	flags.Bool("no-color", false, "never colour the report")
	flags.BoolP("verbose", "v", false, "log at debug level")
}

// envFlags maps environment variables to the flags they provide defaults for.
var envFlags = map[string]string{
	"MEMVERIF_TRACE":        "trace",
	"MEMVERIF_TRACE_FORMAT": "trace-format",
	"MEMVERIF_VERBOSE":      "verbose",
}

// loadEnvDefaults reads a .env file, if any, and uses the environment for the
// flags not set on the command line.
func loadEnvDefaults(cmd *cobra.Command) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("reading .env: %v", err)
	}

	for env, name := range envFlags {
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}

		if err := flag.Value.Set(value); err != nil {
			log.Warnf("ignoring %s=%q: %v", env, value, err)
		}
	}
}

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		panic(err)
	}

	return r
}
