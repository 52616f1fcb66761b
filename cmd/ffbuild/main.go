// Command ffbuild builds a pinned FFmpeg release into a private prefix,
// probes the installed headers and prints the resulting signal set.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ffbuild "github.com/contriboss/ffmpeg-build-go"
)

var (
	yamlOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "ffbuild",
	Short: "Build FFmpeg and probe its capabilities",
	Long: `ffbuild prepares a static FFmpeg installation for binding generation.

It fetches and builds the pinned release under the configured feature and
license matrix, probes the installed headers for deprecated-API and version
facts, and emits the merged signal set consumed by the binding generator.

All configuration comes from FFBUILD_* environment variables; see the
package documentation for the full list.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := buildLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		opts, err := ffbuild.NewOptions()
		if err != nil {
			return err
		}

		pipe := ffbuild.NewPipeline(opts, log.Sugar())
		result, err := pipe.Run(cmd.Context())
		if err != nil {
			return err
		}

		if yamlOutput {
			out, err := result.Signals.YAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		}

		_, err = result.Signals.WriteTo(os.Stdout)
		return err
	},
}

var signalsCmd = &cobra.Command{
	Use:   "universe",
	Short: "Print every signal name this engine can emit",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range ffbuild.SignalUniverse() {
			fmt.Println(name)
		}
	},
}

func buildLogger() (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress progress logging")
	rootCmd.Flags().BoolVar(&yamlOutput, "yaml", false, "emit signals as YAML with the declared universe")
	rootCmd.AddCommand(signalsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
