package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rushsh/rush/core/config"
	"github.com/rushsh/rush/core/interp"
	"github.com/rushsh/rush/core/shell"
	"github.com/rushsh/rush/core/syntax"
)

var (
	cfgDir      string
	commandLine string

	// lastStatus is the exit status of the shell session or -c command;
	// Execute reports it so main can pass it to os.Exit.
	lastStatus int
)

// loadConfig reads the configuration directory, falling back to the
// embedded defaults when nothing has been initialized yet.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(afero.NewOsFs(), cfgDir)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// rootCmd runs the shell: interactively by default, or a single command
// line with -c.
var rootCmd = &cobra.Command{
	Use:   "rush",
	Short: "A small command shell.",
	Long: `rush is a command shell supporting pipelines, redirections,
conditional chaining (&& and ||), sequencing and background execution,
with terminal job control for foreground commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if commandLine != "" {
			tree, err := syntax.Parse(commandLine)
			if err != nil {
				lastStatus = 2
				return err
			}
			shell.ApplyStartup(cfg)
			runner := interp.NewRunner(os.Stdin, os.Stdout, os.Stderr, interp.NewTerminal(os.Stdin))
			lastStatus = runner.Run(tree)
			return nil
		}

		sh, err := shell.New(cfg)
		if err != nil {
			return err
		}
		defer sh.Close()

		lastStatus = sh.Run()
		return nil
	},
}

// Execute runs the command tree and returns the process exit status.
// It is called by main.main().
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		log.SetFlags(0)
		log.Printf("rush: %v", err)
		if lastStatus == 0 {
			lastStatus = 1
		}
	}
	return lastStatus
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", config.DefaultDir(), "config directory")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run this command line and exit")
	rootCmd.SilenceErrors = true
}
