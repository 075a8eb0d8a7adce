package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/luthersystems/jisp/lisp"
	"github.com/luthersystems/jisp/lisp/lisplib"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	lexicalScopes bool
	config        Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jisp",
	Short: "Interpreter for the jisp lisp dialect",
	Long: `An interpreter for jisp, a small lisp dialect that is evaluated
directly over its source text.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("lexical") {
			config.LexicalCapture = lexicalScopes
		}
		glog.V(1).Infof("config: %+v", config)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file (default is $HOME/.jisp.toml)")
	rootCmd.PersistentFlags().BoolVar(&lexicalScopes, "lexical", false,
		"Closures capture the environment where they are created")
}

// newEnv returns a root environment for the loaded config with its prelude
// files evaluated.
func newEnv() (lisp.Env, error) {
	var configs []lisp.Config
	if config.LexicalCapture {
		configs = append(configs, lisp.WithLexicalCapture())
	}
	env, err := lisplib.NewEnv(configs...)
	if err != nil {
		return lisp.Env{}, err
	}
	for _, path := range config.Prelude {
		glog.V(1).Infof("loading prelude %s", path)
		b, err := os.ReadFile(path)
		if err != nil {
			return lisp.Env{}, err
		}
		if _, err := lisp.EvalProgram(string(b), env); err != nil {
			return lisp.Env{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return env, nil
}
