package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/luthersystems/jisp/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
	runDump       bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run jisp code",
	Long:  `Run jisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		exprs, err := runReadExpressions(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		env, err := newEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i := range exprs {
			v, err := lisp.EvalProgram(exprs[i], env)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				glog.Flush()
				os.Exit(1)
			}
			if runPrint && v.Type != lisp.LUnit {
				fmt.Println(v)
			}
		}
		if runDump {
			spew.Fdump(os.Stderr, env.Global())
		}
	},
}

func runReadExpressions(args []string) ([]string, error) {
	exprs := make([]string, len(args))
	if runExpression {
		copy(exprs, args)
		return exprs, nil
	}
	for i, path := range args {
		glog.V(1).Infof("reading %s", path)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		exprs[i] = string(b)
	}
	return exprs, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as jisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of each program to stdout")
	runCmd.Flags().BoolVar(&runDump, "dump", false,
		"Dump the global frame to stderr after running")
}
