// Command dissat runs the CDCL engine against a DIMACS CNF file.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/neuring/dissat/internal/sat"
	"github.com/neuring/dissat/parsers"
)

var (
	flagCPUProfile string
	flagMemProfile string
	flagGzipped    bool
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dissat",
		Short: "A CDCL SAT solver",
	}
	root.PersistentFlags().StringVar(&flagCPUProfile, "cpuprofile", "", "write a CPU profile to this file")
	root.PersistentFlags().StringVar(&flagMemProfile, "memprofile", "", "write a heap profile to this file")
	root.AddCommand(newSolveCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <instance.cnf>",
		Short: "Solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	cmd.Flags().BoolVar(&flagGzipped, "gzip", false, "the instance file is gzip compressed")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "log propagation/analysis/GC tracing at debug level")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	if flagCPUProfile != "" {
		f, err := os.Create(flagCPUProfile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	logger := logrus.New()
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	opts := sat.DefaultOptions
	opts.Logger = logger
	solver := sat.NewSolver(opts)

	if err := parsers.LoadDIMACS(args[0], flagGzipped, solver); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables: %d\n", solver.NumVars())

	start := time.Now()
	outcome := solver.Solve()
	elapsed := time.Since(start)

	stats := solver.Stats()
	fmt.Printf("c time (sec):   %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:    %d\n", stats.Conflicts)
	fmt.Printf("c propagations: %d\n", stats.Propagations)
	fmt.Printf("c decisions:    %d\n", stats.Decisions)

	switch {
	case outcome.IsSat():
		fmt.Println("s SATISFIABLE")
		model := outcome.Model()
		for _, lit := range model.AsVec() {
			fmt.Printf("v %d\n", lit)
		}
	case outcome.IsUnsat():
		fmt.Println("s UNSATISFIABLE")
	default:
		fmt.Println("s UNKNOWN")
	}

	if flagMemProfile != "" {
		f, err := os.Create(flagMemProfile)
		if err != nil {
			return err
		}
		defer f.Close()
		return pprof.WriteHeapProfile(f)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
