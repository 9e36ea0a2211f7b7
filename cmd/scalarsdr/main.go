// Command scalarsdr runs the sparse scalar vector matching experiments and
// prints the resulting probability grids as tables.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"scalarsdr"
	"scalarsdr/sweep"
)

var (
	flagWorkers     int
	flagTrials      int
	flagThetaTrials int
	flagSeed        int64
	flagVerbose     bool
	flagKW          int

	matchKV    []int
	matchNs    []int
	matchScale float64

	scaleKV     []int
	scaleLevels []float64
	scaleN      int

	noiseLevels []float64
	noiseN      int

	omegaBMax int
)

func newLab() *scalarsdr.Lab {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelInfo
	}
	opts := []scalarsdr.Option{
		scalarsdr.WithWorkers(flagWorkers),
		scalarsdr.WithTrials(flagTrials),
		scalarsdr.WithThetaTrials(flagThetaTrials),
		scalarsdr.WithLogger(scalarsdr.NewTextLogger(level)),
	}
	if flagSeed != 0 {
		opts = append(opts, scalarsdr.WithSeed(flagSeed))
	}
	return scalarsdr.New(opts...)
}

func printGrid(rowLabel, colLabel string, rowValues, colValues []float64, grid *sweep.Grid) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s \\ %s", rowLabel, colLabel)
	for _, c := range colValues {
		fmt.Fprintf(w, "\t%g", c)
	}
	fmt.Fprintln(w)
	rows, cols := grid.Dims()
	for r := 0; r < rows; r++ {
		fmt.Fprintf(w, "%g", rowValues[r])
		for c := 0; c < cols; c++ {
			fmt.Fprintf(w, "\t%.6g", grid.At(r, c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func intsToFloats(vs []int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}

var rootCmd = &cobra.Command{
	Use:   "scalarsdr",
	Short: "Monte-Carlo matching experiments for sparse scalar vectors",
	Long: `scalarsdr estimates the probability that two random sparse scalar
vectors match under a dot-product threshold, sweeping dimensionality,
sparsity, input scale, and injected noise.`,
	SilenceUsage: true,
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match probability vs input sparsity and dimensionality",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		grid, err := newLab().MatchProbabilities(cmd.Context(), matchKV, matchNs, flagKW, matchScale)
		if err != nil {
			return err
		}
		printGrid("kv", "n", intsToFloats(matchKV), intsToFloats(matchNs), grid)
		fmt.Printf("elapsed: %s\n", time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Match probability vs input scale at fixed dimensionality",
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := newLab().ScaledProbabilities(cmd.Context(), scaleKV, scaleLevels, flagKW, scaleN)
		if err != nil {
			return err
		}
		printGrid("kv", "scale", intsToFloats(scaleKV), scaleLevels, grid)
		return nil
	},
}

var noiseCmd = &cobra.Command{
	Use:   "noise",
	Short: "False-negative rate vs corruption fraction",
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := newLab().FalseNegativeRates(cmd.Context(), noiseLevels, flagKW, noiseN)
		if err != nil {
			return err
		}
		printGrid("kw", "noise", []float64{float64(flagKW)}, noiseLevels, grid)
		return nil
	},
}

var omegaCmd = &cobra.Command{
	Use:   "omega",
	Short: "Match probability at exact overlap sizes 1..bmax",
	RunE: func(cmd *cobra.Command, args []string) error {
		probs := newLab().OmegaProbabilities(flagKW, omegaBMax)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "b\tp(match)")
		for b := 1; b < len(probs); b++ {
			fmt.Fprintf(w, "%d\t%.6g\n", b, probs[b])
		}
		return w.Flush()
	},
}

var thetaCmd = &cobra.Command{
	Use:   "theta",
	Short: "Estimate the match threshold for a sparsity level",
	RunE: func(cmd *cobra.Command, args []string) error {
		theta, dots := newLab().Theta(flagKW)
		fmt.Printf("k=%d theta=%.8g (dot products: min=%.6g max=%.6g over %d trials)\n",
			flagKW, theta, floats.Min(dots), floats.Max(dots), len(dots))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagWorkers, "workers", 8, "sweep worker count (1 = sequential)")
	pf.IntVar(&flagTrials, "trials", 1000, "trial repetitions pooled per setting")
	pf.IntVar(&flagThetaTrials, "theta-trials", 100000, "samples for threshold estimation")
	pf.Int64Var(&flagSeed, "seed", 0, "base random seed (0 = time-based)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "log per-setting diagnostics")
	pf.IntVar(&flagKW, "kw", 24, "weight vector sparsity")

	matchCmd.Flags().IntSliceVar(&matchKV, "kv", []int{64, 128, 256, -1}, "input sparsity levels (-1 = n/2)")
	matchCmd.Flags().IntSliceVar(&matchNs, "n", []int{250, 500, 1000, 1500, 2000, 2500}, "dimensionalities")
	matchCmd.Flags().Float64Var(&matchScale, "input-scale", 1.0, "input scaling factor")

	scaleCmd.Flags().IntSliceVar(&scaleKV, "kv", []int{64, 128, 256}, "input sparsity levels")
	scaleCmd.Flags().Float64SliceVar(&scaleLevels, "scales", []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0}, "input scale factors")
	scaleCmd.Flags().IntVar(&scaleN, "n", 1000, "dimensionality")

	noiseCmd.Flags().Float64SliceVar(&noiseLevels, "levels", []float64{0.1, 0.2, 0.3, 0.4, 0.45, 0.5, 0.55, 0.6, 0.7, 0.8}, "corruption fractions")
	noiseCmd.Flags().IntVar(&noiseN, "n", 500, "dimensionality")

	omegaCmd.Flags().IntVar(&omegaBMax, "bmax", 32, "maximum overlap size")

	rootCmd.AddCommand(matchCmd, scaleCmd, noiseCmd, omegaCmd, thetaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
