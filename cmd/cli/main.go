package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raoelg/ttest-to-bayesfactor/adapters/excel"
	"github.com/raoelg/ttest-to-bayesfactor/app"
	"github.com/raoelg/ttest-to-bayesfactor/domain/bayes"
	"github.com/raoelg/ttest-to-bayesfactor/internal"
	"github.com/raoelg/ttest-to-bayesfactor/internal/config"
	"github.com/raoelg/ttest-to-bayesfactor/internal/container"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bfttest",
		Short:         "Bayes factors for reported t-statistics under a Cauchy prior",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newComputeCmd(),
		newBatchCmd(),
	)
	return rootCmd
}

// newContainer wires the engine from the environment without a ledger
func newContainer() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return container.New(cfg, internal.NewLogger(cfg.Log.Level))
}

func newComputeCmd() *cobra.Command {
	var (
		t, n1, n2  float64
		interval   string
		rscale     string
		complement bool
		simple     bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the Bayes factor of one t-statistic",
		Long: `Compute the Bayes factor of one t-statistic and print it as JSON.

Example: bfttest compute --t 2.5 --n1 20 --interval "-Infinity,0" --rscale wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bounds, err := bayes.ParseInterval(interval)
			if err != nil {
				return err
			}
			req := bayes.NewTTestRequest(t, n1)
			req.N2 = n2
			req.Interval = bounds
			req.Prior = bayes.ScaleLabel(rscale)
			req.Complement = complement
			req.Simple = simple

			c, err := newContainer()
			if err != nil {
				return err
			}
			out, err := c.TTest.Run(req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Float64Var(&t, "t", 0, "t-statistic")
	cmd.Flags().Float64Var(&n1, "n1", 0, "size of the first (or only) group")
	cmd.Flags().Float64Var(&n2, "n2", 0, "size of the second group, 0 for a one-sample test")
	cmd.Flags().StringVar(&interval, "interval", "", `null interval as "lower,upper"`)
	cmd.Flags().StringVar(&rscale, "rscale", string(bayes.ScaleMedium), "prior scale: ultrawide, wide or medium")
	cmd.Flags().BoolVar(&complement, "complement", false, "report the Bayes factor outside the interval")
	cmd.Flags().BoolVar(&simple, "simple", false, "print only B10")
	_ = cmd.MarkFlagRequired("t")
	_ = cmd.MarkFlagRequired("n1")

	return cmd
}

func newBatchCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Compute Bayes factors for every row of an .xlsx or .csv file",
		Long: `Compute Bayes factors for every row of a request table.

The table needs t and n1 columns; n2, lower, upper, rscale, complement and
simple are optional. Sheet1 is read from workbooks.

Example: bfttest batch studies.xlsx --out results.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer()
			if err != nil {
				return err
			}
			reqs, err := excel.NewDataReader(args[0]).WithLogger(c.Logger).ReadRequests()
			if err != nil {
				return err
			}
			if len(reqs) > c.Config.Batch.MaxRows {
				return fmt.Errorf("%d rows exceed BATCH_MAX_ROWS=%d", len(reqs), c.Config.Batch.MaxRows)
			}

			report, err := c.Batch.Run(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			if out != "" {
				if err := excel.WriteResults(out, resultRows(report)); err != nil {
					return err
				}
				c.Logger.Info("wrote %d results to %s", len(report.Rows), out)
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "also write the results to this .xlsx file")
	return cmd
}

func resultRows(report *app.BatchReport) []excel.ResultRow {
	rows := make([]excel.ResultRow, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = excel.ResultRow{Request: row.Request, Output: row.Output, Error: row.Error}
	}
	return rows
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
