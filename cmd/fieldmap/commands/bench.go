package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"

	"field-mapper/mapper"
	"field-mapper/metrics"
)

// benchResult is the outcome of one bench run.
type benchResult struct {
	Mapper      string
	Iterations  int
	Total       time.Duration
	Compiles    float64
	FieldErrors float64
}

func newBenchCommand(flags *globalFlags) *cobra.Command {
	var (
		iterations int
		asArgs     bool
	)

	cmd := &cobra.Command{
		Use:   "bench <mapper> [input|-]",
		Short: "Measure mapping throughput",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col := metrics.NewCollector()

			e, err := flags.load(cmd, mapper.WithObserver(col))
			if err != nil {
				return err
			}

			if iterations <= 0 {
				iterations = e.cfg.Bench.Iterations
			}

			m, err := e.catalog.Mapper(args[0])
			if err != nil {
				return err
			}

			input := ""
			if len(args) > 1 {
				input = args[1]
			}

			src, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := runBench(m, src, asArgs, iterations, col)
			if err != nil {
				return err
			}

			writeBench(cmd.OutOrStdout(), res)

			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "number of Execute calls (default bench.iterations)")
	cmd.Flags().BoolVar(&asArgs, "args", false, "treat a list input as positional arguments ($0, $1...)")

	return cmd
}

func runBench(m *mapper.Mapper, src any, asArgs bool, iterations int, col *metrics.Collector) (benchResult, error) {
	if err := m.Compile(); err != nil {
		return benchResult{}, err
	}

	start := time.Now()

	for range iterations {
		if _, err := execute(m, src, asArgs); err != nil {
			return benchResult{}, err
		}
	}

	res := benchResult{
		Mapper:     m.Name(),
		Iterations: iterations,
		Total:      time.Since(start),
	}

	registry, err := metrics.NewRegistry(col)
	if err != nil {
		return benchResult{}, err
	}

	families, err := registry.Gather()
	if err != nil {
		return benchResult{}, fmt.Errorf("gathering metrics: %w", err)
	}

	res.Compiles = counterValue(families, "fieldmap_compiles_total")
	res.FieldErrors = counterValue(families, "fieldmap_field_errors_total")

	return res, nil
}

func counterValue(families []*dto.MetricFamily, name string) float64 {
	var total float64

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

		for _, metric := range mf.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}

	return total
}

func writeBench(w io.Writer, r benchResult) {
	perOp := time.Duration(0)
	opsPerSec := 0.0

	if r.Iterations > 0 {
		perOp = r.Total / time.Duration(r.Iterations)
	}

	if r.Total > 0 {
		opsPerSec = float64(r.Iterations) / r.Total.Seconds()
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("bench " + r.Mapper)
	tbl.AppendHeader(table.Row{"Iterations", "Total", "Per op", "Ops/s", "Compiles", "Field errors"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tbl.AppendRow(table.Row{
		humanize.Comma(int64(r.Iterations)),
		r.Total.Round(time.Microsecond),
		perOp,
		humanize.Commaf(float64(int64(opsPerSec))),
		int64(r.Compiles),
		humanize.Comma(int64(r.FieldErrors)),
	})

	fmt.Fprintln(w, tbl.Render())
}
