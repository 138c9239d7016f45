package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/haivivi/netbuf/pkg/bench"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run an append/drain workload against a buffer",
	Long: `Run a synthetic network workload: every iteration appends a chunk,
prepends a length header when there is room, and drains part of the
readable bytes. The report counts reallocations, in-place compactions and
prepend overflows.

The buffer initial and prepend sizes come from the selected profile.

Examples:
  netbuf bench
  netbuf bench --chunk 1400 --jitter 100 --drain 0.9 --iterations 100000
  netbuf -p jumbo bench --header 8 --format table
  netbuf bench --runs 8 --workers 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := getProfile()
		if err != nil {
			return err
		}

		w := bench.DefaultWorkload()
		w.Initial = profile.InitialSize()
		w.Prepend = profile.PrependSize()
		w.ChunkSize, _ = cmd.Flags().GetInt("chunk")
		w.ChunkJitter, _ = cmd.Flags().GetInt("jitter")
		w.DrainRatio, _ = cmd.Flags().GetFloat64("drain")
		w.HeaderSize, _ = cmd.Flags().GetInt("header")
		w.Iterations, _ = cmd.Flags().GetInt("iterations")
		w.Seed, _ = cmd.Flags().GetUint64("seed")

		runs, _ := cmd.Flags().GetInt("runs")
		workers, _ := cmd.Flags().GetInt("workers")

		printVerbose("Workload: %+v", w)
		if runs > 1 {
			sum, err := bench.RunParallel(cmd.Context(), w, runs, workers)
			if err != nil {
				return err
			}
			return outputResult(sum, profile)
		}
		res, err := bench.Run(cmd.Context(), w)
		if err != nil {
			return err
		}
		return outputResult(res, profile)
	},
}

func init() {
	d := bench.DefaultWorkload()
	benchCmd.Flags().Int("chunk", d.ChunkSize, "mean chunk size in bytes")
	benchCmd.Flags().Int("jitter", d.ChunkJitter, "maximum chunk size deviation in bytes")
	benchCmd.Flags().Float64("drain", d.DrainRatio, "fraction of readable bytes drained per iteration")
	benchCmd.Flags().Int("header", d.HeaderSize, "length header size: 0, 1, 2, 4 or 8")
	benchCmd.Flags().Int("iterations", d.Iterations, "number of iterations")
	benchCmd.Flags().Uint64("seed", d.Seed, "random seed for chunk sizes")
	benchCmd.Flags().Int("runs", 1, "number of runs, seeded seed, seed+1, ...")
	benchCmd.Flags().Int("workers", runtime.NumCPU(), "maximum runs executed in parallel")
}
