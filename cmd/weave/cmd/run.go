package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/go-drift/weave/pkg/app"
	"github.com/go-drift/weave/pkg/config"
)

type runOptions struct {
	passes      int
	duration    time.Duration
	interval    time.Duration
	metricsAddr string
	jsonOut     bool
}

func runCmd(resolve func() (*config.Resolved, error)) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the headless demo app",
		Long: `Run a headless app whose root widget resizes on every tick of an
interval timer, then print a summary of the update passes.

The run stops after --passes update passes or when --duration elapses,
whichever comes first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve()
			if err != nil {
				return err
			}
			return runDemo(cmd, cfg, opts)
		},
	}

	cmd.Flags().IntVar(&opts.passes, "passes", 60, "Stop after this many update passes (0: no limit)")
	cmd.Flags().DurationVar(&opts.duration, "duration", 5*time.Second, "Stop after this long")
	cmd.Flags().DurationVar(&opts.interval, "interval", 50*time.Millisecond, "Tick interval of the demo timer")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "Print the pass timeline as JSON")
	return cmd
}

func runDemo(cmd *cobra.Command, cfg *config.Resolved, opts runOptions) error {
	if opts.duration <= 0 {
		return fmt.Errorf("--duration must be positive, got %s", opts.duration)
	}
	if opts.interval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", opts.interval)
	}

	reg := prometheus.NewRegistry()
	a := app.New(cfg, app.WithRegistry(reg))
	defer a.Close()

	if opts.metricsAddr != "" {
		srv := &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(cmd.ErrOrStderr(), "metrics server: %v\n", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s/metrics\n", opts.metricsAddr)
	}

	d := newDemo(opts.interval)
	defer d.stop()
	a.SetRoot(d.node())

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.duration)
	defer cancel()
	passes := 0
	for opts.passes == 0 || passes < opts.passes {
		if err := a.Wait(ctx); err != nil {
			break
		}
		a.Update(false)
		passes++
	}

	timeline := a.Timeline()
	out := cmd.OutOrStdout()
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(timeline)
	}
	printSummary(cmd, cfg, d, timeline, passes)
	return nil
}

func printSummary(cmd *cobra.Command, cfg *config.Resolved, d *demo, timeline app.PassTimeline, passes int) {
	var total float64
	rendered := 0
	for _, s := range timeline.Samples {
		total += s.PassMs
		if s.Rendered {
			rendered++
		}
	}
	avg := 0.0
	if n := len(timeline.Samples); n > 0 {
		avg = total / float64(n)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", cfg.AppName, cfg.AppID)
	fmt.Fprintf(out, "  passes:      %d\n", passes)
	fmt.Fprintf(out, "  ticks:       %d\n", d.ticks.Get())
	fmt.Fprintf(out, "  rendered:    %d of %d traced\n", rendered, len(timeline.Samples))
	fmt.Fprintf(out, "  avg pass:    %.3fms\n", avg)
	fmt.Fprintf(out, "  slow passes: %d (over %.3fms)\n", timeline.SlowPasses, timeline.ThresholdMs)
	if len(timeline.Samples) > 0 {
		fmt.Fprintln(out)
		printPhases(out, timeline.Samples)
	}
}

type phaseStat struct {
	name     string
	pick     func(app.PassPhases) float64
	sum, max float64
}

// printPhases writes the average and worst duration of every pass phase.
func printPhases(out io.Writer, samples []app.PassSample) {
	stats := []phaseStat{
		{name: "timers", pick: func(p app.PassPhases) float64 { return p.TimersMs }},
		{name: "vars", pick: func(p app.PassPhases) float64 { return p.VarsMs }},
		{name: "events", pick: func(p app.PassPhases) float64 { return p.EventsMs }},
		{name: "update", pick: func(p app.PassPhases) float64 { return p.UpdateMs }},
		{name: "info", pick: func(p app.PassPhases) float64 { return p.InfoMs }},
		{name: "layout", pick: func(p app.PassPhases) float64 { return p.LayoutMs }},
		{name: "render", pick: func(p app.PassPhases) float64 { return p.RenderMs }},
	}
	for _, s := range samples {
		for i := range stats {
			v := stats[i].pick(s.Phases)
			stats[i].sum += v
			stats[i].max = max(stats[i].max, v)
		}
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Phase", "Avg ms", "Max ms"})
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	n := float64(len(samples))
	for _, st := range stats {
		table.Append([]string{
			st.name,
			strconv.FormatFloat(st.sum/n, 'f', 3, 64),
			strconv.FormatFloat(st.max, 'f', 3, 64),
		})
	}
	table.Render()
}
