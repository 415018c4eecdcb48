package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/damper"
	"github.com/zoobzio/damper/internal/scenario"
	"github.com/zoobzio/damper/prommetrics"
)

func newSimulateCommand(a *app) *cobra.Command {
	var metrics bool

	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Replay a call timeline against a policy",
		Long: `Replay the calls listed in a scenario file against its debounce or
throttle policy on virtual time, and print every target invocation.

The policy mode and interval can be overridden with --mode and --interval,
the config file, or DAMPER_MODE and DAMPER_INTERVAL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.simulate(cmd, args[0], metrics)
		},
	}

	cmd.Flags().String("mode", "", "override the policy mode (debounce or throttle)")
	cmd.Flags().String("interval", "", "override the policy interval, e.g. 300ms or 300 (milliseconds)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print collected metrics after the run")
	_ = a.v.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	_ = a.v.BindPFlag("interval", cmd.Flags().Lookup("interval"))
	return cmd
}

func (a *app) simulate(cmd *cobra.Command, path string, withMetrics bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := scenario.Load(data, damper.CodecFor(filepath.Ext(path)))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	if a.v.IsSet("mode") {
		s.Policy.Mode = damper.Mode(a.v.GetString("mode"))
	}
	if a.v.IsSet("interval") {
		d, err := damper.ParseDuration(a.v.GetString("interval"))
		if err != nil {
			return fmt.Errorf("invalid interval: %w", err)
		}
		s.Policy.Interval = d
	}
	a.log.Debug("Loaded scenario",
		zap.String("path", path),
		zap.String("mode", string(s.Policy.Mode)),
		zap.Stringer("interval", s.Policy.Interval),
		zap.Int("calls", len(s.Calls)),
	)

	opts := []scenario.Option{scenario.WithContext(cmd.Context())}
	reg := prometheus.NewRegistry()
	if withMetrics {
		mc := prommetrics.NewCollector("damper")
		if err := mc.Register(reg); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts = append(opts, scenario.WithMetrics(mc))
	}

	res, err := scenario.Run(s, opts...)
	if err != nil {
		return err
	}
	a.log.Info("Simulation complete",
		zap.Int("calls", res.Calls),
		zap.Int("invocations", len(res.Invocations)),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderResult(res))
	if withMetrics {
		rendered, err := renderMetrics(reg)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	}
	return nil
}

func renderResult(res scenario.Result) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s %s", res.Policy.Mode, res.Policy.Interval))
	t.AppendHeader(table.Row{"#", "At", "Receiver", "Args", "Error"})

	for i, inv := range res.Invocations {
		errText := ""
		if inv.Err != nil {
			errText = inv.Err.Error()
		}
		t.AppendRow(table.Row{i + 1, inv.At, inv.Receiver, strings.Join(inv.Args, " "), errText})
	}

	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("end %s", res.End),
		fmt.Sprintf("%d/%d calls ran", len(res.Invocations), res.Calls),
		fmt.Sprintf("%d dropped, %d superseded", res.Dropped, res.Superseded),
		fmt.Sprintf("%d failed", res.Failures),
	})
	return t.Render()
}

func renderMetrics(g prometheus.Gatherer) (string, error) {
	families, err := g.Gather()
	if err != nil {
		return "", fmt.Errorf("failed to gather metrics: %w", err)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Metric", "Labels", "Value"})

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}

			var value any
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = m.GetHistogram().GetSampleCount()
			default:
				continue
			}
			t.AppendRow(table.Row{mf.GetName(), strings.Join(labels, ","), value})
		}
	}
	return t.Render(), nil
}
