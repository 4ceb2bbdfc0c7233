package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jengzang/health-insights-go/internal/charts"
	"github.com/jengzang/health-insights-go/internal/models"
	"github.com/jengzang/health-insights-go/internal/shell"
	"github.com/jengzang/health-insights-go/internal/view"
)

type snapshotOptions struct {
	View            string
	District        string
	CancerTypes     []string
	AgeGroups       []string
	HotspotCategory string
	Hotspot         string
	ShowLayers      []string
	HideLayers      []string
	ChartDir        string
}

var snapshotOpts snapshotOptions

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one composed view as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		catalog, err := view.DefaultCatalog()
		if err != nil {
			return err
		}

		composer := view.NewComposer(store, catalog, mapConfig(cfg))
		snap, err := buildSnapshot(composer, snapshotOpts)
		if err != nil {
			return err
		}

		if snapshotOpts.ChartDir != "" {
			if err := writeCharts(snap, snapshotOpts.ChartDir); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(snap), "snapshot: encode")
	},
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVar(&snapshotOpts.View, "view", string(models.ViewSummary), "view to compose: summary, cancer or hotspots")
	f.StringVar(&snapshotOpts.District, "district", "", "selected district")
	f.StringSliceVar(&snapshotOpts.CancerTypes, "cancer-type", nil, "cancer types (cancer view)")
	f.StringSliceVar(&snapshotOpts.AgeGroups, "age-group", nil, "age groups (cancer view)")
	f.StringVar(&snapshotOpts.HotspotCategory, "hotspot-category", "", "hotspot category (hotspots view)")
	f.StringVar(&snapshotOpts.Hotspot, "hotspot", "", "selected hotspot id")
	f.StringSliceVar(&snapshotOpts.ShowLayers, "show-layer", nil, "layers to show (summary view)")
	f.StringSliceVar(&snapshotOpts.HideLayers, "hide-layer", nil, "layers to hide (summary view)")
	f.StringVar(&snapshotOpts.ChartDir, "charts", "", "directory to write the view's charts as PNG")
	rootCmd.AddCommand(snapshotCmd)
}

// buildSnapshot replays the options as session events and composes the result
func buildSnapshot(composer *view.Composer, opts snapshotOptions) (view.Snapshot, error) {
	v, ok := models.ParseView(opts.View)
	if !ok {
		return view.Snapshot{}, eris.Errorf("snapshot: unknown view %q", opts.View)
	}

	sess := shell.NewSession("cli", composer.Catalog().Defaults())
	sess.Switch(v)
	for _, ev := range snapshotEvents(v, opts) {
		if err := sess.Apply(composer.Store(), ev); err != nil {
			return view.Snapshot{}, eris.Wrapf(err, "snapshot: apply %s", ev.Type)
		}
	}
	return composer.Compose(sess.State()), nil
}

func snapshotEvents(v models.View, opts snapshotOptions) []shell.Event {
	var events []shell.Event

	if v == models.ViewCancer {
		if opts.District != "" || len(opts.CancerTypes) > 0 || len(opts.AgeGroups) > 0 {
			events = append(events, shell.Event{
				Type:        shell.EventApplyFilters,
				Value:       opts.District,
				CancerTypes: opts.CancerTypes,
				AgeGroups:   opts.AgeGroups,
			})
		}
	} else {
		if opts.District != "" {
			events = append(events, shell.Event{Type: shell.EventDistrictClick, Value: opts.District})
		}
		if len(opts.CancerTypes) > 0 {
			events = append(events, shell.Event{Type: shell.EventSetCancerTypes, Values: opts.CancerTypes})
		}
		if len(opts.AgeGroups) > 0 {
			events = append(events, shell.Event{Type: shell.EventSetAgeGroups, Values: opts.AgeGroups})
		}
	}

	if opts.HotspotCategory != "" {
		events = append(events, shell.Event{Type: shell.EventSetHotspotCategory, Value: opts.HotspotCategory})
	}
	if opts.Hotspot != "" {
		events = append(events, shell.Event{Type: shell.EventHotspotClick, Value: opts.Hotspot})
	}

	show, hide := true, false
	for _, id := range opts.ShowLayers {
		events = append(events, shell.Event{Type: shell.EventSetLayer, Value: id, Visible: &show})
	}
	for _, id := range opts.HideLayers {
		events = append(events, shell.Event{Type: shell.EventSetLayer, Value: id, Visible: &hide})
	}
	return events
}

func writeCharts(snap view.Snapshot, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "snapshot: create chart dir")
	}

	for _, c := range snap.Charts {
		path := filepath.Join(dir, c.ID+".png")
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "snapshot: create %s", path)
		}
		err = charts.RenderPNG(f, c, charts.DefaultWidth, charts.DefaultHeight)
		closeErr := f.Close()
		if eris.Is(err, charts.ErrEmptyChart) {
			zap.L().Warn("chart has no data", zap.String("chart", c.ID))
			_ = os.Remove(path)
			continue
		}
		if err != nil {
			return eris.Wrapf(err, "snapshot: render %s", c.ID)
		}
		if closeErr != nil {
			return eris.Wrapf(closeErr, "snapshot: close %s", path)
		}
		zap.L().Info("chart written", zap.String("path", path))
	}
	return nil
}
