package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/posecam/internal/config"
	"github.com/san-kum/posecam/internal/curve"
	"github.com/san-kum/posecam/internal/driver"
	"github.com/san-kum/posecam/internal/logging"
	"github.com/san-kum/posecam/internal/menu"
	"github.com/san-kum/posecam/internal/metrics"
	"github.com/san-kum/posecam/internal/pose"
	"github.com/san-kum/posecam/internal/sequence"
	"github.com/san-kum/posecam/internal/spatial"
	"github.com/san-kum/posecam/internal/storage"
	"github.com/san-kum/posecam/internal/transition"
	"github.com/san-kum/posecam/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string

	from      string
	dt        float64
	maxTime   float64
	overshoot string
	noSave    bool
	theme     string
	captureTo string
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "posecam",
		Short:             "camera pose transition lab",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE:              runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".posecam", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "rig config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset rig")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "text or json")

	runCmd := &cobra.Command{
		Use:   "run [pose]",
		Short: "drive one transition and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransition,
	}
	addDriveFlags(runCmd)
	runCmd.Flags().StringVar(&from, "from", "", "pose to snap to first (default: config start)")

	tourCmd := &cobra.Command{
		Use:   "tour [file]",
		Short: "play a scripted tour, one take per step",
		Args:  cobra.ExactArgs(1),
		RunE:  runTour,
	}
	addDriveFlags(tourCmd)

	menuCmd := &cobra.Command{
		Use:   "menu [state...]",
		Short: "walk the menu states (main, options, settings, credits, back)",
		RunE:  runMenu,
	}
	addDriveFlags(menuCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded takes",
		RunE:  listTakes,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [take_id]",
		Short: "plot a take",
		Args:  cobra.ExactArgs(1),
		RunE:  plotTake,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [take_id]",
		Short: "export a take as JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset rigs",
		RunE:  listPresets,
	}

	posesCmd := &cobra.Command{
		Use:   "poses",
		Short: "list the poses of the active rig",
		RunE:  listPoses,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the active rig to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [from] [to]",
		Short: "run one transition under every curve preset",
		Args:  cobra.ExactArgs(2),
		RunE:  compareCurves,
	}
	addDriveFlags(compareCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [take_id] [file]",
		Short: "draw a take over the rig's poses as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive previewer",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "colour theme")
		c.Flags().StringVar(&overshoot, "overshoot", "", "extrapolate or clamp (default: config)")
		c.Flags().StringVar(&captureTo, "capture-to", "", "write the config with poses captured by s to this file")
	}

	rootCmd.AddCommand(runCmd, tourCmd, menuCmd, listCmd, plotCmd, exportJSONCmd, exportSVGCmd, compareCmd, presetsCmd, posesCmd, initCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addDriveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (default: config)")
	cmd.Flags().Float64Var(&maxTime, "max", 0, "longest transition to simulate (default: config)")
	cmd.Flags().StringVar(&overshoot, "overshoot", "", "extrapolate or clamp (default: config)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record takes")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logging.New(level, logFormat))
	return nil
}

// rig is the loaded configuration wired to a live controller.
type rig struct {
	cfg        *config.Config
	collection *pose.Collection
	camera     *spatial.Rig
	ctrl       *transition.Controller
	drive      driver.Config
}

func loadRig() (*rig, error) {
	cfg := config.DefaultConfig()
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (have %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if overshoot != "" {
		cfg.Overshoot = overshoot
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	coll, err := cfg.Collection()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	drive := cfg.DriverConfig()
	if dt > 0 {
		drive.Dt = dt
	}
	if maxTime > 0 {
		drive.MaxDuration = maxTime
	}

	camera := spatial.NewRig()
	ctrl := transition.New(camera, coll)
	ctrl.SetPolicy(policy)
	ctrl.AddObserver(transition.ObserverFunc(func(p *pose.Pose) {
		slog.Debug("pose reached", "pose", p.Name)
	}))
	if cfg.Start != "" {
		ctrl.SnapToName(cfg.Start)
	}

	slog.Debug("rig loaded", "collection", coll.Name, "poses", coll.Len(), "overshoot", policy, "dt", drive.Dt)
	return &rig{cfg: cfg, collection: coll, camera: camera, ctrl: ctrl, drive: drive}, nil
}

func (r *rig) pose(name string) (*pose.Pose, error) {
	p := r.collection.FindByName(name)
	if p == nil {
		return nil, fmt.Errorf("camera pose not found: %s (have %v)", name, r.collection.Names())
	}
	return p, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runTransition(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}

	dest, err := r.pose(args[0])
	if err != nil {
		return err
	}
	start := from
	if start == "" {
		start = r.cfg.Start
	}
	if start != "" {
		p, err := r.pose(start)
		if err != nil {
			return err
		}
		r.ctrl.SnapTo(p)
	}

	drv := driver.New()
	drv.AddMetric(metrics.NewPathLength())
	drv.AddMetric(metrics.NewAngularTravel())
	drv.AddMetric(metrics.NewOvershoot(r.camera.Position(), dest.Position))

	ctx, cancel := signalContext()
	defer cancel()

	r.ctrl.TransitionTo(dest)
	track, err := drv.Run(ctx, r.ctrl, r.drive)
	if err != nil {
		return err
	}

	final := track.Final()
	fmt.Printf("%s -> %s\n", orNone(start), dest.Name)
	fmt.Printf("  steps:          %d\n", track.Steps)
	fmt.Printf("  time:           %.3fs\n", final.Time)
	fmt.Printf("  completed:      %v\n", track.Completed)
	fmt.Printf("  position:       %.3f %.3f %.3f\n", final.Position.X(), final.Position.Y(), final.Position.Z())
	fmt.Printf("  path length:    %.3f\n", track.Metrics["path_length"])
	fmt.Printf("  angular travel: %.3f rad\n", track.Metrics["angular_travel"])
	fmt.Printf("  max overshoot:  %.3f\n", track.Metrics["max_overshoot"])

	if noSave {
		return nil
	}
	id, err := saveTake(storage.TakeMetadata{
		Name: dest.Name, From: start, Pose: dest.Name,
		Dt: r.drive.Dt, Overshoot: r.ctrl.Policy().String(),
	}, track)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", id)
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}

	tour, err := sequence.LoadTour(args[0])
	if err != nil {
		return err
	}
	if err := tour.Validate(r.collection); err != nil {
		return err
	}

	drv := driver.New()
	drv.AddMetric(metrics.NewPathLength())
	drv.AddMetric(metrics.NewAngularTravel())

	ctx, cancel := signalContext()
	defer cancel()

	prev := orNone(r.cfg.Start)
	tracks, err := tour.Play(ctx, r.ctrl, drv, r.drive)
	if err != nil {
		return err
	}

	for i, track := range tracks {
		step := tour.Steps[i]
		fmt.Printf("%2d  %-12s -> %-12s %6.2fs  path %.3f\n", i+1, prev, step.Pose, track.Final().Time, track.Metrics["path_length"])
		if !noSave {
			id, err := saveTake(storage.TakeMetadata{
				Name: fmt.Sprintf("%s-%02d", tour.Name, i+1), From: prev, Pose: step.Pose,
				Dt: r.drive.Dt, Overshoot: r.ctrl.Policy().String(),
			}, track)
			if err != nil {
				return err
			}
			slog.Info("take saved", "id", id)
		}
		prev = step.Pose
	}
	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}

	states := make([]menu.State, 0, len(args))
	for _, a := range args {
		s, err := menu.ParseState(a)
		if err != nil {
			return err
		}
		states = append(states, s)
	}

	ctx, cancel := signalContext()
	defer cancel()

	drv := driver.New()
	settle := func() error {
		_, err := drv.Run(ctx, r.ctrl, r.drive)
		return err
	}

	m := menu.New(r.ctrl, r.collection, slog.Default())
	m.Start()
	fmt.Println(m.Status())
	if err := settle(); err != nil {
		return err
	}
	fmt.Println(m.Status())

	for _, s := range states {
		if !m.Show(s) {
			continue
		}
		fmt.Println(m.Status())
		if err := settle(); err != nil {
			return err
		}
		fmt.Println(m.Status())
	}
	return nil
}

func saveTake(meta storage.TakeMetadata, track *driver.Track) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	return st.Save(meta, track)
}

func listTakes(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	takes, err := st.List()
	if err != nil {
		return err
	}

	if len(takes) == 0 {
		fmt.Println("no takes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tPOSE\tTIME\tDURATION\tSTEPS\tOVERSHOOT\tDONE")

	for _, take := range takes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%d\t%s\t%v\n",
			take.ID,
			orNone(take.From),
			take.Pose,
			take.Timestamp.Format("2006-01-02 15:04:05"),
			take.Duration,
			take.Steps,
			take.Overshoot,
			take.Completed,
		)
	}

	return w.Flush()
}

func plotTake(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	if len(track.Samples) < 2 {
		return fmt.Errorf("take %s: not enough samples to plot", meta.ID)
	}

	fmt.Printf("take: %s\n", meta.ID)
	fmt.Printf("%s -> %s\n", orNone(meta.From), meta.Pose)
	fmt.Printf("samples: %d\n\n", len(track.Samples))

	fmt.Println(asciigraph.PlotMany(
		[][]float64{track.Axis(0), track.Axis(1), track.Axis(2)},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.SeriesLegends("x", "y", "z"),
		asciigraph.Caption("position vs time"),
	))
	fmt.Println()

	progress := make([]float64, len(track.Samples))
	for i, s := range track.Samples {
		progress[i] = s.Progress
	}
	fmt.Println(asciigraph.Plot(progress,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("normalized time"),
	))

	for name, v := range meta.Metrics {
		fmt.Printf("%-16s %.4f\n", name, v)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, track)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	track, err := st.LoadTrack(args[0])
	if err != nil {
		return err
	}
	points := make([]mgl64.Vec3, len(track.Samples))
	for i, s := range track.Samples {
		points[i] = s.Position
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := viz.WritePathSVG(f, r.collection.Poses(), points, 800, 600); err != nil {
		return err
	}
	slog.Info("svg written", "take", args[0], "path", args[1])
	return nil
}

func compareCurves(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}
	src, err := r.pose(args[0])
	if err != nil {
		return err
	}
	dest, err := r.pose(args[1])
	if err != nil {
		return err
	}

	names := curve.Names()
	variants := make([]driver.Variant, 0, len(names))
	for _, name := range names {
		c, err := curve.Lookup(name)
		if err != nil {
			return err
		}
		variants = append(variants, driver.Variant{Name: name, Curve: c})
	}

	ens := driver.NewEnsemble(src, dest, r.ctrl.Policy(), func() []driver.Metric {
		return []driver.Metric{
			metrics.NewPathLength(),
			metrics.NewAngularTravel(),
			metrics.NewOvershoot(src.Position, dest.Position),
		}
	})

	ctx, cancel := signalContext()
	defer cancel()

	tracks, err := ens.Run(ctx, variants, r.drive)
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s (%.2fs, overshoot %s)\n\n", src.Name, dest.Name, dest.TransitionDuration, r.ctrl.Policy())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURVE\tSTEPS\tPATH\tANGULAR\tOVERSHOOT")
	for i, tr := range tracks {
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.3f\n",
			variants[i].Name,
			tr.Steps,
			tr.Metrics["path_length"],
			tr.Metrics["angular_travel"],
			tr.Metrics["max_overshoot"],
		)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCOLLECTION\tPOSES\tSTART\tOVERSHOOT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", name, p.Collection.Name, len(p.Collection.Poses), p.Start, p.Overshoot)
	}
	return w.Flush()
}

func listPoses(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", r.collection.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPOSITION\tYAW\tPITCH\tDURATION\tCURVE")
	for i, pc := range r.cfg.Collection.Poses {
		p := r.collection.FindByName(pc.Name)
		yaw, pitch := spatial.Heading(p.Orientation)
		curveName := pc.Curve.Name
		switch {
		case len(pc.Curve.Keys) > 0:
			curveName = fmt.Sprintf("keys(%d)", len(pc.Curve.Keys))
		case curveName == "":
			curveName = "default"
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f %.2f %.2f\t%.1f\t%.1f\t%.2fs\t%s\n",
			i+1, p.Name,
			p.Position.X(), p.Position.Y(), p.Position.Z(),
			yaw, pitch,
			p.TransitionDuration,
			curveName,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}
	if err := config.Save(args[0], r.cfg); err != nil {
		return err
	}
	slog.Info("config written", "path", args[0], "poses", r.collection.Len())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	r, err := loadRig()
	if err != nil {
		return err
	}
	if r.collection.Len() == 0 {
		return fmt.Errorf("collection %q has no poses", r.collection.Name)
	}
	m := viz.NewModel(r.ctrl).WithTheme(theme)
	if captureTo != "" {
		m = m.WithCapture(func(p *pose.Pose) error {
			// presets share their pose slice, so never append in place
			poses := r.cfg.Collection.Poses
			r.cfg.Collection.Poses = append(poses[:len(poses):len(poses)], config.PoseFrom(p.Name, r.camera))
			if err := config.Save(captureTo, r.cfg); err != nil {
				return err
			}
			slog.Info("pose captured", "pose", p.Name, "file", captureTo)
			return nil
		})
	}
	return viz.Run(m)
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
