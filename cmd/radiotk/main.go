package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/radiotk/internal/arrayops"
	"github.com/san-kum/radiotk/internal/bandpass"
	"github.com/san-kum/radiotk/internal/config"
	"github.com/san-kum/radiotk/internal/flagger"
	"github.com/san-kum/radiotk/internal/jsonenc"
	"github.com/san-kum/radiotk/internal/logutil"
	"github.com/san-kum/radiotk/internal/spectra"
	"github.com/san-kum/radiotk/internal/store"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	outFile    string

	cfg *config.Config
	st  *store.Store

	axis     int
	factor   int
	pad      bool
	size     int
	order    int
	start    int
	length   int
	target   int
	padLoc   string
	mode     string
	boundary string
	value    float64

	outDir    string
	outName   string
	maskFile  string
	maskChans string
	autoFlag  float64
	ascii     bool
	infoASCII bool
	threshold float64
)

// main registers the radiotk commands and executes the root command,
// exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "radiotk",
		Short:             "dynamic spectrum toolkit",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "product store directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	infoCmd := &cobra.Command{
		Use:   "info [file|product]",
		Short: "show header and bandpass",
		Args:  cobra.ExactArgs(1),
		RunE:  showInfo,
	}
	infoCmd.Flags().BoolVar(&infoASCII, "ascii", true, "print a bandpass preview")

	decimateCmd := &cobra.Command{
		Use:   "decimate [file|product]",
		Short: "average groups of samples along an axis",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecimate,
	}
	decimateCmd.Flags().IntVar(&factor, "factor", 2, "samples per group")
	decimateCmd.Flags().BoolVar(&pad, "pad", false, "pad the axis to a multiple of factor")
	addPadFlags(decimateCmd)

	resizeCmd := &cobra.Command{
		Use:   "resize [file|product]",
		Short: "resample one axis to a new length",
		Args:  cobra.ExactArgs(1),
		RunE:  runResize,
	}
	resizeCmd.Flags().IntVar(&size, "size", 0, "target axis length")
	resizeCmd.Flags().IntVar(&order, "order", config.DefaultOrder, "interpolation order (0 nearest, 1 linear)")
	resizeCmd.Flags().StringVar(&boundary, "boundary", "", "edge handling (reflect, edge, symmetric, wrap, constant)")

	cropCmd := &cobra.Command{
		Use:   "crop [file|product]",
		Short: "keep a window of samples along an axis",
		Args:  cobra.ExactArgs(1),
		RunE:  runCrop,
	}
	cropCmd.Flags().IntVar(&start, "start", 0, "first sample")
	cropCmd.Flags().IntVar(&length, "length", 0, "window length")

	padCmd := &cobra.Command{
		Use:   "pad [file|product]",
		Short: "pad an axis to a target length",
		Args:  cobra.ExactArgs(1),
		RunE:  runPad,
	}
	padCmd.Flags().IntVar(&target, "target", 0, "target axis length")
	addPadFlags(padCmd)

	for _, c := range []*cobra.Command{decimateCmd, resizeCmd, cropCmd, padCmd} {
		c.Flags().IntVar(&axis, "axis", int(arrayops.AxisFreq), "axis (0 time, 1 frequency)")
		c.Flags().StringVarP(&outFile, "out", "o", "", "write to file (.json, .csv) instead of the store")
	}

	bandpassCmd := &cobra.Command{
		Use:   "bandpass [file|product]",
		Short: "plot the bandpass",
		Args:  cobra.ExactArgs(1),
		RunE:  plotBandpass,
	}
	bandpassCmd.Flags().StringVar(&outDir, "outdir", "", "output directory")
	bandpassCmd.Flags().StringVar(&outName, "outname", "", "output file (overrides outdir)")
	bandpassCmd.Flags().StringVar(&maskFile, "mask", "", "channel mask file (json)")
	bandpassCmd.Flags().StringVar(&maskChans, "flag", "", "channels to flag, e.g. 3,10-12")
	bandpassCmd.Flags().Float64Var(&autoFlag, "auto-flag", 0, "flag outliers beyond this many robust sigmas")
	bandpassCmd.Flags().BoolVar(&ascii, "ascii", false, "also print a terminal preview")

	flagCmd := &cobra.Command{
		Use:   "flag [file|product]",
		Short: "edit the channel mask interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runFlagger,
	}
	flagCmd.Flags().StringVar(&maskFile, "mask", "", "initial channel mask file (json)")
	flagCmd.Flags().Float64Var(&threshold, "threshold", 5, "auto-flag threshold in robust sigmas")
	flagCmd.Flags().StringVarP(&outFile, "out", "o", "", "mask output file (json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored products",
		RunE:  listProducts,
	}

	exportCmd := &cobra.Command{
		Use:   "export [file|product]",
		Short: "write a product to a .json or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE:  exportProduct,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.json, .csv)")
	_ = exportCmd.MarkFlagRequired("out")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, decimateCmd, resizeCmd, cropCmd, padCmd, bandpassCmd, flagCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPadFlags(c *cobra.Command) {
	c.Flags().StringVar(&padLoc, "loc", "", "padding location (start, end, center)")
	c.Flags().StringVar(&mode, "mode", "", "padding mode (constant, edge, reflect, symmetric, wrap)")
	c.Flags().Float64Var(&value, "value", 0, "constant padding value")
}

// setup resolves configuration (preset, then config file, then env and
// flags), installs the logger and opens the product store.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("loc") {
		cfg.Pad.Location = padLoc
	}
	if flags.Changed("mode") {
		cfg.Pad.Mode = mode
	}
	if flags.Changed("value") {
		cfg.Pad.Value = value
	}
	if flags.Changed("order") {
		cfg.Resize.Order = order
	}
	if flags.Changed("boundary") {
		cfg.Resize.Boundary = boundary
	}

	logutil.Setup(os.Stderr, cfg.Level())
	st = store.New(cfg.DataDir)
	slog.Debug("configured", "data", cfg.DataDir, "preset", preset, "config", configFile)
	return nil
}

func selectedAxis() (arrayops.Axis, error) {
	a := arrayops.Axis(axis)
	if !a.Valid() {
		return 0, fmt.Errorf("%w: got %d", arrayops.ErrInvalidAxis, axis)
	}
	return a, nil
}

// emit writes the result to --out when given, otherwise to the store.
func emit(obs *spectra.Observation, op, parent string, params map[string]any) error {
	if outFile != "" {
		if err := store.WriteFile(outFile, obs); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d x %d)\n", outFile, obs.Header.Nspectra, obs.Header.Nchans)
		return nil
	}
	if err := st.Init(); err != nil {
		return err
	}
	p, err := st.Save(obs, op, parent, params)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s (%d x %d)\n", p.ID, obs.Header.Nspectra, obs.Header.Nchans)
	return nil
}

func showInfo(cmd *cobra.Command, args []string) error {
	obs, _, err := st.Open(args[0])
	if err != nil {
		return err
	}
	h := obs.Header

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "basename\t%s\n", h.Basename)
	if h.SourceName != "" {
		fmt.Fprintf(w, "source\t%s\n", h.SourceName)
	}
	fmt.Fprintf(w, "fch1\t%.6f MHz\n", h.Fch1)
	fmt.Fprintf(w, "foff\t%.6f MHz\n", h.Foff)
	fmt.Fprintf(w, "nchans\t%d\n", h.Nchans)
	fmt.Fprintf(w, "tsamp\t%g s\n", h.Tsamp)
	fmt.Fprintf(w, "nspectra\t%d\n", h.Nspectra)
	if h.Tstart != 0 {
		fmt.Fprintf(w, "tstart\t%.8f MJD\n", h.Tstart)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if infoASCII {
		fmt.Println()
		fmt.Println(bandpass.ASCII(obs.Bandpass(), nil, 80, 12))
	}
	return nil
}

func runDecimate(cmd *cobra.Command, args []string) error {
	a, err := selectedAxis()
	if err != nil {
		return err
	}
	obs, ref, err := st.Open(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.PadOptions()
	if err != nil {
		return err
	}
	out, err := obs.Decimate(a, factor, pad, opts...)
	if err != nil {
		return err
	}
	return emit(out, "decimate", ref, map[string]any{"axis": axis, "factor": factor, "pad": pad})
}

func runResize(cmd *cobra.Command, args []string) error {
	a, err := selectedAxis()
	if err != nil {
		return err
	}
	obs, ref, err := st.Open(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.ResizeOptions()
	if err != nil {
		return err
	}
	out, err := obs.Resize(a, size, opts...)
	if err != nil {
		return err
	}
	return emit(out, "resize", ref, map[string]any{"axis": axis, "size": size, "order": cfg.Resize.Order})
}

func runCrop(cmd *cobra.Command, args []string) error {
	a, err := selectedAxis()
	if err != nil {
		return err
	}
	obs, ref, err := st.Open(args[0])
	if err != nil {
		return err
	}
	out, err := obs.Crop(a, start, length)
	if err != nil {
		return err
	}
	return emit(out, "crop", ref, map[string]any{"axis": axis, "start": start, "length": length})
}

func runPad(cmd *cobra.Command, args []string) error {
	a, err := selectedAxis()
	if err != nil {
		return err
	}
	obs, ref, err := st.Open(args[0])
	if err != nil {
		return err
	}
	opts, err := cfg.PadOptions()
	if err != nil {
		return err
	}
	out, err := obs.Pad(a, target, opts...)
	if err != nil {
		return err
	}
	return emit(out, "pad", ref, map[string]any{
		"axis": axis, "target": target, "loc": cfg.Pad.Location, "mode": cfg.Pad.Mode,
	})
}

func plotBandpass(cmd *cobra.Command, args []string) error {
	obs, _, err := st.Open(args[0])
	if err != nil {
		return err
	}
	bp := obs.Bandpass()

	mask, err := buildMask(len(bp))
	if err != nil {
		return err
	}
	if autoFlag > 0 {
		for i, bad := range flagger.AutoFlag(bp, autoFlag) {
			mask[i] = mask[i] || bad
		}
	}

	dir := cfg.Plot.OutDir
	if outDir != "" {
		dir = outDir
	}
	name := outName
	if name == "" && cfg.Plot.Format != "" && cfg.Plot.Format != config.DefaultPlotFormat {
		name = strings.TrimSuffix(bandpass.OutputPath(obs, bandpass.WithOutDir(dir)), ".png") + "." + cfg.Plot.Format
	}

	path, err := bandpass.Save(obs, bp,
		bandpass.WithMask(mask),
		bandpass.WithOutDir(dir),
		bandpass.WithOutName(name),
		bandpass.WithSize(vg.Length(cfg.Plot.Width)*vg.Inch, vg.Length(cfg.Plot.Height)*vg.Inch),
	)
	if err != nil {
		return err
	}
	fmt.Printf("saved %s\n", path)

	if ascii {
		fmt.Println(bandpass.ASCII(bp, mask, 80, 12))
	}
	return nil
}

func runFlagger(cmd *cobra.Command, args []string) error {
	obs, _, err := st.Open(args[0])
	if err != nil {
		return err
	}
	bp := obs.Bandpass()

	initial, err := buildMask(len(bp))
	if err != nil {
		return err
	}
	mask, err := flagger.Run(bp, obs.ChanFreqs(), initial, threshold)
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = obs.Basename() + "_mask.json"
	}
	if err := writeMask(path, mask); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d flagged)\n", path, bandpass.Flagged(mask))
	return nil
}

func listProducts(cmd *cobra.Command, args []string) error {
	products, err := st.List()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Println("no products")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOPERATION\tSHAPE\tPARENT\tTIME")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%s\n",
			p.ID, p.Operation, p.Header.Nspectra, p.Header.Nchans, p.Parent,
			p.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportProduct(cmd *cobra.Command, args []string) error {
	obs, _, err := st.Open(args[0])
	if err != nil {
		return err
	}
	if err := store.WriteFile(outFile, obs); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func writeMask(path string, mask []bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := jsonenc.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(flaggedChannels(mask)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
