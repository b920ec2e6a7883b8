package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plotwin/interactive"
	"github.com/san-kum/plotwin/internal/config"
	"github.com/san-kum/plotwin/internal/dataio"
	"github.com/san-kum/plotwin/themes"
	"github.com/spf13/cobra"
)

var (
	win       int
	themeName string
	title     string
	width     int
	height    int
	live      bool
	bins      int
	colormap  string
	levels    int
	// Column selection for csv input
	xCol int
	yCol int
	// Config file
	configFile string
)

// main registers the plotwin subcommands and executes the root
// command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "plotwin",
		Short: "interactive terminal plotting windows",
	}

	rootCmd.PersistentFlags().IntVar(&win, "win", 1, "window number")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "color theme")
	rootCmd.PersistentFlags().StringVar(&title, "title", "", "plot title")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "window width in columns")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "window height in rows")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	plotCmd := &cobra.Command{
		Use:   "plot [file.csv]",
		Short: "plot columns from a csv file",
		Args:  cobra.ExactArgs(1),
		RunE:  plotFile,
	}
	plotCmd.Flags().BoolVar(&live, "live", false, "open an interactive window")
	plotCmd.Flags().IntVar(&xCol, "x", 0, "x column index")
	plotCmd.Flags().IntVar(&yCol, "y", 1, "y column index")

	histCmd := &cobra.Command{
		Use:   "hist [file.csv]",
		Short: "histogram of a csv column",
		Args:  cobra.ExactArgs(1),
		RunE:  histFile,
	}
	histCmd.Flags().BoolVar(&live, "live", false, "open an interactive window")
	histCmd.Flags().IntVar(&yCol, "y", 0, "column index")
	histCmd.Flags().IntVar(&bins, "bins", config.DefaultBins, "number of bins")

	imshowCmd := &cobra.Command{
		Use:   "imshow [file.csv]",
		Short: "display a csv grid as a false-color image",
		Args:  cobra.ExactArgs(1),
		RunE:  imshowFile,
	}
	imshowCmd.Flags().BoolVar(&live, "live", false, "open an interactive window")
	imshowCmd.Flags().StringVar(&colormap, "colormap", "", "colormap name")

	contourCmd := &cobra.Command{
		Use:   "contour [file.csv]",
		Short: "display a csv grid as contours",
		Args:  cobra.ExactArgs(1),
		RunE:  contourFile,
	}
	contourCmd.Flags().BoolVar(&live, "live", false, "open an interactive window")
	contourCmd.Flags().StringVar(&colormap, "colormap", "", "colormap name")
	contourCmd.Flags().IntVar(&levels, "levels", 7, "number of contour levels")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "open demo windows",
		RunE:  runDemo,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list available themes",
		RunE:  listThemes,
	}

	configCmd := &cobra.Command{
		Use:   "config init [path]",
		Short: "write a default config file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  configInit,
	}

	rootCmd.AddCommand(plotCmd, histCmd, imshowCmd, contourCmd, demoCmd, themesCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyConfig loads the config file, if any, and folds it into flags
// the user did not set explicitly.
func applyConfig(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("theme") && themeName == "" {
		themeName = cfg.Theme
	}
	if !cmd.Flags().Changed("width") {
		width = cfg.Width
	}
	if !cmd.Flags().Changed("height") {
		height = cfg.Height
	}
	if f := cmd.Flags().Lookup("bins"); f != nil && !f.Changed {
		bins = cfg.Plot.Bins
	}
	if f := cmd.Flags().Lookup("colormap"); f != nil && !f.Changed && colormap == "" {
		colormap = cfg.Image.Colormap
	}
	if f := cmd.Flags().Lookup("levels"); f != nil && !f.Changed {
		levels = cfg.Image.Levels
	}
	return nil
}

func baseOpts() []interactive.Option {
	opts := []interactive.Option{
		interactive.Win(win),
		interactive.Size(width, height),
	}
	if themeName != "" {
		opts = append(opts, interactive.Theme(themeName))
	}
	if title != "" {
		opts = append(opts, interactive.Title(title))
	}
	return opts
}

func plotFile(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	cols, err := dataio.ReadColumns(args[0])
	if err != nil {
		return err
	}
	x, err := cols.Column(xCol)
	if err != nil {
		return err
	}
	y, err := cols.Column(yCol)
	if err != nil {
		return err
	}

	if !live {
		caption := title
		if caption == "" {
			caption = fmt.Sprintf("%s vs %s", cols.Name(yCol), cols.Name(xCol))
		}
		graph := asciigraph.Plot(y,
			asciigraph.Height(height-4),
			asciigraph.Width(width-10),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		return nil
	}

	opts := append(baseOpts(),
		interactive.XLabel(cols.Name(xCol)),
		interactive.YLabel(cols.Name(yCol)),
		interactive.Label(cols.Name(yCol)),
	)
	if _, err := interactive.Plot(x, y, opts...); err != nil {
		return err
	}
	return interactive.MainLoop()
}

func histFile(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	cols, err := dataio.ReadColumns(args[0])
	if err != nil {
		return err
	}
	values, err := cols.Column(yCol)
	if err != nil {
		return err
	}

	if !live {
		counts := make([]float64, bins)
		lo, hi := values[0], values[0]
		for _, v := range values {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		span := hi - lo
		if span == 0 {
			span = 1
		}
		for _, v := range values {
			b := int(float64(bins) * (v - lo) / span)
			if b >= bins {
				b = bins - 1
			}
			counts[b]++
		}
		graph := asciigraph.Plot(counts,
			asciigraph.Height(height-4),
			asciigraph.Width(width-10),
			asciigraph.Caption(fmt.Sprintf("%s histogram (%d bins)", cols.Name(yCol), bins)),
		)
		fmt.Println(graph)
		return nil
	}

	opts := append(baseOpts(),
		interactive.Bins(bins),
		interactive.Label(cols.Name(yCol)),
	)
	if _, err := interactive.Hist(values, opts...); err != nil {
		return err
	}
	return interactive.MainLoop()
}

func imshowFile(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	grid, err := dataio.ReadGrid(args[0])
	if err != nil {
		return err
	}

	opts := baseOpts()
	if colormap != "" {
		opts = append(opts, interactive.Colormap(colormap))
	}
	d, err := interactive.ImShow(grid, opts...)
	if err != nil {
		return err
	}

	if !live {
		fmt.Println(d.Render(width, height))
		d.RequestClose()
		return nil
	}
	return interactive.MainLoop()
}

func contourFile(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	grid, err := dataio.ReadGrid(args[0])
	if err != nil {
		return err
	}

	opts := append(baseOpts(), interactive.Levels(levels))
	if colormap != "" {
		opts = append(opts, interactive.Colormap(colormap))
	}
	d, err := interactive.Contour(grid, opts...)
	if err != nil {
		return err
	}

	if !live {
		fmt.Println(d.Render(width, height))
		d.RequestClose()
		return nil
	}
	return interactive.MainLoop()
}

func runDemo(cmd *cobra.Command, args []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}

	n := 200
	x := make([]float64, n)
	sine := make([]float64, n)
	damped := make([]float64, n)
	for i := range x {
		t := float64(i) * 4 * math.Pi / float64(n-1)
		x[i] = t
		sine[i] = math.Sin(t)
		damped[i] = math.Sin(3*t) * math.Exp(-t/4)
	}

	opts := append(baseOpts(),
		interactive.Title("waveforms"),
		interactive.XLabel("t"),
	)
	if _, err := interactive.Plot(x, sine, append(opts, interactive.Label("sin(t)"))...); err != nil {
		return err
	}
	if _, err := interactive.Plot(x, damped,
		interactive.Win(win), interactive.Label("damped"), interactive.LineStyle("dotted")); err != nil {
		return err
	}
	interactive.AxHLine(0.0)

	size := 48
	grid := make([][]float64, size)
	for i := range grid {
		grid[i] = make([]float64, size)
		for j := range grid[i] {
			dx := float64(j-size/2) / 8
			dy := float64(i-size/2) / 8
			grid[i][j] = math.Exp(-(dx*dx + dy*dy)) * math.Sin(dx*3)
		}
	}
	imOpts := []interactive.Option{
		interactive.Win(win + 1),
		interactive.Size(width, height),
		interactive.Title("gaussian ripple"),
	}
	if themeName != "" {
		imOpts = append(imOpts, interactive.Theme(themeName))
	}
	if _, err := interactive.ImShow(grid, imOpts...); err != nil {
		return err
	}

	return interactive.MainLoop()
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEFAULT")
	def := themes.Default().Name
	for _, name := range interactive.AvailableThemes() {
		mark := ""
		if name == def {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\n", name, mark)
	}
	return w.Flush()
}

func configInit(cmd *cobra.Command, args []string) error {
	if args[0] != "init" {
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
	path := "plotwin.yaml"
	if len(args) > 1 {
		path = args[1]
	}
	cfg := config.DefaultConfig()
	if themeName != "" {
		if _, err := themes.Get(themeName); err != nil {
			return err
		}
		cfg.Theme = themeName
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
