package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/midbel/cli"
	"github.com/midbel/snapcharts/axis"
	"github.com/midbel/snapcharts/chart"
	"github.com/midbel/snapcharts/config"
	"github.com/midbel/snapcharts/csv"
	"github.com/midbel/snapcharts/dataset"
	"github.com/midbel/snapcharts/doc"
	"github.com/midbel/snapcharts/format"
	"github.com/midbel/snapcharts/layout"
	"github.com/midbel/snapcharts/render"
	"github.com/sirupsen/logrus"
)

var errFail = errors.New("fail")

var (
	summary = "snapcharts computes axis ticks and data ranges of charts"
	help    = ""
)

func main() {
	var (
		set  = cli.NewFlagSet("snapcharts")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"ticks"}, &ticksCmd)
	root.Register([]string{"explicit"}, &explicitCmd)
	root.Register([]string{"range"}, &rangeCmd)
	root.Register([]string{"axes"}, &axesCmd)
	return root
}

var ticksCmd = cli.Command{
	Name:    "ticks",
	Alias:   []string{"intervals"},
	Summary: "compute pleasing ticks for a range drawn on an axis",
	Usage:   "ticks [-f config] [-l length] [-s spacing] [-m] [-M] [-p pattern] [-c] <min> <max>",
	Handler: &TicksCommand{},
}

var explicitCmd = cli.Command{
	Name:    "explicit",
	Summary: "compute ticks separated by a given spacing",
	Usage:   "explicit [-f config] [-s spacing] [-n divisions] [-b min|max|value] [-m] [-M] [-c] <min> <max>",
	Handler: &ExplicitCommand{},
}

var rangeCmd = cli.Command{
	Name:    "range",
	Alias:   []string{"minmax"},
	Summary: "print the min and max of columns of a csv file",
	Usage:   "range [-d delimiter] [-H] [-k] <file.csv> <x> <columns>",
	Handler: &RangeCommand{},
}

var axesCmd = cli.Command{
	Name:    "axes",
	Summary: "render every axis of a chart",
	Usage:   "axes [-f config] [-d delimiter] [-w width] <chart.xml> <data.csv>",
	Handler: &AxesCommand{},
}

type flagSet interface {
	StringVar(*string, string, string, string)
	BoolVar(*bool, string, bool, string)
	IntVar(*int, string, int, string)
}

type settings struct {
	Config string
	CSV    bool
	Width  int
}

func (s *settings) register(set flagSet) {
	set.StringVar(&s.Config, "f", "", "configuration file")
	set.BoolVar(&s.CSV, "c", false, "print ticks as csv")
	set.IntVar(&s.Width, "w", 0, "width of the rendered axis")
}

func (s *settings) load() (*config.Config, error) {
	cfg := config.Default()
	if s.Config != "" {
		var err error
		if cfg, err = config.Load(s.Config); err != nil {
			return nil, err
		}
	}
	if s.Width > 0 {
		cfg.Layout.Width = s.Width
	}
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(lvl)
	return cfg, nil
}

func (s *settings) print(w io.Writer, cfg *config.Config, title string, set *axis.IntervalSet, labels []string) error {
	if s.CSV {
		return writeTicks(w, set, labels)
	}
	r := render.Plain(cfg.Layout.Width)
	if cfg.Layout.Styled {
		r = render.Styled(cfg.Layout.Width)
	}
	_, err := fmt.Fprintln(w, r.Render(title, set, labels))
	return err
}

type TicksCommand struct {
	settings
	Length   float64
	Spacing  float64
	MinFixed bool
	MaxFixed bool
	Pattern  string
}

func (c TicksCommand) Run(args []string) error {
	set := cli.NewFlagSet("ticks")
	c.register(set)
	set.Func("l", "axis length in pixels", floatFlag(&c.Length))
	set.Func("s", "min spacing between ticks in pixels", floatFlag(&c.Spacing))
	set.BoolVar(&c.MinFixed, "m", false, "keep min as first tick")
	set.BoolVar(&c.MaxFixed, "M", false, "keep max as last tick")
	set.StringVar(&c.Pattern, "p", "", "label pattern")
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg, err := c.load()
	if err != nil {
		return err
	}
	min, max, err := parseBounds(set.Args())
	if err != nil {
		return err
	}
	if c.Length <= 0 {
		c.Length = cfg.Layout.Length
	}
	if c.Spacing <= 0 {
		c.Spacing = cfg.Layout.Spacing
	}
	if c.Pattern == "" {
		c.Pattern = cfg.Pattern(false)
	}
	ticks := axis.Generate(min, max, c.Length, c.Spacing, c.MinFixed, c.MaxFixed)
	labels, err := makeLabels(ticks, c.Pattern)
	if err != nil {
		return err
	}
	return c.print(os.Stdout, cfg, "", ticks, labels)
}

type ExplicitCommand struct {
	settings
	Spacing   float64
	Divisions int
	Base      float64
	MinFixed  bool
	MaxFixed  bool
}

func (c ExplicitCommand) Run(args []string) error {
	c.Base = axis.AlignMin

	set := cli.NewFlagSet("explicit")
	c.register(set)
	set.Func("s", "spacing between ticks", floatFlag(&c.Spacing))
	set.IntVar(&c.Divisions, "n", 0, "number of divisions")
	set.Func("b", "alignment of ticks (min, max or a value)", func(str string) error {
		base, err := doc.ParseBase(str)
		if err == nil {
			c.Base = base
		}
		return err
	})
	set.BoolVar(&c.MinFixed, "m", false, "keep min as first tick")
	set.BoolVar(&c.MaxFixed, "M", false, "keep max as last tick")
	if err := set.Parse(args); err != nil {
		return err
	}
	cfg, err := c.load()
	if err != nil {
		return err
	}
	min, max, err := parseBounds(set.Args())
	if err != nil {
		return err
	}
	if c.Divisions > 0 {
		c.Spacing = -float64(c.Divisions)
	}
	ticks := axis.GenerateExplicit(min, max, c.Spacing, c.Base, c.MinFixed, c.MaxFixed)
	labels, err := makeLabels(ticks, cfg.Pattern(false))
	if err != nil {
		return err
	}
	return c.print(os.Stdout, cfg, "", ticks, labels)
}

type RangeCommand struct {
	Delimiter string
	Header    bool
	Skip      bool
}

func (c RangeCommand) Run(args []string) error {
	set := cli.NewFlagSet("range")
	set.StringVar(&c.Delimiter, "d", "", "csv field delimiter")
	set.BoolVar(&c.Header, "H", false, "first line is a header")
	set.BoolVar(&c.Skip, "k", false, "skip blank cells instead of reading them as 0")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 3 {
		return fmt.Errorf("invalid number of arguments")
	}
	tb, err := readTable(set.Arg(0), c.Delimiter, c.Header)
	if err != nil {
		return err
	}
	xs, err := tb.Lookup(set.Arg(1))
	if err != nil {
		return err
	}
	sel, err := layout.SelectionFromString(set.Arg(2))
	if err != nil {
		return err
	}
	var (
		x    = dataset.ParseColumn(tb.Column(xs))
		list = dataset.NewTraceList()
	)
	for i, col := range tb.Columns(sel) {
		var (
			y    = dataset.ParseColumn(col)
			data dataset.Series
		)
		if c.Skip {
			data = dataset.NewSparseData(x, y, nil)
		} else {
			data = dataset.NewRawData(x, y, nil)
		}
		list.Add(dataset.NewTrace(strconv.Itoa(i), data))
	}
	if list.Len() == 0 {
		return fmt.Errorf("%s: no column selected", set.Arg(2))
	}
	fmt.Fprintln(os.Stdout, dataset.X, list.MinMax(dataset.X))
	fmt.Fprintln(os.Stdout, dataset.Y, list.MinMax(dataset.Y))
	return nil
}

type AxesCommand struct {
	settings
	Delimiter string
}

func (c AxesCommand) Run(args []string) error {
	set := cli.NewFlagSet("axes")
	c.register(set)
	set.StringVar(&c.Delimiter, "d", "", "csv field delimiter")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() != 2 {
		return fmt.Errorf("invalid number of arguments")
	}
	cfg, err := c.load()
	if err != nil {
		return err
	}
	tb, err := readTable(set.Arg(1), c.Delimiter, true)
	if err != nil {
		return err
	}
	ch, err := doc.Open(set.Arg(0), tb)
	if err != nil {
		return err
	}
	if ch.Title != "" {
		fmt.Fprintln(os.Stdout, ch.Title)
		fmt.Fprintln(os.Stdout)
	}
	for _, id := range ch.Channels() {
		if err := c.printAxis(ch, id, cfg); err != nil {
			return err
		}
	}
	return nil
}

func (c AxesCommand) printAxis(ch *chart.Chart, id dataset.Channel, cfg *config.Config) error {
	var (
		ax    = ch.Axis(id)
		ticks = ch.Intervals(id, cfg.Layout.Length, cfg.Layout.Spacing)
	)
	if ax.Format == "" {
		ax.Format = cfg.Pattern(ax.Time)
	}
	labels, err := ch.Labels(id, ticks)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s %s", id, ch.Range(id))
	if ax.Title != "" {
		title = fmt.Sprintf("%s (%s)", title, ax.Title)
	}
	if err := c.print(os.Stdout, cfg, title, ticks, labels); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

func writeTicks(w io.Writer, set *axis.IntervalSet, labels []string) error {
	ws := csv.NewWriter(w)
	if err := ws.Write([]string{"index", "value", "label", "full"}); err != nil {
		return err
	}
	for i, v := range set.Values {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(v, 'g', -1, 64),
			labels[i],
			strconv.FormatBool(set.IsFullInterval(i)),
		}
		if err := ws.Write(row); err != nil {
			return err
		}
	}
	return ws.Flush()
}

func makeLabels(set *axis.IntervalSet, pattern string) ([]string, error) {
	f, err := format.Pick(pattern, set.Delta, false)
	if err != nil {
		return nil, err
	}
	return format.Labels(set.Values, f), nil
}

func readTable(file, delimiter string, header bool) (*csv.Table, error) {
	comma, err := csv.ParseSeparator(delimiter)
	if err != nil {
		return nil, err
	}
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return csv.ReadTable(r, comma, header)
}

func parseBounds(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("min and max expected")
	}
	min, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("min: %w", err)
	}
	max, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("max: %w", err)
	}
	return min, max, nil
}

func floatFlag(ptr *float64) func(string) error {
	return func(str string) error {
		v, err := strconv.ParseFloat(str, 64)
		if err == nil {
			*ptr = v
		}
		return err
	}
}
