// Package runner parses the CLI flag surface and drives a scan end to end.
package runner

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/projectdiscovery/fasttemplate"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"

	patscan "github.com/jclyne/pattern-scanner"
	"github.com/jclyne/pattern-scanner/dfa"
	"github.com/jclyne/pattern-scanner/patterns"
)

// DefaultTemplate renders one match per line.
const DefaultTemplate = "{{id}} {{name}} {{pos}} {{text}}"

// Options is the parsed CLI flag set.
type Options struct {
	Input        string
	PatternsFile string
	LoadContext  string
	SaveContext  string
	Output       string
	Template     string
	DotFile      string
	Verbose      bool
	Silent       bool
	ShowStats    bool
}

// ParseFlags reads the command line.
func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Multi-pattern streaming text scanner built on regex derivatives.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "", "input file to scan (stdin if omitted)"),
		flagSet.StringVarP(&opts.PatternsFile, "patterns", "p", "", "pattern definition file (xml or yaml)"),
		flagSet.StringVarP(&opts.LoadContext, "load-context", "lc", "", "load a compiled scanner context instead of compiling patterns"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file for matches (stdout if omitted)"),
		flagSet.StringVarP(&opts.Template, "template", "t", DefaultTemplate, "match output template ({{id}} {{name}} {{pos}} {{text}})"),
		flagSet.StringVarP(&opts.SaveContext, "save-context", "sc", "", "write the compiled scanner context to a file"),
		flagSet.StringVarP(&opts.DotFile, "dot", "d", "", "write the state graph in DOT syntax to a file"),
		flagSet.BoolVarP(&opts.ShowStats, "stats", "st", false, "print automaton statistics"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display matches only"),
		flagSet.CallbackVar(printVersion, "version", "display version"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.PatternsFile == "" && opts.LoadContext == "" {
		gologger.Fatal().Msgf("either -patterns or -load-context is required")
	}
	return opts
}

// Run builds the context and streams the input through a scanner.
func Run(opts *Options) error {
	ctxt, err := buildContext(opts)
	if err != nil {
		return err
	}

	if opts.ShowStats {
		stats := ctxt.DFA().Stats()
		gologger.Info().Msgf("automaton: %d states (%d accepting, %d final)",
			stats.States, stats.Accepting, stats.Final)
	}
	if opts.SaveContext != "" {
		if err := saveContext(ctxt, opts.SaveContext); err != nil {
			return err
		}
		gologger.Info().Msgf("saved compiled context to %s", opts.SaveContext)
	}
	if opts.DotFile != "" {
		if err := writeDot(ctxt, opts.DotFile); err != nil {
			return err
		}
	}

	in, closeIn, err := openInput(opts)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(opts)
	if err != nil {
		return err
	}
	defer closeOut()

	return scan(ctxt, in, out, opts.Template)
}

func buildContext(opts *Options) (*patscan.ScannerCtxt, error) {
	if opts.LoadContext != "" {
		f, err := os.Open(opts.LoadContext)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		ctxt, err := patscan.LoadContext(f)
		if err != nil {
			return nil, err
		}
		gologger.Verbose().Msgf("loaded compiled context with %d patterns", len(ctxt.Patterns()))
		return ctxt, nil
	}

	defs, err := patterns.LoadFile(opts.PatternsFile)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("loaded %d pattern definitions from %s", len(defs), opts.PatternsFile)
	return patscan.NewContext(defs), nil
}

func saveContext(ctxt *patscan.ScannerCtxt, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ctxt.Save(f)
}

func writeDot(ctxt *patscan.ScannerCtxt, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return dfa.WriteDot(f, ctxt.DFA())
}

func openInput(opts *Options) (io.Reader, func(), error) {
	if opts.Input == "" {
		if !fileutil.HasStdin() {
			gologger.Fatal().Msgf("no input: pass -input or pipe data on stdin")
		}
		return os.Stdin, func() {}, nil
	}
	if !fileutil.FileExists(opts.Input) {
		gologger.Fatal().Msgf("input file %s does not exist", opts.Input)
	}
	f, err := os.Open(opts.Input)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(opts *Options) (io.Writer, func(), error) {
	if opts.Output == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// scan streams runes from in, rendering each match through the template.
func scan(ctxt *patscan.ScannerCtxt, in io.Reader, out io.Writer, template string) error {
	sc := ctxt.NewScanner()
	w := bufio.NewWriter(out)
	defer w.Flush()

	emit := func(matches []patscan.Match) {
		for _, m := range matches {
			w.WriteString(renderMatch(template, m))
			w.WriteByte('\n')
		}
	}

	r := bufio.NewReader(in)
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		emit(sc.UpdateRune(c))
	}
	emit(sc.Complete())
	return nil
}

func renderMatch(template string, m patscan.Match) string {
	return fasttemplate.ExecuteStringStd(template, "{{", "}}", map[string]interface{}{
		"id":   m.ID.String(),
		"name": m.Name,
		"pos":  strconv.Itoa(m.Pos),
		"text": m.Text,
	})
}
