// Package main implements the typycheck command.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/you-not-fish/typycheck/internal/config"
	"github.com/you-not-fish/typycheck/internal/syntax"
	"github.com/you-not-fish/typycheck/internal/types"
	"github.com/you-not-fish/typycheck/internal/types2"
	"github.com/you-not-fish/typycheck/internal/vcs"
)

// Command flags
var (
	emitAST      = flag.Bool("emit-ast", false, "Output AST")
	astFormat    = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTypedAST = flag.Bool("emit-typed-ast", false, "Output AST annotated with inferred types")
	dumpFormat   = flag.String("dump", "", "Context dump format on success (text, json or yaml)")
	quiet        = flag.Bool("q", false, "Do not dump the context on success")
	permissive   = flag.Bool("permissive", false, "Skip uninferable values and unknown annotations")
	configPath   = flag.String("config", "", "Path to "+config.FileName+" (default: discovered upward)")
	changed      = flag.Bool("changed", false, "Check modified and untracked .py files of the enclosing git worktree")
	rev          = flag.String("rev", "", "Read file contents at a git revision")
	trace        = flag.Bool("trace", false, "Output timing trace")
	version      = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

// options are the settings for one run, after merging flags over the config file.
type options struct {
	permissive bool
	dump       string
	aliases    map[string]string
	multi      bool // more than one input file
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typycheck %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: typycheck [options] <file.py>...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("typycheck version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	opts, err := loadOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	files, err := inputFiles(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		if *changed {
			tracef("no changed Python files")
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: typycheck [options] <file.py>...")
		os.Exit(1)
	}
	opts.multi = len(files) > 1

	code := 0
	for _, filename := range files {
		var rc int
		switch {
		case *emitAST:
			rc = runEmitAST(filename)
		case *emitTypedAST:
			rc = runEmitTypedAST(filename, opts)
		default:
			rc = runCheck(filename, opts)
		}
		if rc != 0 {
			code = rc
		}
	}
	os.Exit(code)
}

// loadOptions reads the config file and applies explicitly set flags over it.
func loadOptions() (*options, error) {
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadNearest(".")
	}
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		tracef("config %s", cfg.Path)
	}

	opts := &options{
		permissive: cfg.Permissive,
		dump:       cfg.DumpFormat(),
		aliases:    cfg.Aliases,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "permissive":
			opts.permissive = *permissive
		case "dump":
			opts.dump = *dumpFormat
		}
	})
	switch opts.dump {
	case config.DumpText, config.DumpJSON, config.DumpYAML:
	default:
		return nil, fmt.Errorf("unknown dump format %q", opts.dump)
	}
	return opts, nil
}

// inputFiles returns the files named on the command line, or the changed
// files of the enclosing worktree with -changed.
func inputFiles(args []string) ([]string, error) {
	if !*changed {
		return args, nil
	}
	repo, err := vcs.Open(".")
	if err != nil {
		return nil, err
	}
	files, err := repo.ChangedFiles()
	if err != nil {
		return nil, err
	}
	tracef("%d changed file(s) in %s", len(files), repo.Root())
	return append(files, args...), nil
}

// readSource returns the file contents from disk, or from git with -rev.
func readSource(filename string) ([]byte, error) {
	if *rev == "" {
		return os.ReadFile(filename)
	}
	repo, err := vcs.Open(filepath.Dir(filename))
	if err != nil {
		return nil, err
	}
	return repo.ReadAt(*rev, filename)
}

// parseFile reads and parses filename, reporting syntax errors to stderr.
// It returns nil if the file could not be read or parsed cleanly.
func parseFile(filename string) *syntax.File {
	start := time.Now()
	src, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil
	}

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}
	p := syntax.NewParser(filename, bytes.NewReader(src), errh)
	ast := p.Parse()
	tracef("parse %s: %d statement(s) in %v", filename, len(ast.Stmts), time.Since(start))

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(errs) > 0 {
		return nil
	}
	return ast
}

// check runs the type checker on a parsed file.
func check(filename string, ast *syntax.File, opts *options, info *types2.Info) (*types.Context, bool) {
	start := time.Now()
	conf := &types2.Config{
		Error: func(pos syntax.Pos, msg string) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", pos, msg)
		},
		Permissive: opts.permissive,
		Aliases:    opts.aliases,
	}
	ctx, err := types2.Check(filename, ast, conf, info)
	tracef("check %s: %d variable(s) in %v", filename, ctx.Len(), time.Since(start))
	return ctx, err == nil
}

// runCheck parses and checks filename, dumping the context on success.
func runCheck(filename string, opts *options) int {
	ast := parseFile(filename)
	if ast == nil {
		return 1
	}
	ctx, ok := check(filename, ast, opts, nil)
	if !ok {
		return 1
	}
	if *quiet {
		return 0
	}
	if err := writeDump(os.Stdout, filename, ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	src, err := readSource(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := syntax.NewParser(filename, bytes.NewReader(src), errh)
	ast := p.Parse()

	// Print errors first
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	// Output AST
	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// runEmitTypedAST parses, type-checks, and outputs the typed AST.
// The tree is printed even when checking stops early.
func runEmitTypedAST(filename string, opts *options) int {
	ast := parseFile(filename)
	if ast == nil {
		return 1
	}

	info := &types2.Info{}
	_, ok := check(filename, ast, opts, info)

	syntax.FprintAnnotated(os.Stdout, ast, func(e syntax.Expr) string {
		if set, ok := info.Types[e]; ok {
			if set.Len() == 0 {
				return "?"
			}
			return set.String()
		}
		return ""
	})

	if !ok {
		return 1
	}
	return 0
}

// tracef logs a progress line to stderr when -trace is set.
func tracef(format string, args ...interface{}) {
	if *trace {
		fmt.Fprintf(os.Stderr, "trace: "+format+"\n", args...)
	}
}
