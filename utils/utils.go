package utils

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"imagefilter/config"
	"imagefilter/types"
)

// Exit codes. A run that matches nothing still exits with ExitOK.
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// Arguments holds the parsed command line
type Arguments struct {
	Directory      string
	MetadataPath   string
	ScoreFilters   []string
	WidthRange     string
	HeightRange    string
	NodeType       types.NodeType
	ConfigPath     string
	GenerateConfig bool
	Verbosity      int
	Quiet          bool
	LogFile        string
	Workers        int
	Help           bool
}

// Overrides returns the values that take precedence over the configuration file
func (a Arguments) Overrides() config.Overrides {
	return config.Overrides{
		Directory:    a.Directory,
		MetadataPath: a.MetadataPath,
		ScoreFilters: a.ScoreFilters,
		WidthRange:   a.WidthRange,
		HeightRange:  a.HeightRange,
		Workers:      a.Workers,
	}
}

// stringList collects a repeatable string flag
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// counter counts occurrences of a boolean flag
type counter int

func (c *counter) String() string { return strconv.Itoa(int(*c)) }

func (c *counter) Set(v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	if b {
		*c++
	}
	return nil
}

func (c *counter) IsBoolFlag() bool { return true }

// ParseArguments parses command-line arguments, without the program name
func ParseArguments(args []string) (Arguments, error) {
	var a Arguments
	var scores stringList
	var verbosity counter
	nodeType := string(types.NodeImage)

	fs := flag.NewFlagSet("imagefilter", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	for _, name := range []string{"dir", "d"} {
		fs.StringVar(&a.Directory, name, "", "root directory to search")
	}
	for _, name := range []string{"metadata", "m"} {
		fs.StringVar(&a.MetadataPath, name, "", "metadata file")
	}
	for _, name := range []string{"score", "s"} {
		fs.Var(&scores, name, "score filter, repeatable")
	}
	fs.StringVar(&a.WidthRange, "width", "", "width range MIN..MAX")
	fs.StringVar(&a.HeightRange, "height", "", "height range MIN..MAX")
	for _, name := range []string{"type", "t"} {
		fs.StringVar(&nodeType, name, nodeType, "node type to list: image or dir")
	}
	for _, name := range []string{"config", "c"} {
		fs.StringVar(&a.ConfigPath, name, "", "configuration file")
	}
	fs.BoolVar(&a.GenerateConfig, "generate-config", false, "print the default configuration and exit")
	fs.Var(&verbosity, "v", "increase log verbosity, repeatable")
	fs.BoolVar(&a.Quiet, "q", false, "only log errors")
	fs.StringVar(&a.LogFile, "logfile", "", "append debug logs to this file")
	fs.IntVar(&a.Workers, "workers", 0, "concurrent dimension probes, 0 picks from CPU count")

	// flag stops at the first non-flag argument, so take it aside and keep going
	var positional []string
	rest := expandShortFlags(args)
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				a.Help = true
				return a, nil
			}
			return a, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			break
		}
		if consumed := len(rest) - len(remaining); consumed > 0 && rest[consumed-1] == "--" {
			positional = append(positional, remaining...)
			break
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}

	switch len(positional) {
	case 0:
	case 1:
		if a.Directory != "" {
			return a, fmt.Errorf("directory given twice: %q and %q", a.Directory, positional[0])
		}
		a.Directory = positional[0]
	default:
		return a, fmt.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}

	nt, ok := types.ParseNodeType(nodeType)
	if !ok {
		return a, fmt.Errorf("invalid node type %q, expected image or dir", nodeType)
	}
	if a.Workers < 0 {
		return a, fmt.Errorf("workers must not be negative, got %d", a.Workers)
	}

	a.NodeType = nt
	a.ScoreFilters = scores
	a.Verbosity = int(verbosity)
	return a, nil
}

// expandShortFlags turns -vv into -v -v
func expandShortFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if len(arg) > 2 && strings.HasPrefix(arg, "-") && strings.Trim(arg[1:], "v") == "" {
			for range arg[1:] {
				out = append(out, "-v")
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage(w io.Writer) {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  %s [DIR] [--metadata=PATH] [--score=EXPR ...] [--width=MIN..MAX] [--height=MIN..MAX] [--type=image|dir] [-v]\n", prog)
	fmt.Fprintf(w, "  %s --generate-config\n", prog)
	fmt.Fprintf(w, "\nParameters:\n")
	fmt.Fprintf(w, "  --dir, -d        : Root directory to search (default: root_images_dir from config)\n")
	fmt.Fprintf(w, "  --metadata, -m   : Metadata file, .json, .yaml/.yml or .db/.sqlite (default: metadata_path from config)\n")
	fmt.Fprintf(w, "  --score, -s      : Score filter such as 'score >= 5.0'; repeat to AND several\n")
	fmt.Fprintf(w, "  --width          : Inclusive width range, e.g. 200..1000, 200.. or ..1000\n")
	fmt.Fprintf(w, "  --height         : Inclusive height range, same form as --width\n")
	fmt.Fprintf(w, "  --type, -t       : List images (default) or directories\n")
	fmt.Fprintf(w, "  --config, -c     : Configuration file (default: %s)\n", defaultConfigPath())
	fmt.Fprintf(w, "  --generate-config: Print the default configuration and exit\n")
	fmt.Fprintf(w, "  --workers        : Concurrent dimension probes (default: from CPU count)\n")
	fmt.Fprintf(w, "  --logfile        : Append debug logs as JSON to this file\n")
	fmt.Fprintf(w, "  -v, -vv          : Log info / debug messages to stderr\n")
	fmt.Fprintf(w, "  -q               : Only log errors\n")
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s ~/Pictures --width=1920.. --height=1080..\n", prog)
	fmt.Fprintf(w, "  %s ~/Pictures -m metas.json -s 'score >= 5.0' -s 'score < 9'\n", prog)
}

func defaultConfigPath() string {
	path, err := config.DefaultPath()
	if err != nil {
		return "unavailable"
	}
	return path
}
