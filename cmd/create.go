package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/olimci/frontity-create/cmd/ui/create_ui"
	"github.com/olimci/frontity-create/pkg/config"
	"github.com/olimci/frontity-create/pkg/create"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/urfave/cli/v3"
)

type createInput struct {
	cfg   *config.Config
	opts  create.Options
	debug bool
}

func readCreateInput(cmd *cli.Command) (*createInput, error) {
	if cmd.NArg() > 1 {
		return nil, fmt.Errorf("too many arguments!")
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	in := &createInput{
		cfg:   cfg,
		debug: cmd.Bool("debug"),
		opts: create.Options{
			Name:  strings.TrimSpace(cmd.Args().First()),
			Path:  strings.TrimSpace(cmd.String("path")),
			Theme: strings.TrimSpace(cmd.String("theme")),
		},
	}

	// unset leaves the choice to the config defaults
	if cmd.IsSet("typescript") {
		in.opts.TypeScript = create.Bool(cmd.Bool("typescript"))
	}

	for _, value := range cmd.StringSlice("packages") {
		for _, pkg := range strings.Split(value, ",") {
			if pkg = strings.TrimSpace(pkg); pkg != "" {
				in.opts.Packages = append(in.opts.Packages, pkg)
			}
		}
	}

	return in, nil
}

// resolvePath defaults the project directory to ./<name>.
func (in *createInput) resolvePath() {
	if in.opts.Path == "" && in.opts.Name != "" {
		in.opts.Path = path.Base(in.opts.Name)
	}
}

func (in *createInput) logger() *log.Logger {
	if !in.debug {
		return nil
	}
	log.SetLevel(log.DebugLevel)
	return log.Default()
}

func (in *createInput) runOptions(extra ...create.Option) []create.Option {
	return append(create.FromConfig(in.cfg, in.logger()), extra...)
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	in, err := readCreateInput(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("no-ui") || !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		in.resolvePath()
		if err := createWithLogs(ctx, in, os.Stdout); err != nil {
			return err
		}
		printNextSteps(os.Stdout, in.opts)
		return nil
	}

	if err := promptCreate(ctx, in); err != nil {
		return err
	}
	in.resolvePath()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	task := create.Run(ctx, in.opts, in.runOptions()...)
	if err := create_ui.Run(task, fmt.Sprintf("Creating %s", in.opts.Name), cancel, os.Stdout); err != nil {
		return err
	}

	printNextSteps(os.Stdout, in.opts)
	return nil
}

func createWithLogs(ctx context.Context, in *createInput, out io.Writer) error {
	printer := newLogPrinter(logOutputRich, out)
	collector := events.NewCollector(events.NewHandlerFunc(printer.Print))

	err := create.Run(ctx, in.opts, in.runOptions(create.WithHandler(collector))...).Wait()

	if summary := collector.Summary(); hasSummaryEvents(summary) && in.debug {
		for _, line := range formatSummary(summary) {
			fmt.Fprintln(out, line)
		}
	}
	return err
}

func printNextSteps(out io.Writer, opts create.Options) {
	bold := lipgloss.NewStyle().Bold(true)
	if f, ok := out.(*os.File); !ok || !isTerminal(f) {
		bold = lipgloss.NewStyle()
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Done! Created %s.\n", bold.Render(opts.Name))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	if opts.Path != "" && opts.Path != "." {
		fmt.Fprintf(out, "  cd %s\n", opts.Path)
	}
	fmt.Fprintln(out, "  npx frontity dev     # Start development server")
	fmt.Fprintln(out, "  npx frontity build   # Build for production")
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
