package bench

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/b0tShaman/neuro-bench/data"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options are the flags shared by every benchmark command. None of them
// change the format of the result line.
type Options struct {
	Seed          uint64
	HasSeed       bool // --seed was given
	ReferenceSeed bool
	Verbose       bool
	Verify        bool
}

func (o *Options) bind(fs *pflag.FlagSet) {
	fs.Uint64Var(&o.Seed, "seed", 0, "seed the deterministic LCG instead of the ambient generator")
	fs.BoolVar(&o.ReferenceSeed, "reference-seed", false, "seed the LCG with the benchmark's fixed reference seed")
	fs.BoolVarP(&o.Verbose, "verbose", "v", false, "write diagnostics to stderr")
	fs.BoolVar(&o.Verify, "verify", false, "cross-check the kernel result against gonum after timing")
}

// Env is handed to a command's Run function.
type Env struct {
	Options
	Stdout io.Writer
	Log    *Logger
}

// Source returns the random source selected by the flags. reference is the
// fixed seed the command uses for --reference-seed.
func (e *Env) Source(reference uint64) data.Uniform {
	switch {
	case e.HasSeed:
		e.Log.Printf("Random: LCG seed=%#x", e.Seed)
		return data.NewLCG(e.Seed)
	case e.ReferenceSeed:
		e.Log.Printf("Random: LCG reference seed=%#x", reference)
		return data.NewLCG(reference)
	default:
		e.Log.Printf("Random: ambient")
		return data.Ambient
	}
}

// Result writes the single result line to stdout.
func (e *Env) Result(line string) {
	fmt.Fprintln(e.Stdout, line)
}

// Command describes one benchmark executable.
type Command struct {
	Name  string
	Short string
	Args  []string // Names of the positional integer arguments
	Run   func(env *Env, sizes []int) error
}

// Usage returns the one-line usage message.
func (c Command) Usage() string {
	names := make([]string, len(c.Args))
	for i, a := range c.Args {
		names[i] = "<" + a + ">"
	}
	return fmt.Sprintf("Usage: %s [flags] %s", c.Name, strings.Join(names, " "))
}

func (c Command) newCobra(opts *Options, help *bool, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           c.Name + " " + strings.Join(c.Args, " "),
		Short:         c.Short,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := PositiveInts(args, len(c.Args))
			if err != nil {
				return err
			}
			opts.HasSeed = cmd.Flags().Changed("seed")

			log := NewLogger(stderr, opts.Verbose)
			log.Host()

			return c.Run(&Env{Options: *opts, Stdout: stdout, Log: log}, sizes)
		},
	}
	opts.bind(cmd.Flags())
	cmd.SetOutput(stderr)
	// -h/--help reports through the usage path instead of cobra's help page.
	cmd.SetHelpFunc(func(*cobra.Command, []string) { *help = true })
	return cmd
}

// Execute runs c with args (program name excluded) and returns the process
// exit status.
func Execute(c Command, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	var opts Options
	var help bool
	cmd := c.newCobra(&opts, &help, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if help {
		fmt.Fprintln(stderr, c.Usage())
		fmt.Fprint(stderr, cmd.Flags().FlagUsages())
		return 1
	}
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	// Flag parse failures from pflag count as usage errors too.
	if !errors.Is(err, ErrVerify) {
		fmt.Fprintln(stderr, c.Usage())
	}
	return 1
}

// Main runs c against the process arguments.
func Main(c Command) int {
	return Execute(c, os.Args[1:], os.Stdout, os.Stderr)
}
