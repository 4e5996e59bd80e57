// Package console implements the line-oriented command interface. Each
// input line is split into words and dispatched through a cobra tree.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ir_gateway/internal/logger"
	"ir_gateway/internal/protocol"
	"ir_gateway/internal/service"
	"ir_gateway/internal/version"

	"github.com/spf13/cobra"
)

// Options is the configuration summary printed by "info", plus the prompt.
type Options struct {
	HTTPAddr   string
	DBPath     string
	Timezone   string
	MacrosPath string
	// Prompt is printed before each line is read. Empty for piped input.
	Prompt string
}

// Console dispatches command lines against the IR services.
type Console struct {
	ir   service.Infrared
	seq  service.Sequencer
	opts Options
	log  *logger.Logger

	out io.Writer
}

// New builds a console writing replies to out.
func New(ir service.Infrared, seq service.Sequencer, out io.Writer, opts Options, log *logger.Logger) *Console {
	return &Console{ir: ir, seq: seq, opts: opts, out: out, log: logger.OrNop(log)}
}

// newRoot builds a fresh tree per line so flag state never leaks between
// commands.
func (c *Console) newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:               "irgw",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.SetOut(c.out)
	root.SetErr(c.out)
	root.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Prints this text.",
		Args:  cobra.NoArgs,
		Run:   func(cmd *cobra.Command, _ []string) { c.printHelp() },
	})
	root.AddCommand(
		&cobra.Command{
			Use:                "tx [type] code [repeat]",
			Short:              "Transmits an IR code.",
			Args:               cobra.RangeArgs(1, 3),
			DisableFlagParsing: true,
			RunE:               c.runTx,
		},
		&cobra.Command{
			Use:                "seq <sequence|@macro>",
			Short:              "Runs a sequence or a stored macro.",
			Args:               cobra.MinimumNArgs(1),
			DisableFlagParsing: true,
			RunE:               c.runSeq,
		},
		&cobra.Command{
			Use:   "macros",
			Short: "Lists stored macros.",
			Args:  cobra.NoArgs,
			Run:   c.runMacros,
		},
		&cobra.Command{
			Use:   "txlog",
			Short: "Prints the transmit log.",
			Args:  cobra.NoArgs,
			Run:   func(cmd *cobra.Command, _ []string) { fmt.Fprint(c.out, c.ir.TxLog()) },
		},
		&cobra.Command{
			Use:   "rxlog",
			Short: "Prints the receive log.",
			Args:  cobra.NoArgs,
			Run:   func(cmd *cobra.Command, _ []string) { fmt.Fprint(c.out, c.ir.RxLog()) },
		},
		&cobra.Command{
			Use:   "protocols",
			Short: "Lists the supported protocol names.",
			Args:  cobra.NoArgs,
			Run:   c.runProtocols,
		},
		&cobra.Command{
			Use:   "info",
			Short: "Prints counters and configuration.",
			Args:  cobra.NoArgs,
			Run:   c.runInfo,
		},
		&cobra.Command{
			Use:   "ver",
			Short: "Prints version infos.",
			Args:  cobra.NoArgs,
			Run:   func(cmd *cobra.Command, _ []string) { fmt.Fprintf(c.out, "\n%s\n", version.Banner()) },
		},
	)
	return root
}

// Exec runs one command line. Errors have already been printed when
// returned; callers only need them for status reporting.
func (c *Console) Exec(ctx context.Context, line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	root := c.newRoot()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "ERROR: %v\n", err)
	}
	return err
}

// Run reads lines from in until EOF or ctx is done. A failing command never
// stops the loop.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for c.prompt(); sc.Scan(); c.prompt() {
		if ctx.Err() != nil {
			return nil
		}
		if err := c.Exec(ctx, sc.Text()); err != nil {
			c.log.Debugw("console_command_failed", "line", sc.Text(), "err", err)
		}
	}
	return sc.Err()
}

func (c *Console) prompt() {
	if c.opts.Prompt != "" {
		fmt.Fprint(c.out, c.opts.Prompt)
	}
}

// runTx: 1 arg is the code (default protocol, repeat 1), 2 args are
// protocol and code, 3 args add the repeat count.
func (c *Console) runTx(cmd *cobra.Command, args []string) error {
	proto, repeat := protocol.Default.String(), "1"
	var code string
	switch len(args) {
	case 1:
		code = args[0]
	case 2:
		proto, code = args[0], args[1]
	case 3:
		proto, code, repeat = args[0], args[1], args[2]
	}
	line, err := c.ir.TransmitText(cmd.Context(), proto, code, repeat)
	if err != nil {
		return fmt.Errorf("%w (status %d)", err, service.Status(err))
	}
	fmt.Fprintln(c.out, line)
	return nil
}

func (c *Console) runSeq(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, "")
	var (
		res service.SequenceResult
		err error
	)
	if name, ok := strings.CutPrefix(text, "@"); ok {
		res, err = c.seq.ExecuteMacro(cmd.Context(), name)
	} else {
		res, err = c.seq.Execute(cmd.Context(), text)
	}
	fmt.Fprintf(c.out, "Executed %d steps\n%s", res.Executed, res.Message)
	if err != nil {
		var se *service.StepError
		if errors.As(err, &se) && errors.Is(err, service.ErrMissingArgument) {
			fmt.Fprint(c.out, service.Usage)
		}
		return err
	}
	return nil
}

func (c *Console) runMacros(cmd *cobra.Command, _ []string) {
	names := c.seq.MacroNames()
	if len(names) == 0 {
		fmt.Fprintln(c.out, "no macros")
		return
	}
	for _, n := range names {
		fmt.Fprintln(c.out, n)
	}
}

func (c *Console) runProtocols(cmd *cobra.Command, _ []string) {
	names := protocol.Names()
	const perLine = 6
	for i := 0; i < len(names); i += perLine {
		end := min(i+perLine, len(names))
		fmt.Fprintf(c.out, "  %s\n", strings.Join(names[i:end], ", "))
	}
}

func (c *Console) runInfo(cmd *cobra.Command, _ []string) {
	st := c.ir.Snapshot()
	w := c.out
	fmt.Fprintf(w, "System:\n")
	fmt.Fprintf(w, "  Up time:       %s\n", st.Uptime)
	fmt.Fprintf(w, "  Date:          %s\n", st.Date)
	fmt.Fprintf(w, "  Device:        %s\n", c.ir.DeviceName())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Parameter:\n")
	fmt.Fprintf(w, "  HTTP:          %s\n", c.opts.HTTPAddr)
	fmt.Fprintf(w, "  Database:      %s\n", c.opts.DBPath)
	fmt.Fprintf(w, "  Timezone:      %s\n", c.opts.Timezone)
	fmt.Fprintf(w, "  Macros:        %s\n", c.opts.MacrosPath)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "IR:\n")
	fmt.Fprintf(w, "  Tx Data:\n")
	fmt.Fprintf(w, "    Count:       %d\n", st.TxCount)
	fmt.Fprintf(w, "    Last:        %s\n", st.LastTx)
	fmt.Fprintf(w, "  Rx Data:\n")
	fmt.Fprintf(w, "    Count:       %d\n", st.RxCount)
	fmt.Fprintf(w, "    Last:        %s\n", st.LastRx)
	fmt.Fprintf(w, "\n")
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `Supported commands:
  ver                            Prints version infos.
  info                           Prints counters and configuration.
  tx [type] code [repeat]        Transmits a IR code.
                                 type .. optional, protocol name, default = NEC
                                 code .. the code to send, hex (0x..) or dec.
                                 repeat .. optional, number of repetitions, default = 1
  seq <sequence>                 Runs protocol:code:repeat[:pause],... steps.
  seq @name                      Runs a stored macro.
  macros                         Lists stored macros.
  txlog                          Prints the transmit log.
  rxlog                          Prints the receive log.
  protocols                      Lists supported protocol names.
  help                           Prints this text.

`)
}
