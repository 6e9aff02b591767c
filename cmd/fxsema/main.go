// Command fxsema verifies expressions and small programs against the
// builtin global environment.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fxrazen/fxsema/common"
	"github.com/fxrazen/fxsema/compile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "fxsema",
		Short:        "Semantic checker for ActionScript 3 expressions",
		SilenceUsage: true,
	}
	bindOptions(newViper("fxsema"), root, o.opts())

	root.AddCommand(newCheckCommand(o))
	root.AddCommand(newSuiteCommand(o))
	return root
}

func newCheckCommand(o *options) *cobra.Command {
	var paths []string
	cmd := &cobra.Command{
		Use:   "check [expr...]",
		Short: "Verify expressions and program files and print their static types",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(paths) == 0 {
				return errors.New("nothing to check")
			}

			log, err := o.newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			unit, err := o.newUnit(log)
			if err != nil {
				return err
			}
			for i, arg := range args {
				unit.AddSource(fmt.Sprintf("<arg%d>", i+1), arg)
			}
			for _, path := range paths {
				if err := unit.AddFile(path); err != nil {
					return err
				}
			}
			if err := runUnit(log, unit); err != nil {
				return err
			}

			report(cmd.OutOrStdout(), unit)
			if n := unit.Diagnostics().ErrorCount(); n > 0 {
				return errors.Errorf("%d error(s)", n)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&paths, "file", "f", nil, "program files to check")
	return cmd
}

// runUnit runs the unit. A panic means the verifier broke an internal
// invariant; it is logged with its stack and returned as an error.
// Diagnostics are left in the unit for report.
func runUnit(log *zap.Logger, unit *compile.Unit) error {
	err := common.Try(unit.Run)
	var perr *common.PanicError
	if errors.As(err, &perr) {
		log.Error("internal error", zap.Any("panic", perr.Value), zap.String("stack", perr.Stack))
		return errors.Wrap(err, "internal error")
	}
	return nil
}

func report(w io.Writer, unit *compile.Unit) {
	for _, r := range unit.Results() {
		if r.Value == nil {
			continue
		}
		fmt.Fprintf(w, "%v: %s: %v\n", r.Location, r.Text, r.Value.StaticType())
	}
	for _, d := range unit.Diagnostics().Items() {
		fmt.Fprintln(w, d.Error())
	}
}
