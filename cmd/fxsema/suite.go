package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxrazen/fxsema/common"
	"github.com/fxrazen/fxsema/compile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// A suite directory holds one case per entry. A file is a program on its
// own; a directory is one unit made of every file inside it. Names starting
// with pass_ must verify cleanly and names starting with fail_ must not.

type suiteFailure struct {
	Name   string
	Reason string
	Stack  string
}

func newSuiteCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "suite <dir>",
		Short: "Run a directory of pass_ and fail_ cases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := o.newLogger()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			failures, err := runSuite(args[0], func() (*compile.Unit, error) {
				return o.newUnit(log)
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range failures {
				fmt.Fprintf(out, "FAIL %s: %s\n", f.Name, f.Reason)
				if f.Stack != "" {
					log.Debug("stack", zap.String("case", f.Name), zap.String("stack", f.Stack))
				}
			}
			if len(failures) > 0 {
				return errors.Errorf("%d case(s) failed", len(failures))
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func runSuite(dir string, newUnit func() (*compile.Unit, error)) ([]suiteFailure, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading suite")
	}

	var failures []suiteFailure
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		paths := []string{path}
		if entry.IsDir() {
			if paths, err = caseFiles(path); err != nil {
				return nil, err
			}
		}

		unit, err := newUnit()
		if err != nil {
			return nil, err
		}
		if f := runSuiteCase(unit, name, paths); f != nil {
			failures = append(failures, *f)
		}
	}
	return failures, nil
}

func caseFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading case")
	}
	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func runSuiteCase(unit *compile.Unit, name string, paths []string) *suiteFailure {
	err := common.Try(func() error {
		for _, path := range paths {
			if err := unit.AddFile(path); err != nil {
				return err
			}
		}
		return unit.Run()
	})
	var perr *common.PanicError
	if errors.As(err, &perr) {
		return &suiteFailure{Name: name, Reason: "internal error: " + perr.Error(), Stack: perr.Stack}
	}

	switch {
	case strings.HasPrefix(name, "fail_"):
		if err == nil {
			return &suiteFailure{Name: name, Reason: "expected an error"}
		}
	case strings.HasPrefix(name, "pass_"):
		if err != nil {
			return &suiteFailure{Name: name, Reason: err.Error()}
		}
	default:
		return &suiteFailure{Name: name, Reason: "expected a pass_ or fail_ prefix"}
	}
	return nil
}
