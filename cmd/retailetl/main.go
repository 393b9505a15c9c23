// Command retailetl profiles, cleans, transforms and loads the retail
// extracts.
//
//	retailetl check      # profile raw CSVs and write the plan
//	retailetl transform  # apply the plan and write cleaned_<table>.csv
//	retailetl load       # load the cleaned files into the sink
//	retailetl run        # all three, with a timing summary
//	retailetl validate   # lint the configuration
//
// run exits 0 when every step succeeded, 2 when the cleaned data was
// produced but loading failed, and 1 otherwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	// register all backends with the storage factory.
	_ "github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/storage/all"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries a specific exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, out, errOut io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(out, errOut)
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	a.flush()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(errOut, "Error: %v\n", err)
	return 1
}
