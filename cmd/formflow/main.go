// Command formflow runs the booking and contact flows as terminal prompts.
//
// Each form field becomes an interactive prompt. Rejected submissions
// re-prompt only the failing fields, and an accepted submission prints the
// confirmation with its reference and fare summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/orchestrator"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
)

func main() {
	var (
		flowFlag     = flag.String("flow", formflow.FlowBooking, "Flow to run")
		listFlag     = flag.Bool("list", false, "List available flows and exit")
		serviceFlag  = flag.String("service", "", "Preselect the booking service type")
		attemptsFlag = flag.Int("attempts", 0, "Give up after this many rejected submissions (0 keeps prompting)")
		timeoutFlag  = flag.Duration("timeout", 0, "Abort the run after this long (0 waits)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}

	generator := formflow.New()

	if *listFlag {
		names, err := generator.Operations(ctx)
		if err != nil {
			log.Fatalf("list flows: %v", err)
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	session, err := generator.Session(ctx, *flowFlag)
	if err != nil {
		if errors.Is(err, orchestrator.ErrUnknownOperation) {
			log.Fatalf("unknown flow %q, use -list to see what is available", *flowFlag)
		}
		log.Fatalf("start flow: %v", err)
	}

	if *serviceFlag != "" {
		session.Prefill(url.Values{"service": {*serviceFlag}})
	}

	var options []tui.Option
	if *attemptsFlag > 0 {
		options = append(options, tui.WithMaxAttempts(*attemptsFlag))
	}

	runner, err := tui.New(options...)
	if err != nil {
		log.Fatalf("terminal setup: %v", err)
	}

	if _, err := runner.Run(ctx, session); err != nil {
		switch {
		case errors.Is(err, tui.ErrAborted):
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(130)
		case errors.Is(err, tui.ErrTooManyAttempts):
			fmt.Fprintln(os.Stderr, "no accepted submission, giving up")
			os.Exit(1)
		default:
			log.Fatalf("run flow: %v", err)
		}
	}
}
