// Package main provides the anglegradient command, which renders gradient
// documents (.lua or .yaml) to PNG and can watch them or preview them in a
// window.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-anglegradient/internal/config"
	"github.com/opd-ai/go-anglegradient/internal/profiling"
	"github.com/opd-ai/go-anglegradient/pkg/anglegradient"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cliFlags struct {
	configPath string
	output     string
	angle      float64
	angleSet   bool
	script     string
	watch      bool
	window     bool
	check      bool
	convert    string
	jsonLogs   bool
	debug      bool
	version    bool
	cpuProfile string
	memProfile string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("anglegradient", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "c", "", "Path to gradient document (.lua or .yaml)")
	fs.StringVar(&f.output, "o", "", "Write the PNG here instead of the document's output path")
	fs.Float64Var(&f.angle, "angle", 0, "Override the document's angle in degrees")
	fs.StringVar(&f.script, "script", "", "Lua script to run after painting the document")
	fs.BoolVar(&f.watch, "watch", false, "Re-render whenever the document changes")
	fs.BoolVar(&f.window, "window", false, "Show the gradient in a preview window")
	fs.BoolVar(&f.check, "check", false, "Validate the document, print warnings and exit")
	fs.StringVar(&f.convert, "convert", "", "Convert a document to YAML and print it to stdout")
	fs.BoolVar(&f.jsonLogs, "json", false, "Write logs as JSON")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.version, "v", false, "Print version and exit")
	fs.StringVar(&f.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&f.memProfile, "memprofile", "", "Write memory profile to file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "angle" {
			f.angleSet = true
		}
	})
	return f, nil
}

func newLogger(f *cliFlags, w io.Writer) anglegradient.Logger {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	if f.jsonLogs {
		return anglegradient.JSONLogger(w, level)
	}
	return anglegradient.TextLogger(w, level)
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if f.version {
		fmt.Fprintf(stdout, "anglegradient version %s\n", anglegradient.VersionString)
		return 0
	}

	if f.convert != "" {
		return runConvert(f.convert, stdout, stderr)
	}

	if f.configPath == "" {
		fmt.Fprintln(stderr, "No gradient document specified. Use -c to specify one.")
		fmt.Fprintln(stderr, "Usage: anglegradient -c <document> [-o out.png] [-watch] [-window]")
		return 1
	}

	// Verify the document exists and is accessible
	if _, err := os.Stat(f.configPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Gradient document not found: %s\n", f.configPath)
		} else {
			fmt.Fprintf(stderr, "Error accessing gradient document %s: %v\n", f.configPath, err)
		}
		return 1
	}

	if f.check {
		return runCheck(f.configPath, stdout, stderr)
	}

	session, err := profiling.Start(profiling.Config{
		CPUProfilePath: f.cpuProfile,
		MemProfilePath: f.memProfile,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
		return 1
	}
	defer func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
		}
	}()

	opts := anglegradient.DefaultOptions()
	opts.Logger = newLogger(f, stderr)
	opts.OutputPath = f.output
	opts.Script = f.script
	if f.angleSet {
		opts.Angle = &f.angle
	}

	r, err := anglegradient.New(f.configPath, &opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading gradient document: %v\n", err)
		return 1
	}

	if err := r.Render(); err != nil {
		fmt.Fprintf(stderr, "Render failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %s\n", r.Status().OutputPath)

	if !f.watch && !f.window {
		return 0
	}
	return serve(r, f, stdout, stderr)
}

// serve keeps running until interrupted, re-rendering on document changes
// and on SIGHUP.
func serve(r *anglegradient.Renderer, f *cliFlags, stdout, stderr io.Writer) int {
	r.SetErrorHandler(func(err error) {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	})
	r.SetEventHandler(func(e anglegradient.Event) {
		fmt.Fprintf(stdout, "[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Type, e.Message)
	})

	if f.watch {
		if err := r.Watch(); err != nil {
			fmt.Fprintf(stderr, "Failed to watch: %v\n", err)
			return 1
		}
		defer r.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				fmt.Fprintln(stdout, "Received SIGHUP, reloading document...")
				if err := r.Reload(); err != nil {
					fmt.Fprintf(stderr, "Reload failed: %v\n", err)
					continue
				}
				if err := r.Render(); err != nil {
					fmt.Fprintf(stderr, "Render failed: %v\n", err)
				}
			}
		}
	}()

	if f.window {
		if err := r.RunWindow(ctx); err != nil {
			fmt.Fprintf(stderr, "Preview window failed: %v\n", err)
			return 1
		}
		return 0
	}

	<-ctx.Done()
	fmt.Fprintln(stdout, "Shutting down...")
	return 0
}

// readDocument parses a document without resolving it.
func readDocument(path string) (config.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return config.Document{}, err
	}
	format, err := config.DetectFormat(path, content)
	if err != nil {
		return config.Document{}, err
	}

	p, err := config.NewParser()
	if err != nil {
		return config.Document{}, err
	}
	defer p.Close()

	doc, err := p.ParseDocument(content, format)
	if err != nil {
		return config.Document{}, err
	}
	config.ExpandEnvDocument(&doc)
	return doc, nil
}

// runCheck validates a document and prints every problem found.
func runCheck(path string, stdout, stderr io.Writer) int {
	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading gradient document: %v\n", err)
		return 1
	}

	result := config.NewValidator().Validate(&doc)
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "warning: %v\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(stdout, "error: %v\n", e)
	}
	if !result.IsValid() {
		return 1
	}
	fmt.Fprintf(stdout, "%s: ok\n", path)
	return 0
}

// runConvert prints a document as YAML. Lua documents are evaluated first,
// so computed values appear as literals.
func runConvert(path string, stdout, stderr io.Writer) int {
	doc, err := readDocument(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting gradient document: %v\n", err)
		return 1
	}

	out, err := config.EncodeYAML(doc)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting gradient document: %v\n", err)
		return 1
	}
	stdout.Write(out)
	return 0
}
