package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"data-qc/internal/app"
	"data-qc/internal/config"
	"data-qc/internal/dataset"
	"data-qc/internal/ingest"
	"data-qc/internal/qc"
)

type options struct {
	ask     bool
	file    string
	sendMCP bool
	mcpBase string
}

type buildFunc func(ctx context.Context, cfg config.Config) (app.Deps, error)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	build := func(ctx context.Context, cfg config.Config) (app.Deps, error) {
		return app.Build(ctx, cfg, os.Stderr)
	}
	os.Exit(execute(context.Background(), cfg, build, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// execute parses args, runs the pipeline and returns the process exit code.
func execute(ctx context.Context, cfg config.Config, build buildFunc, args []string, in io.Reader, out, errOut io.Writer) int {
	exitCode := 0
	cmd := newRootCmd(cfg, build, &exitCode)
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "ERROR:", err)
		return 1
	}
	return exitCode
}

func newRootCmd(cfg config.Config, build buildFunc, exitCode *int) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "qc",
		Short:         "LLM question answering and data-quality checks over a tabular sample",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			*exitCode = run(cmd.Context(), deps, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.ask, "ask", false, "Interactive: ask a question to the LLM")
	flags.StringVar(&opts.file, "file", "", "Path to CSV/JSON file to validate (optional)")
	flags.BoolVar(&opts.sendMCP, "send-mcp", false, "If set, attempt to POST sample to MCP (requires MCP running)")
	flags.StringVar(&opts.mcpBase, "mcp-base", cfg.MCPBaseURL, "MCP base URL")
	return cmd
}

// run sequences the stages. Only a failed file load stops early; every other
// failure is printed and the run continues.
func run(ctx context.Context, deps app.Deps, opts options, in io.Reader, out io.Writer) int {
	if opts.ask {
		askQuestion(ctx, deps, in, out)
	}

	var ds dataset.Dataset
	if opts.file != "" {
		loaded, err := dataset.Load(opts.file)
		if err != nil {
			deps.Log.Error("file load failed", "file", opts.file, "err", err)
			fmt.Fprintln(out, "Failed to load file:", err)
			return 1
		}
		ds = loaded
		fmt.Fprintf(out, "Loaded file: %s rows=%d cols=%d\n", opts.file, ds.Len(), len(ds.Columns))
	} else {
		ds = dataset.Generate(dataset.DefaultRows, dataset.DefaultSeed)
		fmt.Fprintf(out, "Using generated sample data (%d rows):\n", dataset.DefaultRows)
	}

	if err := dataset.Render(out, ds); err != nil {
		deps.Log.Warn("render dataset", "err", err)
	}
	fmt.Fprintln(out)

	if opts.sendMCP {
		sendSample(ctx, deps, opts, ds, out)
	} else {
		fmt.Fprintln(out, "MCP send skipped (use --send-mcp to enable).")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Running LLM-based data quality checks...")
	result := qc.Check(ctx, deps.LLM, ds, deps.Config.MaxSampleRows)
	if result.IsDegraded() {
		deps.Log.Warn("qc report degraded", "error", result.Degraded.Error)
	}
	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(out, "Failed to render QC result:", err)
	} else {
		fmt.Fprintln(out, string(pretty))
	}
	fmt.Fprintln(out, "\nDone.")
	return 0
}

func askQuestion(ctx context.Context, deps app.Deps, in io.Reader, out io.Writer) {
	fmt.Fprint(out, "Type your question: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		deps.Log.Warn("read question", "err", err)
	}
	question := strings.TrimSpace(line)
	if question == "" {
		fmt.Fprintln(out, "No question typed. Continuing...")
		fmt.Fprintln(out)
		return
	}
	fmt.Fprintln(out, "\nLLM answer:")
	fmt.Fprintln(out, qc.Answer(ctx, deps.LLM, question))
	fmt.Fprintln(out)
}

func sendSample(ctx context.Context, deps app.Deps, opts options, ds dataset.Dataset, out io.Writer) {
	client := deps.Ingest
	if client == nil || (opts.mcpBase != "" && strings.TrimRight(opts.mcpBase, "/") != client.BaseURL()) {
		client = ingest.NewClient(opts.mcpBase, deps.Config.MCPAPIKey)
	}

	fmt.Fprintf(out, "Checking MCP health at %s/health ...\n", client.BaseURL())
	health := client.Health(ctx)
	if !health.OK {
		deps.Log.Warn("mcp unhealthy", "base_url", client.BaseURL(), "status", health.StatusCode)
		fmt.Fprintln(out, "MCP health check failed. Please start MCP server or correct MCP_BASE URL.")
		return
	}
	fmt.Fprintln(out, "MCP health:", health.Body)

	resp, err := client.SendSample(ctx, ds, ingest.SampleRows)
	if err != nil {
		deps.Log.Error("mcp send failed", "err", err)
		fmt.Fprintln(out, "Error sending to MCP:", err)
		return
	}
	fmt.Fprintln(out, "MCP response:", string(resp))
}
