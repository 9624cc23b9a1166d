package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
	"bizchess/internal/engine"
	"bizchess/internal/report"
	analysisuc "bizchess/internal/usecase/analysis"
)

type options struct {
	marketPath string
	depth      int
	timeout    time.Duration
	pdfPath    string
	asJSON     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "bizchess",
		Short:        "Explore business strategy positions on the bizchess board",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.marketPath, "market", "", "YAML file with market data (competitors, conditions, landscape)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log search progress to stderr")

	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Print the opening board for the given market",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
	}
	boardCmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the board snapshot as JSON")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Search the best COMPANY move for the opening position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	analyzeCmd.Flags().IntVar(&opts.depth, "depth", engine.DefaultDepth, "search depth in plies")
	analyzeCmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "search deadline")
	analyzeCmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to this path")
	analyzeCmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")

	rootCmd.AddCommand(boardCmd, analyzeCmd)
	return rootCmd
}

func loadMarket(path string) (board.MarketData, error) {
	var market board.MarketData
	if path == "" {
		return market, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return market, fmt.Errorf("read market file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &market); err != nil {
		return market, fmt.Errorf("parse market file %s: %w", path, err)
	}
	return market, nil
}

func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func runBoard(cmd *cobra.Command, opts *options) error {
	market, err := loadMarket(opts.marketPath)
	if err != nil {
		return err
	}
	state, err := engine.InitializeBoard(market)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state.Snapshot())
	}
	renderBoard(out, state.Snapshot())
	return nil
}

func runAnalyze(cmd *cobra.Command, opts *options) error {
	market, err := loadMarket(opts.marketPath)
	if err != nil {
		return err
	}
	state, err := engine.InitializeBoard(market)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	log := newLogger(opts.verbose)
	defer log.Sync()

	result, err := analysisuc.NewDeadlineSearcher(log).Search(ctx, state, opts.depth)
	if err != nil {
		return err
	}
	record := analysis.Analysis{
		ID:        uuid.New().String(),
		Board:     state.Snapshot(),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(record); err != nil {
			return err
		}
	} else {
		renderBoard(out, record.Board)
		printResult(out, result)
	}

	if opts.pdfPath != "" {
		f, err := os.Create(opts.pdfPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		if err := report.WriteAnalysisPDF(f, record); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", opts.pdfPath)
	}
	return nil
}

var codes = map[string]string{
	"CEO":     "ce",
	"CFO":     "cf",
	"CTO":     "ct",
	"CMO":     "cm",
	"VP":      "vp",
	"MANAGER": "mg",
}

// renderBoard prints the grid with rank 0 on top. COMPANY pieces are upper
// case.
func renderBoard(w io.Writer, snap board.Snapshot) {
	fmt.Fprintln(w, "    0  1  2  3  4  5  6  7")
	for y, row := range snap.Board {
		fmt.Fprintf(w, "%d ", y)
		for _, cell := range row {
			code := " ."
			if cell != nil {
				code = codes[cell.Archetype]
				if cell.Side == board.Company.String() {
					code = strings.ToUpper(code)
				}
			}
			fmt.Fprintf(w, " %s", code)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s to move, ply %d\n", snap.Turn, snap.Ply)
}

func printResult(w io.Writer, r analysis.Result) {
	m := r.Move
	fmt.Fprintf(w, "\nbest move: %s %s -> %s", m.Piece, m.From, m.To)
	if m.Captured != "" {
		fmt.Fprintf(w, " takes %s", m.Captured)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "score %.3f  depth %d  nodes %d  cutoffs %d  %dms\n",
		r.Score, r.Depth, r.Stats.Nodes, r.Stats.Cutoffs, r.ElapsedMs)
	fmt.Fprintf(w, "strategic %.2f  risk %.2f  return %.2f\n",
		m.StrategicValue, m.RiskScore, m.ExpectedReturn)
	if r.TimedOut {
		fmt.Fprintln(w, "search stopped by the deadline before reaching the requested depth")
	}
	if r.Fallback {
		fmt.Fprintln(w, "no line was searched; picked the move with the highest strategic value")
	}
}
