// bookingmail is the operator CLI: classify single messages, seed the
// training log from CSV, retrain the models and export results to XLSX.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/csvseed"
	"github.com/villosa/bookingmail/internal/engine"
	"github.com/villosa/bookingmail/internal/entity"
	"github.com/villosa/bookingmail/internal/export"
	"github.com/villosa/bookingmail/internal/linmodel"
	"github.com/villosa/bookingmail/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func usage() {
	printError(`Usage: bookingmail <command> [flags]

Commands:
  classify   classify one message and print the extracted record as JSON
  seed       load a labeled CSV into the training log (requires DB_URL)
  train      retrain both models from the training log (requires DB_URL)
  export     run a JSONL file of requests and write an XLSX workbook
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := common.LoadConfig()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "classify":
		err = runClassify(ctx, cfg, logger, os.Args[2:])
	case "seed":
		err = runSeed(ctx, cfg, logger, os.Args[2:])
	case "train":
		err = runTrain(ctx, cfg, logger, os.Args[2:])
	case "export":
		err = runExport(ctx, cfg, logger, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
}

// openEngine builds the engine and, when a database is configured, installs
// the newest stored models. The returned pool is nil without DB_URL.
func openEngine(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*engine.Engine, *pgxpool.Pool, error) {
	eng := engine.New(logger, cfg.Engine)
	if cfg.Database.DSN == "" {
		return eng, nil, nil
	}
	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	models := repository.NewModelArtifactRepository(pool, logger)
	if err := eng.LoadModels(ctx, models); err != nil {
		repository.Close(pool, logger)
		return nil, nil, err
	}
	return eng, pool, nil
}

func runClassify(ctx context.Context, cfg *common.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	var (
		subject  = fs.String("subject", "", "message subject")
		sender   = fs.String("sender", "", "message sender address")
		body     = fs.String("body", "", "message body")
		bodyFile = fs.String("body-file", "", "read the body from a file instead")
		refStr   = fs.String("ref", "", "reference date YYYY-MM-DD (the email's send date)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *bodyFile != "" {
		raw, err := os.ReadFile(*bodyFile)
		if err != nil {
			return fmt.Errorf("read body file: %w", err)
		}
		*body = string(raw)
	}

	msg := entity.RawMessage{Subject: *subject, Sender: *sender, Body: *body}
	if *refStr != "" {
		ref, err := time.Parse("2006-01-02", *refStr)
		if err != nil {
			return fmt.Errorf("invalid --ref date, use YYYY-MM-DD: %w", err)
		}
		msg.ReferenceDate = &ref
	}

	eng, pool, err := openEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer repository.Close(pool, logger)
	}

	res, err := eng.ClassifyAndExtract(msg)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runSeed(ctx context.Context, cfg *common.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	file := fs.String("file", cfg.Training.CSVSeedPath, "labeled CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("--file (or CSV_SEED_PATH) is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer repository.Close(pool, logger)

	examples, err := csvseed.Load(*file, logger)
	if err != nil {
		return err
	}

	repo := repository.NewTrainingExampleRepository(pool, logger)
	for _, ex := range examples {
		if _, err := repo.Add(ctx, ex); err != nil {
			return err
		}
	}
	logger.Info("seed complete", "examples", len(examples))
	return nil
}

func runTrain(ctx context.Context, cfg *common.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	var (
		epochs = fs.Int("epochs", cfg.Training.Epochs, "training epochs")
		rate   = fs.Float64("rate", cfg.Training.LearningRate, "learning rate")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	pool, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer repository.Close(pool, logger)

	examples, err := repository.NewTrainingExampleRepository(pool, logger).List(ctx)
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		return fmt.Errorf("training log is empty; run seed first")
	}

	eng := engine.New(logger, cfg.Engine)
	cm, am, err := eng.Train(examples, linmodel.TrainConfig{Epochs: *epochs, LearningRate: *rate})
	if err != nil {
		return err
	}

	models := repository.NewModelArtifactRepository(pool, logger)
	if err := engine.SaveModels(ctx, models, cm, am); err != nil {
		return err
	}
	logger.Info("training complete",
		"examples", len(examples),
		"classifier_version", cm.Version,
		"assigner_version", am.Version,
	)
	return nil
}

func runExport(ctx context.Context, cfg *common.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var (
		in  = fs.String("in", "", "JSONL file with one request per line (required)")
		out = fs.String("out", "bookings.xlsx", "output XLSX path")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("--in is required")
	}

	eng, pool, err := openEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if pool != nil {
		defer repository.Close(pool, logger)
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	var results []entity.Result
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		msg, err := engine.ParseRequest(raw)
		if err != nil {
			logger.Warn("skipping request", "line", line, "error", err)
			continue
		}
		res, err := eng.ClassifyAndExtract(msg)
		if err != nil {
			logger.Warn("skipping request", "line", line, "error", err)
			continue
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	workbook, err := export.NewService(logger).ExportResultsXLSX(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, workbook, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	logger.Info("export complete", "rows", len(results), "path", *out)
	return nil
}
