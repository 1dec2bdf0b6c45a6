// extractord is the long-running extraction worker. It reads one JSON
// request per line from stdin and writes one JSON response per line to
// stdout; logs go to stderr so the protocol stream stays clean.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/villosa/bookingmail/internal/common"
	"github.com/villosa/bookingmail/internal/engine"
	"github.com/villosa/bookingmail/internal/repository"
)

const maxLineBytes = 4 * 1024 * 1024

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	cfg := common.LoadConfig()
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	eng := engine.New(slogger, cfg.Engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Database.DSN != "" {
		pool, err := repository.Open(ctx, cfg.Database, slogger)
		if err != nil {
			log.Fatalf("creating DB pool: %v", err)
		}
		defer repository.Close(pool, slogger)

		if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, slogger); err != nil {
			log.Fatalf("DB health failed: %v", err)
		}
		models := repository.NewModelArtifactRepository(pool, slogger)
		if err := eng.LoadModels(ctx, models); err != nil {
			log.Fatalf("loading model artifacts: %v", err)
		}
		log.Infow("model artifacts loaded", "trained", eng.HasModels())
	} else {
		log.Infow("no DB_URL set, running on heuristics only")
	}

	in := bufio.NewScanner(os.Stdin)
	in.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	out := json.NewEncoder(os.Stdout)

	log.Infof("reading requests from stdin")
	lines := 0
	for in.Scan() {
		line := bytes.TrimSpace(in.Bytes())
		if len(line) == 0 {
			continue
		}
		respond(eng, out, line)
		lines++
	}
	if err := in.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
	log.Infow("stdin closed, stopping", "requests", lines)
}

func respond(eng *engine.Engine, out *json.Encoder, line []byte) {
	msg, err := engine.ParseRequest(line)
	if err == nil {
		var res any
		res, err = eng.ClassifyAndExtract(msg)
		if err == nil {
			_ = out.Encode(res)
			return
		}
	}

	var resp errorResponse
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		resp.Error.Code = appErr.Code
		resp.Error.Message = appErr.Message
	} else {
		resp.Error.Code = "INTERNAL"
		resp.Error.Message = err.Error()
	}
	_ = out.Encode(resp)
}
