package planning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/anika2711garg/Planix-sub000/internal/config"
	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

// Runner produces a plan for the given model input.
type Runner interface {
	Predict(ctx context.Context, in ModelInput) (*ModelOutput, error)
}

// ExecRunner runs the planner as a child process:
//
//	<command> <script> --mode predict --input <json> --model <checkpoint>
//
// and decodes its stdout.
type ExecRunner struct {
	command    string
	script     string
	checkpoint string
	timeout    time.Duration
	log        *zap.SugaredLogger
}

func NewExecRunner(cfg config.PlanningConfig, log *zap.SugaredLogger) *ExecRunner {
	return &ExecRunner{
		command:    cfg.RLCommand,
		script:     cfg.RLScript,
		checkpoint: cfg.RLCheckpoint,
		timeout:    cfg.RLTimeout,
		log:        log.Named("planning.runner"),
	}
}

// Check reports whether the planner script is present. The script ships with
// the deployment, not with this module.
func (r *ExecRunner) Check() error {
	if _, err := os.Stat(r.script); err != nil {
		return fmt.Errorf("planner script %s: %w", r.script, err)
	}
	return nil
}

func (r *ExecRunner) Predict(ctx context.Context, in ModelInput) (*ModelOutput, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode model input: %w", err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.command, r.script,
		"--mode", "predict",
		"--input", string(payload),
		"--model", r.checkpoint,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	if err := cmd.Run(); err != nil {
		r.log.Errorw("planner exited with error",
			"error", err,
			"stderr", stderr.String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPlanner, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrPlanner, err)
	}

	var out ModelOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		r.log.Errorw("planner printed invalid JSON", "error", err, "stdout_bytes", stdout.Len())
		return nil, fmt.Errorf("%w: parse output: %v", domain.ErrPlanner, err)
	}

	r.log.Debugw("planner finished", "items", len(out.ReorderedItems), "duration_ms", time.Since(start).Milliseconds())
	return &out, nil
}
