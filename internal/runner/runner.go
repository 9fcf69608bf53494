// Package runner executes configured merge tools against scenario inputs and
// times them under a repeatable trial protocol.
package runner

import (
	"bytes"
	"errors"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"mergebench/internal/config"
)

// FailedTime is the timing sentinel for a trial or benchmark that produced
// no usable result.
const FailedTime = -1

// startupDir is the process working directory at load time; relative binary
// paths resolve against it even if the harness later changes directory.
var startupDir, _ = os.Getwd()

// Trial is the outcome of one tool invocation: elapsed wall-clock time in
// milliseconds (FailedTime on failure) and whether the tool produced a
// usable merge.
type Trial struct {
	ElapsedMS float64
	OK        bool
	Output    string
}

// OutputPath is where a tool is expected to write its result: "merge" plus
// the left input's extension, under the tool's output directory.
func OutputPath(outputDir, left string) string {
	return filepath.Join(outputDir, "merge"+filepath.Ext(left))
}

// RunTrial executes one tool invocation. Success requires an exit code of 0
// or 1 (tools use 1 for "merged with conflicts", which is not a harness
// failure) and the expected output file on disk afterward. The call blocks
// until the tool exits; there is no timeout and no retry here.
func RunTrial(tool config.Tool, base, left, right, outputDir string) Trial {
	bin := resolveBinary(tool.BinaryPath)
	if _, err := os.Stat(bin); err != nil {
		log.Printf("warning: tool %s: binary %s not found", tool.Name, bin)
		return Trial{ElapsedMS: FailedTime}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Printf("warning: tool %s: creating output dir: %v", tool.Name, err)
		return Trial{ElapsedMS: FailedTime}
	}
	outputFile := OutputPath(outputDir, left)

	args := tool.BuildArgs(map[string]string{
		"binary_path": bin,
		"base":        base,
		"left":        left,
		"right":       right,
		"output_dir":  outputDir,
		"output_file": outputFile,
	})
	if len(args) == 0 {
		log.Printf("warning: tool %s: empty command", tool.Name)
		return Trial{ElapsedMS: FailedTime}
	}

	cmd := exec.Command(args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := round4(float64(time.Since(start)) / float64(time.Millisecond))

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Launch-level failure: the process never ran.
			log.Printf("warning: tool %s: %v", tool.Name, err)
			return Trial{ElapsedMS: FailedTime, Output: outputFile}
		}
		exitCode = exitErr.ExitCode()
	}

	if (exitCode == 0 || exitCode == 1) && fileExists(outputFile) {
		return Trial{ElapsedMS: elapsed, OK: true, Output: outputFile}
	}
	log.Printf("warning: tool %s exited %d: %s", tool.Name, exitCode, strings.TrimSpace(stderr.String()))
	return Trial{ElapsedMS: FailedTime, Output: outputFile}
}

func resolveBinary(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(startupDir, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func round4(ms float64) float64 {
	return math.Round(ms*10000) / 10000
}
