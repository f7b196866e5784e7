package testutils

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// RunCirun executes a cirun command with pre-split arguments in dir.
// Logging is disabled through the environment so stderr only has errors.
func RunCirun(ctx context.Context, env []string, binary, dir string, args []string) (stdout, stderr []byte, err error) {
	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stdout = &outData
	cmd.Stderr = &errData

	// Set env: os.Environ() first, then custom env overrides on top.
	// In Go's exec.Cmd, when duplicate keys exist, the last one wins.
	newEnv := append([]string{}, os.Environ()...)
	newEnv = append(newEnv, env...)
	newEnv = append(newEnv, "CIRUN_NO_LOG=true")
	cmd.Env = newEnv

	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}
