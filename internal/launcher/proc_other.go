//go:build !unix

package launcher

import (
	"os"
	"os/exec"
)

func detach(*exec.Cmd) {}

func terminate(cmd *exec.Cmd) error {
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		return cmd.Process.Kill()
	}
	return nil
}

func kill(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
