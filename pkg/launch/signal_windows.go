package launch

import "os/exec"

func signalNumber(*exec.ExitError) int {
	return 0
}
