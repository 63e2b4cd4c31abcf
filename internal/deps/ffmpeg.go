package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFFmpegBinary is resolved from PATH when no binary is configured.
const DefaultFFmpegBinary = "ffmpeg"

// CheckFFmpeg reports the ffmpeg binary the tag editor will execute.
//
// A configured value containing a path separator must point at an executable
// file; a bare name is resolved from PATH.
func CheckFFmpeg(binary string, required bool) Status {
	result := Status{
		Name:        "FFmpeg",
		Description: "Rewrites title and album tags with stream copy",
		Optional:    !required,
	}

	command := strings.TrimSpace(binary)
	if command == "" {
		command = DefaultFFmpegBinary
	}
	result.Command = command

	if strings.ContainsRune(command, filepath.Separator) || strings.ContainsRune(command, '/') {
		info, err := os.Stat(command)
		if err != nil {
			result.Detail = fmt.Sprintf("binary %q not found", command)
			return result
		}
		if !isExecutable(info) {
			result.Detail = fmt.Sprintf("binary %q is not executable", command)
			return result
		}
		result.Available = true
		return result
	}

	resolved, err := exec.LookPath(command)
	if err != nil {
		result.Detail = fmt.Sprintf("binary %q not found", command)
		return result
	}
	result.Command = resolved
	result.Available = true
	return result
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
