package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bastiangx/dictable/pkg/dataset"
	"github.com/charmbracelet/log"
)

// PathResolver finds dataset files the user named with a relative path.
type PathResolver struct {
	executableDir string
	workDir       string
	configDir     string
}

// NewPathResolver creates a resolver rooted at the running binary, the
// working directory and configDir.
func NewPathResolver(configDir string) *PathResolver {
	pr := &PathResolver{configDir: configDir}

	if execPath, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = resolved
		}
		pr.executableDir = filepath.Dir(execPath)
	} else {
		log.Debugf("Could not determine executable path: %v", err)
	}
	if cwd, err := os.Getwd(); err == nil {
		pr.workDir = cwd
	}

	log.Debugf("PathResolver initialized: execDir=%s, cwd=%s, configDir=%s",
		pr.executableDir, pr.workDir, pr.configDir)
	return pr
}

// Candidates lists where a relative dataset path is looked up, in order.
func (pr *PathResolver) Candidates(name string) []string {
	if filepath.IsAbs(name) {
		return []string{name}
	}
	var out []string
	for _, dir := range []string{pr.workDir, pr.executableDir, pr.configDir} {
		if dir == "" {
			continue
		}
		out = append(out, filepath.Join(dir, name))
		out = append(out, filepath.Join(dir, "data", name))
	}
	return out
}

// ResolveDataset returns source unchanged for URLs and absolute paths, and
// otherwise the first candidate that exists. When nothing exists the
// working-directory path is returned so the error names a sensible file.
func (pr *PathResolver) ResolveDataset(source string) string {
	if source == "" || dataset.IsURL(source) || filepath.IsAbs(source) {
		return source
	}
	for _, path := range pr.Candidates(source) {
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			log.Debugf("Resolved dataset %s to %s", source, path)
			return path
		}
		log.Debugf("Dataset candidate not found: %s", path)
	}
	return source
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	info := map[string]string{
		"executable_dir": pr.executableDir,
		"current_dir":    pr.workDir,
		"config_dir":     pr.configDir,
		"os":             runtime.GOOS,
		"arch":           runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
