package plugins

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
)

// Conventional locations of a plugin's development requirements
// manifest, checked in order.
var devManifests = []string{
	filepath.Join("backend", "requirements", "dev.txt"),
	filepath.Join("requirements", "dev.txt"),
	"dev-requirements.txt",
}

// Installer makes a plugin directory loadable by the Baserow runtime.
// Every step is a re-runnable tool invocation, so installing the same
// plugin twice with the same mode is safe during image rebuilds.
type Installer struct {
	runner CommandRunner
	out    io.Writer
}

// NewInstaller creates an installer that reports progress to out.
func NewInstaller(runner CommandRunner, out io.Writer) *Installer {
	if out == nil {
		out = os.Stdout
	}
	return &Installer{runner: runner, out: out}
}

// Install runs the plugin's installation procedure in the given mode.
// The first failing step aborts the whole installation; there is no
// retry and no rollback.
func (i *Installer) Install(ctx context.Context, folder string, mode plugindomain.Mode) error {
	info, err := os.Stat(folder)
	if err != nil {
		return fmt.Errorf("plugin folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("plugin folder %s is not a directory", folder)
	}

	name := filepath.Base(folder)
	fmt.Fprintf(i.out, "📦 Installing plugin: %s (%s mode)\n", name, mode)

	if mode.Dev() {
		if manifest, ok := i.findDevManifest(folder); ok {
			fmt.Fprintf(i.out, "Installing development requirements from %s\n", manifest)
			if err := i.runner.Run(ctx, folder, "pip3", "install", "-r", manifest); err != nil {
				return fmt.Errorf("development requirements: %w", err)
			}
		}
	}

	if backend, ok := backendPackage(folder); ok {
		args := []string{"install"}
		if mode.Dev() {
			// Editable install so code changes are picked up without a rebuild
			args = append(args, "-e")
		}
		args = append(args, backend)
		if err := i.runner.Run(ctx, folder, "pip3", args...); err != nil {
			return fmt.Errorf("backend install: %w", err)
		}
	}

	if hook := filepath.Join(folder, "build.sh"); fileExists(hook) {
		args := []string{hook}
		if mode.Dev() {
			args = append(args, "--dev")
		}
		fmt.Fprintf(i.out, "Running build hook for %s\n", name)
		if err := i.runner.Run(ctx, folder, "bash", args...); err != nil {
			return fmt.Errorf("build hook: %w", err)
		}
	}

	fmt.Fprintf(i.out, "✅ Successfully installed plugin: %s\n", name)
	return nil
}

// findDevManifest returns the first development requirements manifest
// present in the plugin directory.
func (i *Installer) findDevManifest(folder string) (string, bool) {
	for _, rel := range devManifests {
		path := filepath.Join(folder, rel)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// backendPackage returns the plugin's installable backend package
// directory, if it declares one.
func backendPackage(folder string) (string, bool) {
	backend := filepath.Join(folder, "backend")
	if fileExists(filepath.Join(backend, "setup.py")) || fileExists(filepath.Join(backend, "pyproject.toml")) {
		return backend, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
