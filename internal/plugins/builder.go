package plugins

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
)

// OwnershipFunc rewrites the owner of a single filesystem entry. It must
// not follow symlinks.
type OwnershipFunc func(path string, uid, gid int) error

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Root is the plugins root the plugin is materialized under
	Root string

	// Identity is the build identity plugin files must be owned by
	Identity plugindomain.BuildIdentity

	// Chown overrides the ownership function, defaulting to os.Lchown
	Chown OwnershipFunc

	// Out receives progress output, defaulting to os.Stdout
	Out io.Writer
}

// Builder materializes a plugin source tree into the plugins root under
// the configured build identity and installs it in development mode.
type Builder struct {
	root      string
	identity  plugindomain.BuildIdentity
	chown     OwnershipFunc
	installer *Installer
	out       io.Writer
}

// NewBuilder creates a builder for the configured plugins root.
func NewBuilder(cfg *BuilderConfig, installer *Installer) *Builder {
	chown := cfg.Chown
	if chown == nil {
		chown = os.Lchown
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	return &Builder{
		root:      cfg.Root,
		identity:  cfg.Identity,
		chown:     chown,
		installer: installer,
		out:       out,
	}
}

// Build runs the image-build procedure for one plugin: remediate
// ownership of the plugins root when the build identity differs from the
// sentinel, copy the source tree in, and install it in development mode.
// Any filesystem error aborts the build; there is no partial-success
// state beyond what the filesystem already holds.
func (b *Builder) Build(ctx context.Context, src string) error {
	if b.identity.Remediate() {
		fmt.Fprintf(b.out, "Rewriting ownership of %s to %d:%d\n", b.root, b.identity.UID, b.identity.GID)
		if err := b.remediateOwnership(); err != nil {
			return fmt.Errorf("ownership remediation: %w", err)
		}
	}

	name := filepath.Base(filepath.Clean(src))
	dest := filepath.Join(b.root, name)
	fmt.Fprintf(b.out, "Copying plugin %s into %s\n", name, b.root)
	if err := b.copyTree(src, dest); err != nil {
		return fmt.Errorf("copy plugin %s: %w", name, err)
	}

	return b.installer.Install(ctx, dest, plugindomain.ModeDevelopment)
}

// remediateOwnership rewrites ownership of everything under the plugins
// root, pre-existing plugins included. The base image created those
// files as the sentinel account; once the build runs as a different
// identity, every file the runtime will touch has to change hands, not
// just the plugin being added.
func (b *Builder) remediateOwnership() error {
	return filepath.WalkDir(b.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// First build against a fresh image: the root may not exist yet
			if path == b.root && os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		return b.chown(path, b.identity.UID, b.identity.GID)
	})
}

// copyTree copies src into dest, recreating directories, regular files,
// and symlinks. Ownership is applied per entry during the copy so the
// tree never needs a second traversal.
func (b *Builder) copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return err
			}
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			// Rebuilds overwrite: drop a stale link before recreating it
			_ = os.Remove(target)
			if err := os.Symlink(link, target); err != nil {
				return err
			}
		default:
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		}

		if b.identity.Remediate() {
			if err := b.chown(target, b.identity.UID, b.identity.GID); err != nil {
				return err
			}
		}
		return nil
	})
}

func copyFile(src, dest string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
