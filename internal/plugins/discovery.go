package plugins

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	plugindomain "github.com/YA-androidapp/baserow/internal/core/domain/plugin"
)

// DescriptorFileName is the optional metadata file a plugin may carry in
// its directory root.
const DescriptorFileName = "baserow_plugin_info.json"

var errInvalidDescriptor = errors.New("not a valid JSON document")

// Discovery enumerates plugin directories under the plugins root.
type Discovery struct {
	root string
	warn io.Writer
}

// NewDiscovery creates a discovery over root, warning to stderr.
func NewDiscovery(root string) *Discovery {
	return NewDiscoveryWithWarnings(root, os.Stderr)
}

// NewDiscoveryWithWarnings creates a discovery that writes non-fatal
// problems (unreadable or malformed descriptors) to warn.
func NewDiscoveryWithWarnings(root string, warn io.Writer) *Discovery {
	return &Discovery{root: root, warn: warn}
}

// List returns every plugin directory directly under the root, in
// filesystem enumeration order. A missing root means no plugin has been
// installed yet and yields an empty list. A broken descriptor never
// aborts the enumeration: the plugin is listed without a description and
// scanning continues.
func (d *Discovery) List() ([]plugindomain.Plugin, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read plugins root %s: %w", d.root, err)
	}

	var found []plugindomain.Plugin
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		p := plugindomain.Plugin{
			Name: entry.Name(),
			Path: filepath.Join(d.root, entry.Name()),
		}

		descPath := filepath.Join(p.Path, DescriptorFileName)
		data, err := os.ReadFile(descPath)
		switch {
		case err != nil && os.IsNotExist(err):
			// No descriptor, name only
		case err != nil:
			fmt.Fprintf(d.warn, "warning: skipping descriptor %s: %v\n", descPath, err)
		default:
			p.HasDescriptor = true
			desc, perr := ExtractDescription(data)
			if perr != nil {
				fmt.Fprintf(d.warn, "warning: malformed descriptor %s: %v\n", descPath, perr)
			} else {
				p.Description = desc
			}
		}

		found = append(found, p)
	}
	return found, nil
}

// ExtractDescription pulls the description field out of a descriptor
// document. A document that is not valid JSON yields an error; a valid
// document without the field yields the empty string.
func ExtractDescription(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", errInvalidDescriptor
	}
	return gjson.GetBytes(data, "description").String(), nil
}
