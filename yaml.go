package treefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the canonical declarative tree shape:
//
//	root: /optional/path        # default: generated temp dir
//	override_file: false        # default false
//	drop: true                  # default true
//	entries:
//	  - path: config/app.conf
//	    type: text_file
//	    content: "host = localhost"
//	  - path: data/raw
//	    type: directory
//	  - path: logs/app.log
//	    type: empty_file
//	    settings: { readonly: true }
//
// Decoding is strict: unknown fields, unknown entry types, and content on
// non-text entries are errors, never defaulted.
type yamlDocument struct {
	Root         string      `yaml:"root"`
	OverrideFile bool        `yaml:"override_file"`
	Drop         *bool       `yaml:"drop"`
	Entries      []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Path     string        `yaml:"path"`
	Type     string        `yaml:"type"`
	Content  *string       `yaml:"content"`
	Settings *yamlSettings `yaml:"settings"`
}

type yamlSettings struct {
	Readonly bool `yaml:"readonly"`
}

// ParseYAML decodes a declarative tree document into a Builder. It performs
// no I/O beyond decoding; the returned Builder can be adjusted further
// before Create.
func ParseYAML(data []byte) (*Builder, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &TreeError{Op: "decode", Index: -1, Err: wrap(ErrDecode, err)}
	}

	b := New()
	if doc.Root != "" {
		b.RootFolder(doc.Root)
	}
	b.OverrideExisting(doc.OverrideFile)
	if doc.Drop != nil {
		b.AutoDelete(*doc.Drop)
	}

	for i, e := range doc.Entries {
		if e.Path == "" {
			return nil, decodeErr(i, "missing path")
		}

		var settings *Settings
		if e.Settings != nil {
			settings = &Settings{Readonly: e.Settings.Readonly}
		}

		switch e.Type {
		case "directory":
			if e.Content != nil {
				return nil, decodeErr(i, "content is not valid for a directory entry")
			}
			if settings != nil {
				b.AddDirectoryWithSettings(e.Path, *settings)
			} else {
				b.AddDirectory(e.Path)
			}
		case "empty_file":
			if e.Content != nil {
				return nil, decodeErr(i, "content is not valid for an empty_file entry")
			}
			if settings != nil {
				b.AddEmptyFileWithSettings(e.Path, *settings)
			} else {
				b.AddEmptyFile(e.Path)
			}
		case "text_file":
			content := ""
			if e.Content != nil {
				content = *e.Content
			}
			if settings != nil {
				b.AddFileWithSettings(e.Path, content, *settings)
			} else {
				b.AddFile(e.Path, content)
			}
		case "":
			return nil, decodeErr(i, "missing type")
		default:
			return nil, decodeErr(i, fmt.Sprintf("unknown type %q", e.Type))
		}
	}

	return b, nil
}

// FromYAMLString materializes a tree from a YAML-formatted string.
func FromYAMLString(content string) (*Tree, error) {
	b, err := ParseYAML([]byte(content))
	if err != nil {
		return nil, err
	}
	return b.Create()
}

// FromYAMLFile materializes a tree from the YAML document at path.
func FromYAMLFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TreeError{Op: "open", Path: path, Index: -1, Err: wrap(ErrDecode, err)}
	}
	b, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return b.Create()
}

func decodeErr(index int, reason string) error {
	return &TreeError{
		Op:    "decode",
		Index: index,
		Err:   fmt.Errorf("%w: entry %d: %s", ErrDecode, index, reason),
	}
}
