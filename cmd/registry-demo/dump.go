package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/svcregistry/di"
)

// Dump is the document written after registration.
type Dump struct {
	Service    string                `json:"service" yaml:"service"`
	RegistryID string                `json:"registry_id" yaml:"registry_id"`
	Instances  []di.RegistrationInfo `json:"instances" yaml:"instances"`
}

func writeDump(w io.Writer, format string, d Dump) error {
	switch format {
	case "none":
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown dump format %q", format)
	}
}
