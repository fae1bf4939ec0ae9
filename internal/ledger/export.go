// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Export is a run with every recorded row.
type Export struct {
	Run  RunInfo    `json:"run" yaml:"run"`
	Rows []RowEntry `json:"rows" yaml:"rows"`
}

func (s *Store) export(ctx context.Context, id string) (*Export, error) {
	info, err := s.Run(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.Rows(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return &Export{Run: info, Rows: rows}, nil
}

// ExportYAML writes the run and its rows to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, id string, w io.Writer) error {
	e, err := s.export(ctx, id)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the run and its rows to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, id string, w io.Writer) error {
	e, err := s.export(ctx, id)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
