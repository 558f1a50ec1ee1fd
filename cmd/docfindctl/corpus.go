package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docfind"
)

// corpusFile is the on-disk corpus layout:
//
//	documents:
//	  - id: dh-1
//	    title: Đại học Bách khoa
//	    tags: [giáo dục]
//	    created_at: 2025-01-02T00:00:00Z
type corpusFile struct {
	Documents []docfind.Document `yaml:"documents"`
}

func loadCorpus(path string) (*docfind.Corpus, error) {
	if path == "" {
		return nil, fmt.Errorf("--corpus is required")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	c, err := docfind.NewCorpus(f.Documents)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}
