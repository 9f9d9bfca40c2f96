package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/smartcache/internal/model"
)

const indexFile = "_index.yaml"

// ReportStore persists and retrieves analysis reports.
type ReportStore interface {
	// SaveReports writes one document per result, so a source without
	// routines is still recorded with its hash.
	SaveReports(path m.Path, results []m.FileResult) error
	LoadReports(path m.Path) ([]m.Report, error)
	RegenerateIndex(path m.Path) error
	// CheckUpdates returns the sources whose stored reports are missing or
	// were produced from different file contents.
	CheckUpdates(path m.Path, sources []m.Source) ([]m.Source, error)
}

// LocalReportStore writes one YAML document per source file plus an index.
type LocalReportStore struct{}

// NewReportStore constructs a ReportStore implementation.
func NewReportStore() ReportStore {
	return &LocalReportStore{}
}

type routineYAML struct {
	Name       string       `yaml:"name"`
	Line       int          `yaml:"line"`
	Functional bool         `yaml:"functional"`
	Reasons    []m.Reason   `yaml:"reasons,omitempty"`
	CallSites  []m.CallSite `yaml:"call_sites,omitempty"`
}

type reportYAML struct {
	Source   string        `yaml:"source"`
	Hash     string        `yaml:"hash"`
	Routines []routineYAML `yaml:"routines"`
}

type indexEntry struct {
	TotalRoutines      int           `yaml:"total_routines"`
	FunctionalRoutines int           `yaml:"functional_routines"`
	WrappedCallSites   int           `yaml:"wrapped_call_sites"`
	Sources            []indexSource `yaml:"sources"`
}

type indexSource struct {
	Source     string   `yaml:"source"`
	Hash       string   `yaml:"hash"`
	Report     string   `yaml:"report"`
	Functional []string `yaml:"functional,omitempty"`
}

// SaveReports writes one YAML file per source file.
func (rs *LocalReportStore) SaveReports(path m.Path, results []m.FileResult) error {
	if path == "" {
		return errors.New("reports path is empty")
	}

	docs := toDocuments(results)
	if len(docs) == 0 {
		return nil
	}

	if err := os.MkdirAll(string(path), 0o750); err != nil {
		return fmt.Errorf("failed to create reports dir: %w", err)
	}

	for _, doc := range docs {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode report for %s: %w", doc.Source, err)
		}

		file := filepath.Join(string(path), rs.reportFileName(doc.Source))
		if err := os.WriteFile(file, data, 0o600); err != nil {
			return fmt.Errorf("failed to write report %s: %w", file, err)
		}
	}

	return nil
}

// LoadReports reads every stored report document, ordered by source then line.
func (rs *LocalReportStore) LoadReports(path m.Path) ([]m.Report, error) {
	docs, err := rs.loadDocuments(path)
	if err != nil {
		return nil, err
	}

	var reports []m.Report

	for _, doc := range docs {
		for _, r := range doc.Routines {
			reports = append(reports, fromRoutineYAML(doc, r))
		}
	}

	return reports, nil
}

// RegenerateIndex rewrites _index.yaml from the stored report documents.
func (rs *LocalReportStore) RegenerateIndex(path m.Path) error {
	docs, err := rs.loadDocuments(path)
	if err != nil {
		return err
	}

	var idx indexEntry

	for _, doc := range docs {
		entry := indexSource{
			Source: doc.Source,
			Hash:   doc.Hash,
			Report: rs.reportFileName(doc.Source),
		}

		for _, r := range doc.Routines {
			idx.TotalRoutines++

			if r.Functional {
				idx.FunctionalRoutines++
				entry.Functional = append(entry.Functional, r.Name)
			}

			for _, site := range r.CallSites {
				if site.Wrapped {
					idx.WrappedCallSites++
				}
			}
		}

		idx.Sources = append(idx.Sources, entry)
	}

	data, err := yaml.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	return os.WriteFile(filepath.Join(string(path), indexFile), data, 0o600)
}

// CheckUpdates compares source hashes with the stored documents.
func (rs *LocalReportStore) CheckUpdates(path m.Path, sources []m.Source) ([]m.Source, error) {
	if path == "" {
		return nil, errors.New("reports path is empty")
	}

	docs, err := rs.loadDocuments(path)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]string, len(docs))
	for _, doc := range docs {
		stored[doc.Source] = doc.Hash
	}

	var changed []m.Source

	for _, source := range sources {
		if source.Origin == nil {
			continue
		}

		if hash, ok := stored[string(source.Origin.Path)]; ok && hash == source.Origin.Hash {
			continue
		}

		changed = append(changed, source)
	}

	return changed, nil
}

func (rs *LocalReportStore) loadDocuments(path m.Path) ([]reportYAML, error) {
	if path == "" {
		return nil, errors.New("reports path is empty")
	}

	entries, err := os.ReadDir(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read reports dir: %w", err)
	}

	var docs []reportYAML

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == indexFile || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(string(path), name))
		if err != nil {
			return nil, fmt.Errorf("failed to read report %s: %w", name, err)
		}

		var doc reportYAML
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode report %s: %w", name, err)
		}

		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Source < docs[j].Source })

	return docs, nil
}

// reportFileName derives a stable 16 hex character name from the source path.
func (rs *LocalReportStore) reportFileName(source string) string {
	return fmt.Sprintf("%016x.yaml", xxhash.Sum64String(source))
}

// toDocuments builds one document per result; results without an origin are skipped.
func toDocuments(results []m.FileResult) []reportYAML {
	docs := make([]reportYAML, 0, len(results))

	for _, result := range results {
		if result.Source.Origin == nil {
			continue
		}

		doc := reportYAML{
			Source:   string(result.Source.Origin.Path),
			Hash:     result.Source.Origin.Hash,
			Routines: []routineYAML{},
		}

		for _, r := range result.Reports {
			doc.Routines = append(doc.Routines, routineYAML{
				Name:       r.Routine,
				Line:       r.Line,
				Functional: r.Functional,
				Reasons:    r.Reasons,
				CallSites:  r.CallSites,
			})
		}

		docs = append(docs, doc)
	}

	return docs
}

func fromRoutineYAML(doc reportYAML, r routineYAML) m.Report {
	return m.Report{
		Source:     m.Path(doc.Source),
		Hash:       doc.Hash,
		Routine:    r.Name,
		Line:       r.Line,
		Functional: r.Functional,
		Reasons:    r.Reasons,
		CallSites:  r.CallSites,
	}
}
