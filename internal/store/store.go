package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/radiotk/internal/jsonenc"
	"github.com/san-kum/radiotk/internal/spectra"
)

const (
	metadataFile = "metadata.json"
	dataFile     = "data.csv"
)

var (
	// ErrNotFound indicates a reference that is neither a file nor a stored product.
	ErrNotFound = errors.New("store: product not found")
	// ErrFormat indicates a file extension the store cannot read or write.
	ErrFormat = errors.New("store: unsupported file format")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Product describes one stored observation and how it was made.
type Product struct {
	ID        string         `json:"id"`
	Operation string         `json:"operation"`
	Parent    string         `json:"parent,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Header    spectra.Header `json:"header"`
}

// Save writes obs under a new product directory holding metadata.json and
// data.csv, and returns the product metadata.
func (s *Store) Save(obs *spectra.Observation, operation, parent string, params map[string]any) (*Product, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%s_%d", obs.Basename(), operation, now.UnixMilli())
	dir := filepath.Join(s.baseDir, id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	p := &Product{
		ID:        id,
		Operation: operation,
		Parent:    parent,
		Params:    params,
		Timestamp: now,
		Header:    obs.Header,
	}
	if err := writeProduct(dir, p, obs); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return p, nil
}

func writeProduct(dir string, p *Product, obs *spectra.Observation) error {
	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := jsonenc.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	dataOut, err := os.Create(filepath.Join(dir, dataFile))
	if err != nil {
		return err
	}
	defer dataOut.Close()

	if err := WriteCSV(dataOut, obs); err != nil {
		return err
	}
	return dataOut.Close()
}

func (s *Store) List() ([]Product, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Product{}, nil
		}
		return nil, err
	}

	products := make([]Product, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		p, err := s.Metadata(entry.Name())
		if err != nil {
			continue
		}
		products = append(products, *p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].Timestamp.Before(products[j].Timestamp)
	})
	return products, nil
}

func (s *Store) Metadata(id string) (*Product, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}

	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a stored product back into an observation.
func (s *Store) Load(id string) (*spectra.Observation, error) {
	p, err := s.Metadata(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, id, dataFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f, p.Header)
}

// Open resolves ref as a file path first and as a product id second.
func (s *Store) Open(ref string) (*spectra.Observation, string, error) {
	if _, err := os.Stat(ref); err == nil {
		obs, err := ReadFile(ref)
		return obs, ref, err
	}
	obs, err := s.Load(ref)
	if err != nil {
		return nil, "", err
	}
	return obs, ref, nil
}

// ReadFile reads a .json observation, or a .csv of spectra whose header is
// inferred: basename from the file name and channel numbers as frequencies.
func ReadFile(path string) (*spectra.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var obs spectra.Observation
		if err := json.NewDecoder(f).Decode(&obs); err != nil {
			return nil, fmt.Errorf("store: %s: %w", path, err)
		}
		return &obs, nil
	case ".csv":
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return ReadCSV(f, spectra.Header{Basename: base, Foff: 1, Tsamp: 1})
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}
}

// WriteFile writes obs as .json (header and data) or .csv (data only).
func WriteFile(path string, obs *spectra.Observation) error {
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		write = func(w io.Writer) error {
			enc := jsonenc.NewEncoder(w)
			return enc.Encode(obs)
		}
	case ".csv":
		write = func(w io.Writer) error { return WriteCSV(w, obs) }
	default:
		return fmt.Errorf("%w: %s", ErrFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes one spectrum per row under a c0,c1,... header line.
func WriteCSV(w io.Writer, obs *spectra.Observation) error {
	cw := csv.NewWriter(w)
	r, c := obs.Data.Dims()

	header := make([]string, c)
	for j := range header {
		header[j] = "c" + strconv.Itoa(j)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, c)
	for i := 0; i < r; i++ {
		for j := range row {
			row[j] = strconv.FormatFloat(obs.Data.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads spectra written by WriteCSV. The header line is optional.
func ReadCSV(r io.Reader, h spectra.Header) (*spectra.Observation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, 0, len(records))
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		if i == 0 && strings.HasPrefix(record[0], "c") {
			continue
		}
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("store: line %d column %d: %w", i+1, j, err)
			}
			vals[j] = v
		}
		rows = append(rows, vals)
	}

	data, err := spectra.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return spectra.New(h, data)
}
