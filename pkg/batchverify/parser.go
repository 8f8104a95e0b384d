package batchverify

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// RecordParser defines the interface for parsing records from various sources.
type RecordParser interface {
	// ParseRecords parses records from a source and returns them in order.
	ParseRecords(source string) ([]*Record, error)
}

// Fields names the record fields (JSON keys or CSV header columns).  Empty
// names fall back to the defaults below.
type Fields struct {
	Message string // default: "message"
	Z       string // default: "z"
	R       string // default: "r"
	S       string // default: "s"
	DER     string // default: "der"
	PubKey  string // default: "pubkey"
}

func (f Fields) withDefaults() Fields {
	if f.Message == "" {
		f.Message = "message"
	}
	if f.Z == "" {
		f.Z = "z"
	}
	if f.R == "" {
		f.R = "r"
	}
	if f.S == "" {
		f.S = "s"
	}
	if f.DER == "" {
		f.DER = "der"
	}
	if f.PubKey == "" {
		f.PubKey = "pubkey"
	}
	return f
}

// JSONParser parses records from JSON files.
type JSONParser struct {
	Fields Fields
}

// ParseRecords parses records from a JSON file.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "...", "pubkey": "02..."},
//	  {"z": "0x...", "der": "3045...", "pubkey": "04..."}
//	]
func (p *JSONParser) ParseRecords(jsonFile string) ([]*Record, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads records from r.
func (p *JSONParser) Parse(r io.Reader) ([]*Record, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := p.Fields.withDefaults()
	records := make([]*Record, 0, len(items))
	for i, item := range items {
		raw := &rawRecord{}
		raw.z, raw.hasZ = item[fields.Z]
		raw.message, raw.hasMessage = item[fields.Message]
		raw.r = item[fields.R]
		raw.s = item[fields.S]

		var err error
		if raw.der, err = stringField(item, fields.DER); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if raw.pubKey, err = stringField(item, fields.PubKey); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		rec, err := raw.decode()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func stringField(item map[string]interface{}, name string) (string, error) {
	v, ok := item[name]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s field must be a string", name)
	}
	return s, nil
}

// CSVParser parses records from CSV files with a header row.
type CSVParser struct {
	Fields Fields
}

// ParseRecords parses records from a CSV file.
func (p *CSVParser) ParseRecords(csvFile string) ([]*Record, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads records from r.
func (p *CSVParser) Parse(r io.Reader) ([]*Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := p.Fields.withDefaults()
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	if _, ok := index[fields.PubKey]; !ok {
		return nil, fmt.Errorf("missing required column: %s", fields.PubKey)
	}

	// column returns the value of the named column, ok is false when the
	// column is absent or the cell is empty.
	column := func(record []string, name string) (string, bool) {
		i, ok := index[name]
		if !ok || i >= len(record) || record[i] == "" {
			return "", false
		}
		return record[i], true
	}

	records := make([]*Record, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		raw := &rawRecord{}
		if z, ok := column(record, fields.Z); ok {
			raw.z, raw.hasZ = z, true
		}
		if msg, ok := column(record, fields.Message); ok {
			raw.message, raw.hasMessage = msg, true
		}
		if r, ok := column(record, fields.R); ok {
			raw.r = r
		}
		if s, ok := column(record, fields.S); ok {
			raw.s = s
		}
		raw.der, _ = column(record, fields.DER)
		raw.pubKey, _ = column(record, fields.PubKey)

		rec, err := raw.decode()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}
