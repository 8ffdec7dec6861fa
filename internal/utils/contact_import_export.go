package utils

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KovalVladuslav/addressbook/internal/models"
	"github.com/KovalVladuslav/addressbook/internal/validation"
)

type ExportFormat int

const (
	FormatJSON ExportFormat = iota
	FormatCSV
)

func (f ExportFormat) String() string {
	if f == FormatCSV {
		return "csv"
	}
	return "json"
}

// ParseFormat accepts "json" or "csv" in any case.
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatJSON, fmt.Errorf("unsupported format %q (use json or csv)", s)
	}
}

type ImportExportOptions struct {
	Format   ExportFormat
	FilePath string
}

type ContactImportData struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`

	LineNumber int `json:"-"`
}

type ImportError struct {
	LineNumber int
	Field      string
	Message    string
}

type ImportResult struct {
	TotalContacts    int
	ImportedContacts int
	SkippedContacts  int
	Errors           []ImportError
	Warnings         []string
}

type exportWrapper struct {
	ExportedAt    time.Time           `json:"exported_at"`
	Version       string              `json:"version"`
	TotalContacts int                 `json:"total_contacts"`
	Contacts      []ContactImportData `json:"contacts"`
}

var csvHeader = []string{"name", "phones", "birthday"}

type ContactExporter struct {
	options ImportExportOptions
}

type ContactImporter struct {
	options ImportExportOptions
}

// NewContactExporter creates a new contact exporter
func NewContactExporter(options ImportExportOptions) *ContactExporter {
	return &ContactExporter{options: options}
}

// NewContactImporter creates a new contact importer
func NewContactImporter(options ImportExportOptions) *ContactImporter {
	return &ContactImporter{options: options}
}

// ExportContacts writes contacts to the configured file
func (e *ContactExporter) ExportContacts(contacts []*models.Contact) error {
	dir := filepath.Dir(e.options.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data := make([]ContactImportData, 0, len(contacts))
	for _, c := range contacts {
		entry := ContactImportData{Name: c.Name(), Phones: c.PhoneStrings()}
		if b, ok := c.Birthday(); ok {
			entry.Birthday = b.String()
		}
		data = append(data, entry)
	}

	switch e.options.Format {
	case FormatJSON:
		return e.exportJSON(data)
	case FormatCSV:
		return e.exportCSV(data)
	default:
		return fmt.Errorf("unsupported export format")
	}
}

func (e *ContactExporter) exportJSON(data []ContactImportData) error {
	file, err := os.Create(e.options.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(exportWrapper{
		ExportedAt:    time.Now().UTC(),
		Version:       "1.0",
		TotalContacts: len(data),
		Contacts:      data,
	}); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func (e *ContactExporter) exportCSV(data []ContactImportData) error {
	file, err := os.Create(e.options.FilePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, entry := range data {
		if err := writer.Write([]string{entry.Name, strings.Join(entry.Phones, ";"), entry.Birthday}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ImportContacts reads and validates contacts. Invalid rows are reported in
// the result and left out of the returned data.
func (i *ContactImporter) ImportContacts() (*ImportResult, []ContactImportData, error) {
	var (
		rows []ContactImportData
		err  error
	)
	switch i.options.Format {
	case FormatJSON:
		rows, err = i.readJSON()
	case FormatCSV:
		rows, err = i.readCSV()
	default:
		return nil, nil, fmt.Errorf("unsupported import format")
	}
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{TotalContacts: len(rows)}
	valid := make([]ContactImportData, 0, len(rows))
	for _, row := range rows {
		check := validation.ValidateContact(row.Name, row.Phones, row.Birthday)
		for _, w := range check.Warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %s", row.LineNumber, w.Message))
		}
		if !check.IsValid {
			for _, e := range check.Errors {
				result.Errors = append(result.Errors, ImportError{
					LineNumber: row.LineNumber,
					Field:      e.Field,
					Message:    e.Message,
				})
			}
			continue
		}
		row.Name = strings.TrimSpace(row.Name)
		valid = append(valid, row)
	}

	result.ImportedContacts = len(valid)
	result.SkippedContacts = result.TotalContacts - result.ImportedContacts
	return result, valid, nil
}

func (i *ContactImporter) readJSON() ([]ContactImportData, error) {
	file, err := os.Open(i.options.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var wrapper exportWrapper
	if err := json.NewDecoder(file).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for idx := range wrapper.Contacts {
		wrapper.Contacts[idx].LineNumber = idx + 1
	}
	return wrapper.Contacts, nil
}

func (i *ContactImporter) readCSV() ([]ContactImportData, error) {
	file, err := os.Open(i.options.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	headerMap := make(map[string]int)
	for idx, col := range records[0] {
		headerMap[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	if _, ok := headerMap["name"]; !ok {
		return nil, fmt.Errorf("CSV header must contain a name column")
	}

	field := func(record []string, col string) string {
		idx, ok := headerMap[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]ContactImportData, 0, len(records)-1)
	for rowIdx, record := range records[1:] {
		row := ContactImportData{
			LineNumber: rowIdx + 2, // header is line 1
			Name:       field(record, "name"),
			Birthday:   field(record, "birthday"),
		}
		if phones := field(record, "phones"); phones != "" {
			for _, p := range strings.Split(phones, ";") {
				if p = strings.TrimSpace(p); p != "" {
					row.Phones = append(row.Phones, p)
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MergeContacts adds imported data to book. New names become new contacts;
// for existing names only missing phones and a missing birthday are added.
// It returns the names it created and the existing names it changed.
func MergeContacts(book *models.AddressBook, data []ContactImportData) (created, updated []string, err error) {
	for _, entry := range data {
		contact, exists := book.Find(entry.Name)
		if !exists {
			contact, err = models.NewContact(entry.Name)
			if err != nil {
				return created, updated, fmt.Errorf("line %d: %w", entry.LineNumber, err)
			}
		}

		changed := false
		for _, phone := range entry.Phones {
			if _, ok := contact.FindPhone(phone); ok && exists {
				continue
			}
			if err := contact.AddPhone(phone); err != nil {
				return created, updated, fmt.Errorf("line %d: %w", entry.LineNumber, err)
			}
			changed = true
		}
		if _, has := contact.Birthday(); entry.Birthday != "" && !has {
			if err := contact.AddBirthday(entry.Birthday); err != nil {
				return created, updated, fmt.Errorf("line %d: %w", entry.LineNumber, err)
			}
			changed = true
		}

		if !exists {
			book.AddRecord(contact)
			created = append(created, contact.Name())
		} else if changed {
			updated = append(updated, contact.Name())
		}
	}
	return created, updated, nil
}

// GenerateBackupFilename returns a timestamped export file name
func GenerateBackupFilename(format ExportFormat, now time.Time) string {
	return fmt.Sprintf("abook_contacts_%s.%s", now.Format("20060102_150405"), format)
}
