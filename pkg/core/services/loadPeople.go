package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jakechorley/vaccination-hubs/pkg/core/model"
)

// PeopleHeader is the header every people file must start with
var PeopleHeader = []string{"SSN", "LAST", "FIRST", "YEAR"}

// LoadListener is notified of every row that could not be loaded.
// Lines are numbered from 1, the header being line 1.
type LoadListener func(line int, row string)

// PersonAdder registers people; campaign.Campaign implements it
type PersonAdder interface {
	AddPerson(firstName, lastName, ssn string, birthYear int) error
}

// LoadPeople loads people from a .csv or .xlsx file and returns how many were added
func LoadPeople(path string, people PersonAdder, logger *zap.Logger, listener LoadListener) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open people file: %w", err)
	}
	defer file.Close()

	logger.Debug("Loading people", zap.String("path", path))

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadPeopleXLSX(file, people, logger, listener)
	}
	return LoadPeopleCSV(file, people, logger, listener)
}

// LoadPeopleCSV loads people from CSV data with the SSN,LAST,FIRST,YEAR header.
// Malformed rows are skipped and reported to listener with their raw text.
func LoadPeopleCSV(r io.Reader, people PersonAdder, logger *zap.Logger, listener LoadListener) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read people: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: empty file", model.ErrInvalidHeader)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return 0, err
	}

	loader := newRowLoader(people, logger, listener)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			loader.reject(parseErr.StartLine, rawLine(lines, parseErr.StartLine), parseErr)
			continue
		}
		if err != nil {
			return loader.added, fmt.Errorf("failed to read people: %w", err)
		}

		line, _ := reader.FieldPos(0)
		loader.load(line, record)
	}

	logger.Info("People loaded", zap.Int("added", loader.added), zap.Int("rejected", loader.rejected))
	return loader.added, nil
}

// LoadPeopleXLSX loads people from the first sheet of a workbook laid out like the CSV format
func LoadPeopleXLSX(r io.Reader, people PersonAdder, logger *zap.Logger, listener LoadListener) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: empty sheet %s", model.ErrInvalidHeader, sheet)
	}
	if err := checkHeader(rows[0]); err != nil {
		return 0, err
	}

	loader := newRowLoader(people, logger, listener)
	for i, row := range rows[1:] {
		// Row 1 is the header
		line := i + 2
		if len(row) == 0 {
			continue
		}
		loader.load(line, row)
	}

	logger.Info("People loaded", zap.String("sheet", sheet), zap.Int("added", loader.added), zap.Int("rejected", loader.rejected))
	return loader.added, nil
}

// rawLine returns line n (numbered from 1) without its line ending
func rawLine(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

func checkHeader(header []string) error {
	trimmed := make([]string, len(header))
	for i, field := range header {
		trimmed[i] = strings.ToUpper(strings.TrimSpace(field))
	}
	if !slices.Equal(trimmed, PeopleHeader) {
		return fmt.Errorf("%w: got %q, want %q", model.ErrInvalidHeader,
			strings.Join(header, ","), strings.Join(PeopleHeader, ","))
	}
	return nil
}

// rowLoader adds rows to the registry and reports the ones it cannot
type rowLoader struct {
	people   PersonAdder
	logger   *zap.Logger
	listener LoadListener
	added    int
	rejected int
}

func newRowLoader(people PersonAdder, logger *zap.Logger, listener LoadListener) *rowLoader {
	return &rowLoader{people: people, logger: logger, listener: listener}
}

func (l *rowLoader) load(line int, row []string) {
	if err := l.add(row); err != nil {
		l.reject(line, strings.Join(row, ","), err)
		return
	}
	l.added++
}

func (l *rowLoader) add(row []string) error {
	if len(row) != len(PeopleHeader) {
		return fmt.Errorf("expected %d fields, got %d", len(PeopleHeader), len(row))
	}

	ssn := strings.TrimSpace(row[0])
	if ssn == "" {
		return fmt.Errorf("missing SSN")
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return fmt.Errorf("invalid birth year %q: %w", row[3], err)
	}

	return l.people.AddPerson(strings.TrimSpace(row[2]), strings.TrimSpace(row[1]), ssn, year)
}

func (l *rowLoader) reject(line int, row string, err error) {
	l.rejected++
	l.logger.Debug("Skipping row", zap.Int("line", line), zap.String("row", row), zap.Error(err))
	if l.listener != nil {
		l.listener(line, row)
	}
}
