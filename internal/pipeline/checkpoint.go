package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// ------------------- Checkpoints -------------------
//
// Every stage boundary is a CSV file on disk: header row names the columns,
// one record per row, UTF-8. This is the durable contract that makes
// resuming from an arbitrary stage possible. The format cannot distinguish
// an empty field from an absent one; after a round trip every column is
// present on every record with "" where the source had nothing.

// ReadRecordSet parses a checkpoint CSV back into a RecordSet.
func ReadRecordSet(path string) (*model.RecordSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rs := model.NewRecordSet(headers)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("checkpoint read error in %s: %w", path, err)
		}
		rec := make(model.Record, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		rs.Append(rec)
	}
	return rs, nil
}

// WriteRecordSet serializes a RecordSet to a checkpoint CSV. Fields absent
// from a record are written as empty strings.
func WriteRecordSet(path string, rs *model.RecordSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(rs.Columns); err != nil {
		return fmt.Errorf("failed to write checkpoint header: %w", err)
	}
	row := make([]string, len(rs.Columns))
	for _, rec := range rs.Records {
		for i, col := range rs.Columns {
			row[i] = rec[col]
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write checkpoint row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
