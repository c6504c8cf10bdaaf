package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mmynk/seatsync/internal/models"
)

// document is the persisted shape: one field holding every table.
// Tables is a pointer so a document without the field can be told apart
// from one with an empty table list.
type document struct {
	Tables *[]models.Table `json:"tables"`
}

// Encode serializes a snapshot into the persisted document.
func Encode(s models.Snapshot) ([]byte, error) {
	tables := s.Tables
	if tables == nil {
		tables = []models.Table{}
	}
	data, err := json.Marshal(document{Tables: &tables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document. ok is false when the document is
// malformed or has no tables field; callers treat that the same as a
// missing record.
func Decode(data []byte) (models.Snapshot, bool) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil || doc.Tables == nil {
		return models.Snapshot{}, false
	}
	tables := *doc.Tables
	for i := range tables {
		if tables[i].Guests == nil {
			tables[i].Guests = []models.Guest{}
		}
	}
	return models.Snapshot{Tables: tables}, true
}
