package domain

import "time"

// HistoryID is a unique identifier for a history record.
type HistoryID string

// String returns the string representation of the HistoryID.
func (id HistoryID) String() string {
	return string(id)
}

// HistoryRecord is a stored script generation.
type HistoryRecord struct {
	ID         HistoryID    `json:"id"`
	CreatedAt  time.Time    `json:"created_at"`
	Brand      string       `json:"brand"`
	SourceText string       `json:"source_text"`
	Result     ScriptResult `json:"result"`
	IsUsed     bool         `json:"is_used"`
}

// NewHistoryRecord creates an unused record for a finished generation.
func NewHistoryRecord(id HistoryID, req ScriptRequest, result ScriptResult) *HistoryRecord {
	return &HistoryRecord{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Brand:      req.Brand,
		SourceText: req.SourceText,
		Result:     result,
	}
}
