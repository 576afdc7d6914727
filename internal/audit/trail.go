// Package audit keeps an append-only chain of administrative actions.
//
// Each record embeds the previous record's hash so the chain can be walked
// backwards, but the hash is a plain base64 encoding of the serialized
// record, not a cryptographic digest. The chain detects accidental
// truncation or reordering only; it must never be presented to users as
// tamper-proof.
package audit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Record is one entry in the audit chain.
type Record struct {
	Timestamp    time.Time      `json:"timestamp"`
	Action       string         `json:"action"`
	Data         map[string]any `json:"data"`
	Hash         string         `json:"hash"`
	PreviousHash string         `json:"previous_hash"`
	Immutable    bool           `json:"immutable"`
}

// GenesisHash seeds the chain before any record exists.
const GenesisHash = "genesis"

// NewRecord creates the next record in the chain. previousHash is the hash
// of the prior record, or GenesisHash for the first entry.
func NewRecord(action string, data map[string]any, previousHash string) (*Record, error) {
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if previousHash == "" {
		previousHash = GenesisHash
	}
	if data == nil {
		data = map[string]any{}
	}

	rec := &Record{
		Timestamp:    time.Now().UTC(),
		Action:       action,
		Data:         data,
		PreviousHash: previousHash,
		Immutable:    true,
	}

	hash, err := encodeHash(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit record: %w", err)
	}
	rec.Hash = hash
	return rec, nil
}

// VerifyChain walks records in order and reports the first link whose
// PreviousHash does not match its predecessor's Hash. Returns -1 when the
// chain is consistent.
func VerifyChain(records []*Record) int {
	prev := GenesisHash
	for i, rec := range records {
		if rec.PreviousHash != prev {
			return i
		}
		prev = rec.Hash
	}
	return -1
}

func encodeHash(rec *Record) (string, error) {
	payload := struct {
		Timestamp    time.Time      `json:"timestamp"`
		Action       string         `json:"action"`
		Data         map[string]any `json:"data"`
		PreviousHash string         `json:"previous_hash"`
	}{rec.Timestamp, rec.Action, rec.Data, rec.PreviousHash}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(serialized), nil
}
