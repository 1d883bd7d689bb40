package rentbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rentbook/date"
)

// This file contains the snapshot format: the whole book as a single, human
// readable JSON object. It is both the backup/restore format and the format
// of the file store.
//
//	{"version":1,"currency":"USD","properties":[...],"tenants":[...],"payments":[...]}
//
// Documents without a "version" property were written before the format was
// versioned; their payments may lack a month key.

// ErrUnsupportedVersion is returned when decoding a snapshot written by a newer version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// jstate is the object read from the snapshot using json parser. Records are
// kept raw so that one bad record does not reject the whole book.
type jstate struct {
	Currency   string            `json:"currency"`
	Properties []json.RawMessage `json:"properties"`
	Tenants    []json.RawMessage `json:"tenants"`
	Payments   []json.RawMessage `json:"payments"`
}

// SkippedRecord is a snapshot record that could not be decoded.
type SkippedRecord struct {
	List   string // "properties", "tenants" or "payments".
	Index  int    // 0-based position in the list.
	Reason string
}

func (r SkippedRecord) String() string {
	return fmt.Sprintf("%s[%d]: %s", r.List, r.Index, r.Reason)
}

// DecodeState reads a snapshot.
//
// Records that cannot be decoded, like a payment with an unparseable date,
// are left out of the state and returned in skipped. An error is only
// returned when the document itself is unusable.
func DecodeState(r io.Reader) (s *State, skipped []SkippedRecord, err error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read snapshot: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return NewState(), nil, nil
	}

	var jobj any
	if err := json.Unmarshal(content, &jobj); err != nil {
		return nil, nil, fmt.Errorf("snapshot is not a correct json: %w", err)
	}
	version, err := snapshotVersion(jobj)
	if err != nil {
		return nil, nil, err
	}

	var js jstate
	if err := json.Unmarshal(content, &js); err != nil {
		return nil, nil, fmt.Errorf("format error in snapshot version %d: %w", version, err)
	}

	s = &State{
		Version:    SnapshotVersion,
		Currency:   js.Currency,
		Properties: decodeRecords[Property]("properties", js.Properties, &skipped),
		Tenants:    decodeRecords[Tenant]("tenants", js.Tenants, &skipped),
		Payments:   decodeRecords[Payment]("payments", js.Payments, &skipped),
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	if version == 0 {
		// legacy snapshots did not always store the month key.
		for i, p := range s.Payments {
			if p.MonthKey == "" && !p.Date.IsZero() {
				s.Payments[i].MonthKey = date.MonthKey(p.Date)
			}
		}
	}
	return s, skipped, nil
}

// decodeRecords decodes each raw record of a list, appending the failures to skipped.
func decodeRecords[T any](list string, raws []json.RawMessage, skipped *[]SkippedRecord) []T {
	var out []T
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			*skipped = append(*skipped, SkippedRecord{List: list, Index: i, Reason: err.Error()})
			continue
		}
		out = append(out, v)
	}
	return out
}

// snapshotVersion reads the "version" property of a decoded snapshot, 0 when absent.
func snapshotVersion(jobj any) (int, error) {
	if _, ok := jobj.(map[string]any); !ok {
		return 0, fmt.Errorf("snapshot must be a json object, got %T", jobj)
	}
	jval, err := jsonpath.Get("$.version", jobj)
	if err != nil {
		// unknown key: a legacy snapshot.
		return 0, nil
	}
	v, ok := jval.(float64)
	if !ok || v != float64(int(v)) || v < 0 {
		return 0, fmt.Errorf("snapshot property %q must be a positive integer, got %v", "version", jval)
	}
	if int(v) > SnapshotVersion {
		return 0, fmt.Errorf("%w: %d (newest supported is %d)", ErrUnsupportedVersion, int(v), SnapshotVersion)
	}
	return int(v), nil
}

// MarshalJSON implements the json.Marshaler interface for State, in the snapshot format.
func (s *State) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("version", SnapshotVersion)
	w.Append("currency", s.Currency)
	// empty lists are written as [] rather than null.
	w.Append("properties", nonNil(s.Properties))
	w.Append("tenants", nonNil(s.Tenants))
	w.Append("payments", nonNil(s.Payments))
	return w.MarshalJSON()
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// EncodeState writes a snapshot, indented for readability.
func EncodeState(w io.Writer, s *State) error {
	raw, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var b bytes.Buffer
	if err := json.Indent(&b, raw, "", "  "); err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	b.WriteByte('\n')
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	return nil
}
