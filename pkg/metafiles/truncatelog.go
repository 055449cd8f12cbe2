package metafiles

import (
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// TruncateLogFileName is the on-disk name of the truncate log file.
const TruncateLogFileName = ".tlog"

const (
	fieldTruncateEntry       protowire.Number = 1
	fieldTruncateEpoch       protowire.Number = 1
	fieldTruncateObjectCount protowire.Number = 2
)

// TruncateRecord is one entry of a TruncateLog: the epoch a truncate
// happened in, and the object count the file was truncated to.
type TruncateRecord struct {
	Epoch       int64
	ObjectCount uint64
}

// TruncateLog is the restored master history of truncate operations
// applied to a file, one record per master epoch transition.
type TruncateLog struct {
	Entries []TruncateRecord
}

// ReadTruncateLog reads and decodes path. Absence of the file decodes to
// an empty log.
func ReadTruncateLog(path string) (TruncateLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return TruncateLog{}, nil
		}
		return TruncateLog{}, err
	}
	return DecodeTruncateLog(data)
}

// WriteTruncateLog encodes log and writes it to path.
func WriteTruncateLog(path string, log TruncateLog) error {
	return os.WriteFile(path, EncodeTruncateLog(log), 0o644)
}

// EncodeTruncateLog hand-encodes log as a repeated embedded-message
// protobuf field (field 1), each entry carrying epoch (field 1, varint)
// and object_count (field 2, varint) sub-fields.
func EncodeTruncateLog(log TruncateLog) []byte {
	var out []byte
	for _, e := range log.Entries {
		var entry []byte
		entry = protowire.AppendTag(entry, fieldTruncateEpoch, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(e.Epoch))
		entry = protowire.AppendTag(entry, fieldTruncateObjectCount, protowire.VarintType)
		entry = protowire.AppendVarint(entry, e.ObjectCount)

		out = protowire.AppendTag(out, fieldTruncateEntry, protowire.BytesType)
		out = protowire.AppendBytes(out, entry)
	}
	return out
}

// DecodeTruncateLog parses the wire format EncodeTruncateLog produces.
func DecodeTruncateLog(data []byte) (TruncateLog, error) {
	var log TruncateLog

	offset := 0
	for offset < len(data) {
		num, typ, n := protowire.ConsumeTag(data[offset:])
		if err := protowire.ParseError(n); err != nil {
			return TruncateLog{}, fmt.Errorf("invalid tag at offset %d: %w", offset, err)
		}
		offset += n

		if typ != protowire.BytesType || num != fieldTruncateEntry {
			return TruncateLog{}, fmt.Errorf("unexpected field %d/%v at offset %d", num, typ, offset)
		}

		entry, n := protowire.ConsumeBytes(data[offset:])
		if err := protowire.ParseError(n); err != nil {
			return TruncateLog{}, fmt.Errorf("invalid bytes field at offset %d: %w", offset, err)
		}
		offset += n

		rec, err := decodeTruncateRecord(entry)
		if err != nil {
			return TruncateLog{}, err
		}
		log.Entries = append(log.Entries, rec)
	}

	return log, nil
}

func decodeTruncateRecord(data []byte) (TruncateRecord, error) {
	var rec TruncateRecord

	offset := 0
	for offset < len(data) {
		num, typ, n := protowire.ConsumeTag(data[offset:])
		if err := protowire.ParseError(n); err != nil {
			return TruncateRecord{}, fmt.Errorf("invalid tag at offset %d: %w", offset, err)
		}
		offset += n

		if typ != protowire.VarintType {
			return TruncateRecord{}, fmt.Errorf("unexpected wire type %v at offset %d", typ, offset)
		}

		val, n := protowire.ConsumeVarint(data[offset:])
		if err := protowire.ParseError(n); err != nil {
			return TruncateRecord{}, fmt.Errorf("invalid varint at offset %d: %w", offset, err)
		}
		offset += n

		switch num {
		case fieldTruncateEpoch:
			rec.Epoch = int64(val)
		case fieldTruncateObjectCount:
			rec.ObjectCount = val
		}
	}

	return rec, nil
}
