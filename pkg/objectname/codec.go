// Package objectname encodes and decodes the on-disk object filename
// that carries an object's (objectNumber, version, checksum, COW
// timestamp) tuple. Three historical formats must all still parse;
// see Decode.
package objectname

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformed is returned by Decode when a filename doesn't match any
// of the three known on-disk layouts.
var ErrMalformed = errors.New("illegal object file name")

// NoTimestamp is the on-disk sentinel for "legacy, no COW".
const NoTimestamp int64 = -1

const fieldHexWidth = 16

// Info identifies a single on-disk object file.
type Info struct {
	ObjNo     uint64
	Version   uint64
	Checksum  uint64
	Timestamp int64 // NoTimestamp (-1) for the two legacy formats.
}

// Encode always emits the 48-character form (objNo, version, checksum),
// and additionally appends the 16-character timestamp field when
// ts != NoTimestamp, producing the 64-character form.
func Encode(objNo, version, checksum uint64, ts int64) string {
	var b strings.Builder
	b.Grow(64)
	writeHex(&b, objNo)
	writeHex(&b, version)
	writeHex(&b, checksum)
	if ts != NoTimestamp {
		writeHex(&b, uint64(ts))
	}
	return b.String()
}

// Decode parses a filename produced by Encode, or by either of the two
// legacy formats it superseded:
//
//	32 chars: objNo(16) version(8)  checksum(8)   -> ts = NoTimestamp
//	48 chars: objNo(16) version(16) checksum(16)  -> ts = NoTimestamp
//	64 chars: objNo(16) version(16) checksum(16) timestamp(16)
func Decode(name string) (Info, error) {
	switch len(name) {
	case 32:
		objNo, err := readHex(name[0:16])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		version, err := readHex(name[16:24])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		checksum, err := readHex(name[24:32])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		return Info{ObjNo: objNo, Version: version, Checksum: checksum, Timestamp: NoTimestamp}, nil
	case 48:
		objNo, err := readHex(name[0:16])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		version, err := readHex(name[16:32])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		checksum, err := readHex(name[32:48])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		return Info{ObjNo: objNo, Version: version, Checksum: checksum, Timestamp: NoTimestamp}, nil
	case 64:
		objNo, err := readHex(name[0:16])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		version, err := readHex(name[16:32])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		checksum, err := readHex(name[32:48])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		ts, err := readHex(name[48:64])
		if err != nil {
			return Info{}, fmt.Errorf("%w: %s: %v", ErrMalformed, name, err)
		}
		if ts > math.MaxInt64 {
			return Info{}, fmt.Errorf("%w: %s: timestamp overflows int64", ErrMalformed, name)
		}
		return Info{ObjNo: objNo, Version: version, Checksum: checksum, Timestamp: int64(ts)}, nil
	default:
		return Info{}, fmt.Errorf("%w: %s: unexpected length %d", ErrMalformed, name, len(name))
	}
}

func writeHex(b *strings.Builder, v uint64) {
	hex := strconv.FormatUint(v, 16)
	if pad := fieldHexWidth - len(hex); pad > 0 {
		b.WriteString(strings.Repeat("0", pad))
	}
	b.WriteString(hex)
}

func readHex(s string) (uint64, error) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return 0, fmt.Errorf("non-hex character %q at offset %d", c, i)
		}
	}
	return strconv.ParseUint(s, 16, 64)
}
