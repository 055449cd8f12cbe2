package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xtreemfs-go/osd-storage/pkg/objectname"
	"github.com/xtreemfs-go/osd-storage/pkg/util/logger"
	"github.com/xtreemfs-go/osd-storage/pkg/version"
)

// ObjectStatus is the outcome kind of a ReadObject call.
type ObjectStatus int

const (
	DoesNotExist ObjectStatus = iota
	PaddingObject
	Exists
)

// ObjectInformation is the result of ReadObject.
type ObjectInformation struct {
	Status     ObjectStatus
	Data       []byte
	StripeSize int
}

// ReadObject reads up to length bytes at offset from the object named
// by requestedVersion within objNo of fileID. length == -1 means "the
// entire stripe" and requires offset == 0.
func (l *Layout) ReadObject(fileID string, md *FileMetadata, objNo version.ObjectNumber, offset int64, length int64, requestedVersion version.Info) (ObjectInformation, error) {
	assertf(length != -1 || offset == 0, "readObject: length=-1 requires offset=0, got offset=%d", offset)

	stripeSize := md.Striping.StripeSizeForObject(objNo)

	if requestedVersion.Version == 0 {
		return ObjectInformation{Status: DoesNotExist, StripeSize: stripeSize}, nil
	}

	name := objectname.Encode(objNo, requestedVersion.Version, requestedVersion.Checksum, requestedVersion.Timestamp)
	path := filepath.Join(l.fileDir(fileID), name)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ObjectInformation{Status: DoesNotExist, StripeSize: stripeSize}, nil
		}
		return ObjectInformation{}, fmt.Errorf("stat object %q: %w", path, err)
	}

	fileLength := info.Size()
	if fileLength == 0 {
		return ObjectInformation{Status: PaddingObject, StripeSize: stripeSize}, nil
	}

	if offset >= fileLength {
		return ObjectInformation{Status: Exists, Data: []byte{}, StripeSize: stripeSize}, nil
	}

	readLen := length
	if readLen == -1 {
		readLen = fileLength
	}
	if remaining := fileLength - offset; readLen > remaining {
		readLen = remaining
	}

	lastOffset := offset + readLen
	assertf(lastOffset <= int64(stripeSize), "readObject: lastOffset %d exceeds stripe size %d", lastOffset, stripeSize)

	buf := l.pool.Get(int(readLen))
	defer l.pool.Put(buf)

	f, err := os.Open(path)
	if err != nil {
		return ObjectInformation{}, fmt.Errorf("open object %q: %w", path, err)
	}
	defer f.Close()

	n, err := f.ReadAt(buf, offset)
	if err != nil && n != len(buf) {
		return ObjectInformation{}, fmt.Errorf("read object %q: %w", path, err)
	}

	out := make([]byte, n)
	copy(out, buf[:n])

	return ObjectInformation{Status: Exists, Data: out, StripeSize: stripeSize}, nil
}

// unwrapObjectData materializes the full stripe for objNo as it exists
// on disk right now (via info), zero-padded out to the stripe size,
// used by the COW write and truncate paths before splicing new data
// in. A does-not-exist info (Version == 0) yields an all-zero stripe.
func (l *Layout) unwrapObjectData(fileID string, md *FileMetadata, objNo version.ObjectNumber, info version.Info) ([]byte, error) {
	stripeSize := md.Striping.StripeSizeForObject(objNo)
	full := make([]byte, stripeSize)

	if info.Version == 0 {
		return full, nil
	}

	name := objectname.Encode(objNo, info.Version, info.Checksum, info.Timestamp)
	path := filepath.Join(l.fileDir(fileID), name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return full, nil
		}
		return nil, fmt.Errorf("read predecessor object %q: %w", path, err)
	}

	copy(full, data)
	return full, nil
}

func (l *Layout) warnParseFault(name string, err error) {
	l.log.Warn("illegal file discovered and ignored",
		logger.FieldString("name", name),
		logger.FieldError(err))
}
