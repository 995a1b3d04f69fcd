package soundbank

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"kithara/internal/services"
)

// Chunk tags recognized by the walker. Anything else (HIRC, STID, ENVS and
// friends) is skipped by length.
const (
	tagHeader = "BKHD"
	tagIndex  = "DIDX"
	tagData   = "DATA"
)

const indexEntrySize = 12

// Entry describes one embedded audio blob inside an archive. Offset and Size
// are relative to DataOffset, the absolute position of the data section's
// payload within Archive.
type Entry struct {
	AssetID    uint32
	Offset     uint32
	Size       uint32
	Archive    string
	DataOffset int64
}

// Parse walks the chunked container at path and returns one Entry per index
// triple. Chunks are {4-byte tag, u32 little-endian length, payload}; a
// truncated trailing chunk ends the walk cleanly. Entries with a zero size
// are dropped.
func Parse(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "soundbank", "parse", fmt.Sprintf("open archive %s", path), err)
	}
	defer file.Close()

	var (
		triples    []indexTriple
		dataOffset int64
		pos        int64
	)

	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(file, header); err != nil {
			// EOF or a partial trailing chunk header terminates the walk.
			break
		}
		tag := string(header[:4])
		length := binary.LittleEndian.Uint32(header[4:])
		pos += 8
		chunkStart := pos

		switch tag {
		case tagHeader:
			// Bank header carries version and bank id; nothing we need.
		case tagIndex:
			parsed, err := readIndex(file, length)
			if err != nil {
				return nil, services.Wrap(services.ErrFormat, "soundbank", "parse", fmt.Sprintf("read index chunk in %s", path), err)
			}
			triples = append(triples, parsed...)
		case tagData:
			dataOffset = chunkStart
		}

		pos = chunkStart + int64(length)
		if _, err := file.Seek(pos, io.SeekStart); err != nil {
			break
		}
	}

	if len(triples) > 0 && dataOffset == 0 {
		return nil, services.Wrap(services.ErrFormat, "soundbank", "parse", fmt.Sprintf("index without data section in %s", path), nil)
	}

	entries := make([]Entry, 0, len(triples))
	for _, triple := range triples {
		if triple.size == 0 {
			continue
		}
		entries = append(entries, Entry{
			AssetID:    triple.assetID,
			Offset:     triple.offset,
			Size:       triple.size,
			Archive:    path,
			DataOffset: dataOffset,
		})
	}
	return entries, nil
}

type indexTriple struct {
	assetID uint32
	offset  uint32
	size    uint32
}

func readIndex(r io.Reader, length uint32) ([]indexTriple, error) {
	count := length / indexEntrySize
	payload := make([]byte, count*indexEntrySize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("index payload: %w", err)
	}
	triples := make([]indexTriple, 0, count)
	for i := uint32(0); i < count; i++ {
		base := i * indexEntrySize
		triples = append(triples, indexTriple{
			assetID: binary.LittleEndian.Uint32(payload[base:]),
			offset:  binary.LittleEndian.Uint32(payload[base+4:]),
			size:    binary.LittleEndian.Uint32(payload[base+8:]),
		})
	}
	return triples, nil
}

// ExtractTo copies an entry's bytes out of its source archive verbatim.
func ExtractTo(entry Entry, destPath string) error {
	file, err := os.Open(entry.Archive)
	if err != nil {
		return services.Wrap(services.ErrIO, "soundbank", "extract", fmt.Sprintf("open archive %s", entry.Archive), err)
	}
	defer file.Close()

	absolute := entry.DataOffset + int64(entry.Offset)
	if _, err := file.Seek(absolute, io.SeekStart); err != nil {
		return services.Wrap(services.ErrIO, "soundbank", "extract", fmt.Sprintf("seek to asset %d at offset %d", entry.AssetID, absolute), err)
	}

	buf := make([]byte, entry.Size)
	if _, err := io.ReadFull(file, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return services.Wrap(services.ErrIO, "soundbank", "extract", fmt.Sprintf("asset %d extends past end of %s", entry.AssetID, entry.Archive), err)
		}
		return services.Wrap(services.ErrIO, "soundbank", "extract", fmt.Sprintf("read %d bytes for asset %d", entry.Size, entry.AssetID), err)
	}

	if err := os.WriteFile(destPath, buf, 0o644); err != nil {
		return services.Wrap(services.ErrIO, "soundbank", "extract", fmt.Sprintf("write asset %d to %s", entry.AssetID, destPath), err)
	}
	return nil
}
