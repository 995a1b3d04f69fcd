package metadata

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"kithara/internal/services"
)

// FileInfo maps an embedded asset id to its authored names from a
// soundbank-scoped document.
type FileInfo struct {
	ID        uint32
	ShortName string
	Path      string
}

// StreamedFileInfo maps a loose streamed asset id to its authored name from
// the project-scoped document.
type StreamedFileInfo struct {
	ID        uint32
	ShortName string
}

// ParseSoundbank reads a soundbank-scoped document and returns the id to
// name mapping from its IncludedMemoryFiles listing. Entries with a missing
// id or short name are dropped; unknown elements and attributes are ignored.
func ParseSoundbank(path string) (map[uint32]FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "metadata", "parse", fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()

	files := make(map[uint32]FileInfo)
	decoder := xml.NewDecoder(file)
	inMemoryFiles := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFormat, "metadata", "parse", fmt.Sprintf("decode %s", path), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "IncludedMemoryFiles":
				inMemoryFiles = true
			case "File":
				if !inMemoryFiles {
					continue
				}
				info := FileInfo{ID: attrUint32(t, "Id")}
				if err := readFileChildren(decoder, t.Name.Local, func(name, text string) {
					switch name {
					case "ShortName":
						info.ShortName = text
					case "Path":
						info.Path = text
					}
				}); err != nil {
					return nil, services.Wrap(services.ErrFormat, "metadata", "parse", fmt.Sprintf("decode %s", path), err)
				}
				if info.ID > 0 && info.ShortName != "" {
					files[info.ID] = info
				}
			}
		case xml.EndElement:
			if t.Name.Local == "IncludedMemoryFiles" {
				inMemoryFiles = false
			}
		}
	}
	return files, nil
}

// ParseStreamedFiles reads the project-scoped document and returns the id to
// name mapping from its StreamedFiles listing.
func ParseStreamedFiles(path string) (map[uint32]StreamedFileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "metadata", "parse", fmt.Sprintf("open %s", path), err)
	}
	defer file.Close()

	files := make(map[uint32]StreamedFileInfo)
	decoder := xml.NewDecoder(file)
	inStreamed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrFormat, "metadata", "parse", fmt.Sprintf("decode %s", path), err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "StreamedFiles":
				inStreamed = true
			case "File":
				if !inStreamed {
					continue
				}
				info := StreamedFileInfo{ID: attrUint32(t, "Id")}
				if err := readFileChildren(decoder, t.Name.Local, func(name, text string) {
					if name == "ShortName" {
						info.ShortName = text
					}
				}); err != nil {
					return nil, services.Wrap(services.ErrFormat, "metadata", "parse", fmt.Sprintf("decode %s", path), err)
				}
				if info.ID > 0 && info.ShortName != "" {
					files[info.ID] = info
				}
			}
		case xml.EndElement:
			if t.Name.Local == "StreamedFiles" {
				inStreamed = false
			}
		}
	}
	return files, nil
}

// readFileChildren consumes tokens up to the matching end of the element
// named parent, reporting the text of each direct child element via visit.
func readFileChildren(decoder *xml.Decoder, parent string, visit func(name, text string)) error {
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, err := elementText(decoder)
			if err != nil {
				return err
			}
			visit(t.Name.Local, text)
		case xml.EndElement:
			if t.Name.Local == parent {
				return nil
			}
		}
	}
}

// elementText reads until the current element closes, collecting its
// character data. Nested elements contribute their text too.
func elementText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func attrUint32(el xml.StartElement, name string) uint32 {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			v, err := strconv.ParseUint(attr.Value, 10, 32)
			if err != nil {
				return 0
			}
			return uint32(v)
		}
	}
	return 0
}

func attrFloat(el xml.StartElement, name string) float64 {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			v, err := strconv.ParseFloat(attr.Value, 64)
			if err != nil {
				return 0
			}
			return v
		}
	}
	return 0
}

func attrString(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
