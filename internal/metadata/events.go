package metadata

import (
	"encoding/xml"
	"io"
	"os"
)

// EventInfo carries an event definition from the optional events document.
// Currently informational; extraction does not depend on it.
type EventInfo struct {
	ID           uint32
	Name         string
	DurationMin  float64
	DurationMax  float64
	DurationType string
}

// ParseEvents reads the optional event-definitions document. A missing file
// yields an empty map; a decode failure yields whatever was read before it,
// alongside the error, so callers can log and move on.
func ParseEvents(path string) (map[uint32]EventInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[uint32]EventInfo{}, nil
		}
		return map[uint32]EventInfo{}, err
	}
	defer file.Close()

	events := make(map[uint32]EventInfo)
	decoder := xml.NewDecoder(file)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}

		el, ok := tok.(xml.StartElement)
		if !ok || el.Name.Local != "Event" {
			continue
		}
		info := EventInfo{
			ID:           attrUint32(el, "Id"),
			Name:         attrString(el, "Name"),
			DurationMin:  attrFloat(el, "DurationMin"),
			DurationMax:  attrFloat(el, "DurationMax"),
			DurationType: attrString(el, "DurationType"),
		}
		if info.ID > 0 && info.Name != "" {
			events[info.ID] = info
		}
	}
}
