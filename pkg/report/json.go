package report

import (
	"encoding/json"
	"io"

	"github.com/mhb8436/aria/pkg/engine"
)

// WriteJSON writes the result as indented JSON that LoadDocument reads back
func WriteJSON(w io.Writer, doc *engine.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if doc.Crawl != nil {
		return enc.Encode(doc.Crawl)
	}
	return enc.Encode(doc.Scan)
}
