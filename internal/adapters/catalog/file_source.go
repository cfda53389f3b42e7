package catalog

import (
	"context"
	"itinerary-service/internal/ports"
	"os"
)

// FileSource reads the POI and venue documents from local JSON or YAML files.
type FileSource struct {
	POIPath   string
	VenuePath string
}

func NewFileSource(poiPath, venuePath string) *FileSource {
	return &FileSource{POIPath: poiPath, VenuePath: venuePath}
}

func (s *FileSource) Name() string { return "file" }

// Load never fails on bad data: unreadable or malformed files are reported
// as issues and leave their half of the catalog empty.
func (s *FileSource) Load(ctx context.Context) (ports.CatalogData, error) {
	if err := ctx.Err(); err != nil {
		return ports.CatalogData{}, err
	}
	return assemble(readFile(s.POIPath), readFile(s.VenuePath)), nil
}

// Paths returns the files backing this source.
func (s *FileSource) Paths() []string {
	return []string{s.POIPath, s.VenuePath}
}

func readFile(p string) rawDocument {
	data, err := os.ReadFile(p)
	return rawDocument{name: p, data: data, format: formatFor(p), err: err}
}
