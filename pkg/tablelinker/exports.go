package tablelinker

import (
	"log/slog"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/geocoder"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/logger"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/mapping"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/registry"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/task"
)

// Task names one convertor application: key, raw parameters and an optional
// note logged when it runs.
type Task = task.Task

// TasksFromFiles reads, validates and parses one or more JSON or YAML task
// files into a flat task list.
func TasksFromFiles(paths ...string) ([]*Task, error) {
	return task.FromFiles(paths...)
}

// Convertors returns all registered convertor keys, sorted. The extended
// catalog is included.
func Convertors() []string {
	// A lookup miss loads the lazy catalog before listing.
	registry.Exists("")
	return registry.List()
}

// ConvertorInfo describes one registered convertor.
type ConvertorInfo struct {
	Key         string
	Name        string
	Description string
}

// ConvertorInfos returns the metadata of all registered convertors, sorted
// by key.
func ConvertorInfos() []ConvertorInfo {
	infos := make([]ConvertorInfo, 0, 64)
	for _, key := range Convertors() {
		ctor, ok := registry.Get(key)
		if !ok {
			continue
		}
		meta := ctor().Meta()
		infos = append(infos, ConvertorInfo{
			Key:         meta.Key,
			Name:        meta.Name,
			Description: meta.Description,
		})
	}
	return infos
}

// Geocoder is the address-resolution backend interface. The geocoder
// convertors refuse to run until one is installed.
type Geocoder = geocoder.Geocoder

// GeocoderNode is one resolved address element.
type GeocoderNode = geocoder.Node

// SetGeocoder installs the process-wide geocoding backend.
func SetGeocoder(g Geocoder) {
	geocoder.SetBackend(g)
}

// Scorer computes header-label similarity for Mapping. The default is the
// bigram edit-distance scorer; embedding-based scorers plug in here.
type Scorer = mapping.Scorer

// Embedder turns a header label into a dense vector for semantic mapping.
type Embedder = mapping.Embedder

// NewVectorScorer builds a Scorer that compares header labels by the cosine
// similarity of their embeddings.
func NewVectorScorer(e Embedder) Scorer {
	return mapping.NewVectorScorer(e)
}

// SetLogLevel adjusts the engine's logging level.
func SetLogLevel(level slog.Level) {
	logger.SetLevel(level)
}
