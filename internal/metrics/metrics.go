package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DatasetsLoaded counts benchmark result files loaded into storage.
var DatasetsLoaded = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "vecbench",
	Name:      "datasets_loaded_total",
	Help:      "Total number of benchmark result files loaded.",
})

// DatasetsSkipped counts files that matched a pattern but could not be loaded.
var DatasetsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "vecbench",
	Name:      "datasets_skipped_total",
	Help:      "Total number of benchmark result files skipped because they could not be read.",
})

// RowsLoaded counts benchmark rows across all loaded files.
var RowsLoaded = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "vecbench",
	Name:      "rows_loaded_total",
	Help:      "Total number of benchmark rows loaded.",
})

// ArtifactsWritten counts report outputs by kind (png, csv, parquet).
var ArtifactsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "vecbench",
	Name:      "artifacts_written_total",
	Help:      "Total number of report artifacts written, by kind.",
}, []string{"kind"})

// Init registers all metrics with the default Prometheus registry.
// Keeping registration centralized makes adding new metrics straightforward later.
func Init() {
	prometheus.MustRegister(DatasetsLoaded, DatasetsSkipped, RowsLoaded, ArtifactsWritten)
}

// WriteTextfile dumps the default registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
