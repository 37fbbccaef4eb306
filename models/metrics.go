package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	volumeOccludedCells = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "volume_occluded_cells",
		Help: "The number of occluded cells in the occlusion volume.",
	})
)

func instrumentOccludedCells(count int) {
	volumeOccludedCells.Set(float64(count))
}
