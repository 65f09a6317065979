package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/obsidianstack/schedhealth/internal/health"
	"github.com/obsidianstack/schedhealth/pkg/types"
)

// Metrics writes rep as Prometheus gauges in the text exposition format.
// Every series carries a constant project label; per-activity series are
// labelled with the activity's input position, name, number and status.
// Names and numbers need not be unique, so index keeps series distinct.
//
// A fresh registry is built per call so repeated renders never leak series
// from a previous project.
func Metrics(w io.Writer, namespace string, p *types.Project, rep health.Report) error {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"project": p.Name}

	gauge := func(name, help string) (prometheus.Gauge, error) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
		return g, reg.Register(g)
	}
	gaugeVec := func(name, help string, labels ...string) (*prometheus.GaugeVec, error) {
		g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, labels)
		return g, reg.Register(g)
	}

	meanSPI, err := gauge("weighted_mean_spi", "Schedule performance index averaged over activities, weighted by planned hours.")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	stddev, err := gauge("spi_standard_deviation", "Population standard deviation of activity SPI values.")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	atRisk, err := gauge("percent_at_risk", "Percentage of activities classified delayed or at risk.")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	byStatus, err := gaugeVec("activities", "Number of activities per schedule-health status.", "status")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	actSPI, err := gaugeVec("activity_spi", "Schedule performance index of one activity.", "index", "activity", "number", "status")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	actSV, err := gaugeVec("activity_sv", "Schedule variance of one activity in percentage points.", "index", "activity", "number", "status")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}
	actHours, err := gaugeVec("activity_planned_hours", "Hours logged plus hours remaining for one activity.", "index", "activity", "number", "status")
	if err != nil {
		return fmt.Errorf("render: register metrics: %w", err)
	}

	meanSPI.Set(rep.WeightedMeanSPI)
	stddev.Set(rep.StandardDeviation)
	atRisk.Set(rep.PercentAtRisk)
	for _, s := range health.Statuses {
		byStatus.WithLabelValues(string(s)).Set(float64(len(rep.Partition(s))))
	}
	for i, ah := range rep.Activities {
		lv := []string{strconv.Itoa(i), ah.Activity.Name, ah.Activity.Number, string(ah.Status)}
		actSPI.WithLabelValues(lv...).Set(ah.SPI)
		actSV.WithLabelValues(lv...).Set(ah.SV)
		actHours.WithLabelValues(lv...).Set(ah.PlannedHours)
	}

	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("render: gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("render: encode metrics: %w", err)
		}
	}
	return nil
}
