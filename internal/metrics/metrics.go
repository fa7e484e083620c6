// Package metrics exports report totals as a Prometheus textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theirongolddev/chatrecap/internal/model"
)

// Metrics holds the gauges describing one report.
type Metrics struct {
	registry *prometheus.Registry

	Conversations prometheus.Gauge
	Messages      *prometheus.GaugeVec
	Characters    *prometheus.GaugeVec
	ModelMessages *prometheus.GaugeVec
	MonthMessages *prometheus.GaugeVec
}

// New creates the gauges on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Conversations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chatrecap_conversations",
		Help: "Number of conversations in the export",
	})
	m.Messages = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chatrecap_messages",
		Help: "Messages in the report scope by role",
	}, []string{"role"})
	m.Characters = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chatrecap_characters",
		Help: "Characters of message text in the report scope by role",
	}, []string{"role"})
	m.ModelMessages = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chatrecap_model_messages",
		Help: "Assistant messages in the report scope by model",
	}, []string{"model"})
	m.MonthMessages = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "chatrecap_month_messages",
		Help: "Messages in the report scope by month",
	}, []string{"month"})

	m.registry.MustRegister(
		m.Conversations,
		m.Messages,
		m.Characters,
		m.ModelMessages,
		m.MonthMessages,
	)
	return m
}

// Record sets every gauge from the report.
func (m *Metrics) Record(r model.Report) {
	m.Conversations.Set(float64(r.TotalConversations))

	m.Messages.WithLabelValues("total").Set(float64(r.TotalMessages))
	m.Messages.WithLabelValues(model.RoleUser).Set(float64(r.User.Messages))
	m.Messages.WithLabelValues(model.RoleAssistant).Set(float64(r.Assistant.Messages))
	m.Characters.WithLabelValues(model.RoleUser).Set(float64(r.User.Chars))
	m.Characters.WithLabelValues(model.RoleAssistant).Set(float64(r.Assistant.Chars))

	m.ModelMessages.Reset()
	for _, ms := range r.Models {
		m.ModelMessages.WithLabelValues(ms.Model).Set(float64(ms.Messages))
	}

	m.MonthMessages.Reset()
	for _, ms := range r.Monthly {
		m.MonthMessages.WithLabelValues(monthLabel(ms.Key)).Set(float64(ms.Messages))
	}
}

// WriteTextfile writes the registry in text exposition format to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Export records the report and writes it to path.
func Export(path string, r model.Report) error {
	m := New()
	m.Record(r)
	return m.WriteTextfile(path)
}

func monthLabel(k model.YearMonth) string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}
