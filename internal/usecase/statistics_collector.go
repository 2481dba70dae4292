package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gunvolt24/notifier/internal/ports"
)

// StatisticsCollector — prometheus.Collector поверх модели статистики.
// Каждый scrape заново считает серии из БД; метрики не хранятся в процессе.
type StatisticsCollector struct {
	repo    ports.StatisticsRepository
	log     ports.Logger
	timeout time.Duration

	notifications *prometheus.Desc
	clicked       *prometheus.Desc
	clicks        *prometheus.Desc
	expired       *prometheus.Desc
	uniqueTexts   *prometheus.Desc
	completedAge  *prometheus.Desc
	external      *prometheus.Desc
	cases         *prometheus.Desc
}

func NewStatisticsCollector(repo ports.StatisticsRepository, log ports.Logger, timeout time.Duration) *StatisticsCollector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dims := []string{"producer", "tag", "recipient_kind", "kind"}
	return &StatisticsCollector{
		repo:    repo,
		log:     log,
		timeout: timeout,

		notifications: prometheus.NewDesc("notifications", "Notifications and tasks created", dims, nil),
		clicked:       prometheus.NewDesc("notifications_clicked", "Notifications opened by at least one user", dims, nil),
		clicks:        prometheus.NewDesc("notifications_clicks", "Distinct user clicks on notifications", dims, nil),
		expired:       prometheus.NewDesc("tasks_expired", "Tasks past their deadline and not completed", dims, nil),
		uniqueTexts:   prometheus.NewDesc("notifications_unique_texts", "Distinct notification texts", dims, nil),
		completedAge: prometheus.NewDesc("tasks_completed_by_age",
			"Completed tasks by time from creation to completion",
			append(append([]string(nil), dims...), "clicked", "bucket"), nil),
		external: prometheus.NewDesc("external_notifications", "External notification outcomes",
			[]string{"producer", "tag", "channel", "status", "error_code"}, nil),
		cases: prometheus.NewDesc("cases", "Cases created", []string{"producer", "tag", "recipient_kind"}, nil),
	}
}

func (c *StatisticsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.notifications
	ch <- c.clicked
	ch <- c.clicks
	ch <- c.expired
	ch <- c.uniqueTexts
	ch <- c.completedAge
	ch <- c.external
	ch <- c.cases
}

// Collect — ошибка одного запроса пропускает только его серии в этом scrape.
func (c *StatisticsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	c.collectNotifications(ctx, ch)
	c.collectCompletedAge(ctx, ch)
	c.collectExternal(ctx, ch)
	c.collectCases(ctx, ch)
}

func (c *StatisticsCollector) collectNotifications(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.repo.NotificationStats(ctx)
	if err != nil {
		c.log.Errorf(ctx, "notification stats failed err=%v", err)
		return
	}
	for _, s := range stats {
		lv := []string{s.ProducerID, s.Tag, s.RecipientKind, string(s.Kind)}
		ch <- prometheus.MustNewConstMetric(c.notifications, prometheus.GaugeValue, float64(s.Total), lv...)
		ch <- prometheus.MustNewConstMetric(c.clicked, prometheus.GaugeValue, float64(s.Clicked), lv...)
		ch <- prometheus.MustNewConstMetric(c.clicks, prometheus.GaugeValue, float64(s.Clicks), lv...)
		ch <- prometheus.MustNewConstMetric(c.expired, prometheus.GaugeValue, float64(s.Expired), lv...)
		ch <- prometheus.MustNewConstMetric(c.uniqueTexts, prometheus.GaugeValue, float64(s.UniqueTexts), lv...)
	}
}

func (c *StatisticsCollector) collectCompletedAge(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.repo.CompletedAgeStats(ctx)
	if err != nil {
		c.log.Errorf(ctx, "completed age stats failed err=%v", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(c.completedAge, prometheus.GaugeValue, float64(s.Count),
			s.ProducerID, s.Tag, s.RecipientKind, string(s.Kind), strconv.FormatBool(s.Clicked), s.Bucket)
	}
}

func (c *StatisticsCollector) collectExternal(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.repo.ExternalStats(ctx)
	if err != nil {
		c.log.Errorf(ctx, "external stats failed err=%v", err)
		return
	}
	for _, s := range stats {
		code := s.ErrorCode
		if code == "" {
			code = "none"
		}
		ch <- prometheus.MustNewConstMetric(c.external, prometheus.GaugeValue, float64(s.Count),
			s.ProducerID, s.Tag, s.Channel, s.Status, code)
	}
}

func (c *StatisticsCollector) collectCases(ctx context.Context, ch chan<- prometheus.Metric) {
	stats, err := c.repo.CaseStats(ctx)
	if err != nil {
		c.log.Errorf(ctx, "case stats failed err=%v", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(c.cases, prometheus.GaugeValue, float64(s.Count),
			s.ProducerID, s.Tag, s.RecipientKind)
	}
}
