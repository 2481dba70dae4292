package kafka

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kotel"
	"github.com/twmb/franz-go/plugin/kzap"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string

	// SeekToBeginning — при назначении партиции перематывать её в самое начало.
	SeekToBeginning bool
	// ReplayPeriodically — плановые перемотки по Leaps. Только для идемпотентных обработчиков.
	ReplayPeriodically bool
	Leaps              LeapSchedule

	PollTimeout    time.Duration
	ProcessTimeout time.Duration
	MaxBackoff     time.Duration // 0 — без потолка

	OnAssigned AssignedFunc
	OnRevoked  RevokedFunc

	// Properties — переопределения свойств клиента в нотации Kafka (client.id, fetch.max.wait.ms, ...).
	Properties map[string]string

	// ZapLogger — если задан, клиент пишет свои логи через kzap.
	ZapLogger *zap.Logger
	// Tracing — спаны produce/consume через kotel и глобальный TracerProvider.
	Tracing bool
}

// clientProperties — разобранные Properties.
type clientProperties struct {
	ClientID          string
	FetchMaxWait      time.Duration
	FetchMaxBytes     int32
	FetchMinBytes     int32
	SessionTimeout    time.Duration
	HeartbeatInterval time.Duration
	RebalanceTimeout  time.Duration
	ResetToLatest     bool
	MaxPollRecords    int
	InstanceID        string
}

// parseProperties — известные ключи переводятся в настройки клиента; неизвестный ключ — ошибка.
func parseProperties(props map[string]string) (clientProperties, error) {
	var p clientProperties

	for rawKey, rawVal := range props {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		val := strings.TrimSpace(rawVal)

		var err error
		switch key {
		case "client.id":
			p.ClientID = val
		case "group.instance.id":
			p.InstanceID = val
		case "fetch.max.wait.ms":
			p.FetchMaxWait, err = parseMillis(val)
		case "fetch.max.bytes":
			p.FetchMaxBytes, err = parseInt32(val)
		case "fetch.min.bytes":
			p.FetchMinBytes, err = parseInt32(val)
		case "session.timeout.ms":
			p.SessionTimeout, err = parseMillis(val)
		case "heartbeat.interval.ms":
			p.HeartbeatInterval, err = parseMillis(val)
		case "max.poll.interval.ms", "rebalance.timeout.ms":
			p.RebalanceTimeout, err = parseMillis(val)
		case "max.poll.records":
			p.MaxPollRecords, err = strconv.Atoi(val)
		case "auto.offset.reset":
			switch strings.ToLower(val) {
			case "earliest":
				p.ResetToLatest = false
			case "latest":
				p.ResetToLatest = true
			default:
				err = fmt.Errorf("want earliest or latest, got %q", val)
			}
		default:
			return clientProperties{}, fmt.Errorf("unsupported kafka property %q", rawKey)
		}
		if err != nil {
			return clientProperties{}, fmt.Errorf("kafka property %q: %w", rawKey, err)
		}
	}

	return p, nil
}

func parseMillis(v string) (time.Duration, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Millisecond, nil
}

func parseInt32(v string) (int32, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	return int32(n), err
}

// clientOptions — опции franz-go: группа, один топик, ручной коммит,
// ребалансировка только между тиками цикла.
func (c *ConsumerConfig) clientOptions(props clientProperties) []kgo.Opt {
	reset := kgo.NewOffset().AtStart()
	if props.ResetToLatest {
		reset = kgo.NewOffset().AtEnd()
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.ConsumerGroup(c.GroupID),
		kgo.ConsumeTopics(c.Topic),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
		kgo.ConsumeResetOffset(reset),
	}

	if props.ClientID != "" {
		opts = append(opts, kgo.ClientID(props.ClientID))
	}
	if props.InstanceID != "" {
		opts = append(opts, kgo.InstanceID(props.InstanceID))
	}
	if props.FetchMaxWait > 0 {
		opts = append(opts, kgo.FetchMaxWait(props.FetchMaxWait))
	}
	if props.FetchMaxBytes > 0 {
		opts = append(opts, kgo.FetchMaxBytes(props.FetchMaxBytes))
	}
	if props.FetchMinBytes > 0 {
		opts = append(opts, kgo.FetchMinBytes(props.FetchMinBytes))
	}
	if props.SessionTimeout > 0 {
		opts = append(opts, kgo.SessionTimeout(props.SessionTimeout))
	}
	if props.HeartbeatInterval > 0 {
		opts = append(opts, kgo.HeartbeatInterval(props.HeartbeatInterval))
	}
	if props.RebalanceTimeout > 0 {
		opts = append(opts, kgo.RebalanceTimeout(props.RebalanceTimeout))
	}

	if c.ZapLogger != nil {
		opts = append(opts, kgo.WithLogger(kzap.New(c.ZapLogger.Named("franz"))))
	}
	if c.Tracing {
		tracer := kotel.NewTracer(kotel.TracerProvider(otel.GetTracerProvider()))
		opts = append(opts, kgo.WithHooks(kotel.NewKotel(kotel.WithTracer(tracer)).Hooks()...))
	}

	return opts
}
