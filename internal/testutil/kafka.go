//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var topicSeq atomic.Uint64

// UniqueTopicAndGroup — уникальные имена топика и группы для одного теста.
// Пример: base="notifications-itest" → "notifications-itest-1a2b3c-1", "notifications-itest-1a2b3c-1.group".
func UniqueTopicAndGroup(base string) (topic, group string) {
	topic = fmt.Sprintf("%s-%s-%d", base, strconv.FormatInt(time.Now().UnixNano(), 36), topicSeq.Add(1))
	return topic, topic + ".group"
}

// EnsureTopicPartitions — создаёт топик с заданным числом партиций и ждёт,
// пока все партиции появятся в метаданных. Уже существующий топик не ошибка.
func EnsureTopicPartitions(ctx context.Context, brokers []string, topic string, partitions int) error {
	if len(brokers) == 0 {
		return errors.New("no brokers")
	}
	addr := brokerAddr(brokers[0])

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return waitPartitions(ctx, addr, topic, partitions)
}

// brokerAddr — "PLAINTEXT://host:port" (как отдаёт testcontainers) → "host:port".
func brokerAddr(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return raw
}

func waitPartitions(ctx context.Context, addr, topic string, want int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var got int
	var lastErr error
	for {
		got, lastErr = countPartitions(ctx, addr, topic)
		if lastErr == nil && got >= want {
			return nil
		}
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("topic %s not ready: %w", topic, lastErr)
			}
			return fmt.Errorf("topic %s not ready partitions=%d want=%d", topic, got, want)
		case <-tick.C:
		}
	}
}

func countPartitions(ctx context.Context, addr, topic string) (int, error) {
	c, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return 0, err
	}
	defer c.Close()
	parts, err := c.ReadPartitions(topic)
	if err != nil {
		return 0, err
	}
	return len(parts), nil
}
