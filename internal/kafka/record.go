package kafka

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TopicPartition — координата партиции в логе.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func (tp TopicPartition) String() string {
	return tp.Topic + "/" + strconv.FormatInt(int64(tp.Partition), 10)
}

// Header — заголовок записи.
type Header struct {
	Key   string
	Value []byte
}

// Record — неизменяемая запись лога. Принадлежит итерации цикла, которая её прочитала.
type Record struct {
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time
	Key       []byte
	Value     []byte
	Headers   []Header
}

// TopicPartition — партиция, из которой пришла запись.
func (r *Record) TopicPartition() TopicPartition {
	return TopicPartition{Topic: r.Topic, Partition: r.Partition}
}

// Tombstone — запись без значения (удаление ключа в compacted-топике).
func (r *Record) Tombstone() bool { return r.Value == nil }

// Coordinates — координаты, время и ключ записи в формате key=value.
func (r *Record) Coordinates() string {
	return fmt.Sprintf("topic=%s partition=%d offset=%d timestamp=%s key=%q",
		r.Topic, r.Partition, r.Offset, r.Timestamp.UTC().Format(time.RFC3339Nano), r.Key)
}

// String — представление записи для логов движка; тело не печатается.
// Содержимое события описывает обработчик, который его декодировал.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.Coordinates())
	if r.Tombstone() {
		b.WriteString(" value=Tombstone")
	} else {
		fmt.Fprintf(&b, " value_bytes=%d", len(r.Value))
	}
	return b.String()
}

// PartitionBatch — записи одной партиции из одного poll, в порядке оффсетов.
type PartitionBatch struct {
	Partition TopicPartition
	Records   []*Record
}
