package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "karesave.order.placed", Topic("karesave", EventOrderPlaced))
	assert.Equal(t, "order.placed", Topic("", EventOrderPlaced))
}

func TestTopics(t *testing.T) {
	topics := Topics("ks")
	assert.Len(t, topics, 7)
	assert.Contains(t, topics, "ks.donation.pledged")
	assert.Contains(t, topics, "ks.order.placed")
}

func TestKafkaProducer_WriterPerTopic(t *testing.T) {
	p := NewKafkaProducer([]string{"localhost:9092"})
	defer p.Close()
	a := p.GetWriter("a")
	assert.Same(t, a, p.GetWriter("a"))
	assert.NotSame(t, a, p.GetWriter("b"))
	assert.Equal(t, "a", a.Topic)
}
