package pkg

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer_TitleStripsMarkup(t *testing.T) {
	s := NewSanitizer()
	assert.Equal(t, "Hello", s.Title("  <b>Hello</b> "))
	assert.Empty(t, s.Title("<script>alert(1)</script>"))
	assert.Empty(t, s.Title("   "))
}

func TestSanitizer_MarkdownRendersAndNeutralisesScripts(t *testing.T) {
	s := NewSanitizer()

	out := s.Markdown("**bold** text")
	assert.Contains(t, out, "<strong>bold</strong>")

	out = s.Markdown(`hi <script>alert(1)</script>`)
	assert.NotContains(t, out, "<script")

	out = s.Markdown(`<img src=x onerror="alert(1)">`)
	assert.NotContains(t, out, "<img")

	out = s.Markdown(`[x](javascript:alert(1))`)
	assert.NotContains(t, out, `href="javascript:`)

	assert.Empty(t, s.Markdown("  \n "))
}

func TestIDGenerator_UniqueWithinSameInstant(t *testing.T) {
	g := NewIDGenerator()
	now := time.Now()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := g.New(now)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestTypedErrors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("post", "42"))
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "42", nf.ID)
	assert.Equal(t, "post not found", nf.Error())

	var ve *ValidationError
	assert.True(t, errors.As(NewValidationError("title required"), &ve))
	assert.False(t, errors.As(err, &ve))
}

func TestNewKafkaProducer_Validates(t *testing.T) {
	_, err := NewKafkaProducer(KafkaConfig{Topic: "t"})
	assert.Error(t, err)
	_, err = NewKafkaProducer(KafkaConfig{Brokers: []string{"k:9092"}})
	assert.Error(t, err)

	p, err := NewKafkaProducer(KafkaConfig{Brokers: []string{"k:9092"}, Topic: "blog-events"})
	require.NoError(t, err)
	assert.Equal(t, "blog-events", p.Topic())
	assert.NoError(t, p.Close())
}

func TestKafkaHeaders_SortedByKey(t *testing.T) {
	hs := kafkaHeaders(map[string]string{"b": "2", "a": "1"})
	require.Len(t, hs, 2)
	assert.Equal(t, "a", hs[0].Key)
	assert.Equal(t, []byte("2"), hs[1].Value)
	assert.Nil(t, kafkaHeaders(nil))
}

func TestModerationHTML_EscapesKindAndID(t *testing.T) {
	out := ModerationHTML("post", "<id>", "Title", "<p>body</p>")
	assert.Contains(t, out, "&lt;id&gt;")
	assert.Contains(t, out, "<p>body</p>")
}

func TestNewMailer_Validates(t *testing.T) {
	_, err := NewMailer(SMTPConfig{Port: 587, From: "a@example.com"})
	assert.Error(t, err)
	_, err = NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Error(t, err)

	m, err := NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587, From: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", m.from)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello & bye world", PlainText("<p>Hello &amp; bye</p>\n<div><b>world</b></div>"))
	assert.Empty(t, PlainText("<br/>"))
}
