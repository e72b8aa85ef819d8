package triage

import (
	"testing"

	"careconnect/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        model.Priority
	}{
		{"keyword capitalised", "Severe pain", model.PriorityHigh},
		{"no keyword", "mild headache", model.PriorityNormal},
		{"substring without word boundary", "no emergencyroom needed", model.PriorityHigh},
		{"upper case", "CAR ACCIDENT on the highway", model.PriorityHigh},
		{"keyword inside word", "hypercritical reviewer", model.PriorityHigh},
		{"empty", "", model.PriorityNormal},
		{"whitespace", "   ", model.PriorityNormal},
		{"dying", "my plant is dying", model.PriorityHigh},
		{"bleeding", "nose Bleeding since morning", model.PriorityHigh},
		{"urgent", "URGENT", model.PriorityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.description))
		})
	}
}

func TestClassify_NeverLow(t *testing.T) {
	for _, d := range []string{"", "routine checkup", "need medicine refill"} {
		assert.NotEqual(t, model.PriorityLow, Classify(d))
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, model.PriorityHigh, Classify("Critical condition"))
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t,
		`Patient "Jane" from Lagos requires Blood support. Priority: HIGH.`,
		Summarize("Jane", "Lagos", "Blood", model.PriorityHigh),
	)
}

func TestSummarize_EmptyInputsPassThrough(t *testing.T) {
	assert.Equal(t,
		`Patient "" from  requires  support. Priority: NORMAL.`,
		Summarize("", "", "", model.PriorityNormal),
	)
}

func TestReply(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"help", "I need HELP", chatRules[0].reply},
		{"support beats blood", "blood support", chatRules[0].reply},
		{"volunteer", "How do I join?", chatRules[1].reply},
		{"cost", "what is the price", chatRules[2].reply},
		{"dashboard", "open the Dashboard", chatRules[3].reply},
		{"greeting", "hey there", chatRules[4].reply},
		{"blood", "blood type O", chatRules[5].reply},
		{"emergency", "emergency!", chatRules[6].reply},
		{"fallback", "what's the weather", defaultChatReply},
		{"empty", "", defaultChatReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reply(tt.message))
		})
	}
}
