package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterviewRecordMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := InterviewRecord{
		Id:          42,
		MeetingId:   IDFromContent("meeting:acme-q1"),
		ExpertId:    7,
		ExpertName:  "Dana Whitfield",
		Question:    "How consolidated is your vendor landscape?",
		Answer:      "We cut from twelve vendors to four over two years.",
		Credibility: score(8.5),
		Consensus:   score(6),
		Completion:  score(0.75),
		Timestamp:   now.Add(-24 * time.Hour),
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	buf := make([]byte, InterviewRecordMUS.Size(record))
	n := InterviewRecordMUS.Marshal(record, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := InterviewRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, record, decoded)
}

func TestInterviewRecordMUS_NilScores(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := InterviewRecord{
		Id:        1,
		Question:  "Question?",
		Answer:    "Answer.",
		Timestamp: now,
	}

	buf := make([]byte, InterviewRecordMUS.Size(record))
	InterviewRecordMUS.Marshal(record, buf)

	decoded, _, err := InterviewRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Nil(t, decoded.Credibility)
	assert.Nil(t, decoded.Consensus)
	assert.Nil(t, decoded.Completion)
}

func TestProfileRecordMUS_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := ProfileRecord{
		Id:             9,
		Name:           "Sam Ortiz",
		CurrentCompany: "Korn Ferry",
		CurrentTitle:   "Principal",
		History: []Employment{
			{
				Company: "Spencer Stuart",
				Title:   "Senior Associate",
				Start:   now.Add(-5 * 365 * 24 * time.Hour),
				End:     now.Add(-2 * 365 * 24 * time.Hour),
			},
		},
		Active:     true,
		Background: "Executive search, technology officers practice.",
		InsertedAt: now,
		UpdatedAt:  now,
	}

	buf := make([]byte, ProfileRecordMUS.Size(record))
	n := ProfileRecordMUS.Marshal(record, buf)
	require.Equal(t, len(buf), n)

	decoded, n, err := ProfileRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, record, decoded)
}

func TestProfileRecordMUS_EmptyHistory(t *testing.T) {
	record := ProfileRecord{Name: "N"}

	buf := make([]byte, ProfileRecordMUS.Size(record))
	ProfileRecordMUS.Marshal(record, buf)

	decoded, _, err := ProfileRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Empty(t, decoded.History)
	assert.Equal(t, "N", decoded.Name)
}

func TestInterviewRecordMUS_Truncated(t *testing.T) {
	record := InterviewRecord{
		Id:       1,
		Question: "Question?",
		Answer:   "Answer.",
	}

	buf := make([]byte, InterviewRecordMUS.Size(record))
	InterviewRecordMUS.Marshal(record, buf)

	_, _, err := InterviewRecordMUS.Unmarshal(buf[:3])
	assert.Error(t, err)
}
