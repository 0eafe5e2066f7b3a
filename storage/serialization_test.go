package storage

import (
	"bytes"
	"testing"
	"time"

	"github.com/candorlabs/expertscope/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("meeting-2024-11-03")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	t.Run("empty data is truncated", func(t *testing.T) {
		_, err := UnmarshalID([]byte{})
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("varint overflow is a serialization failure", func(t *testing.T) {
		_, err := UnmarshalID(bytes.Repeat([]byte{0xFF}, 11))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.NotErrorIs(t, err, ErrTruncatedData)
	})
}

func TestMarshalUnmarshalProfileRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.ProfileRecord
	}{
		{
			name: "minimal record",
			record: &core.ProfileRecord{
				Id:         core.ID(1),
				Name:       "Dana Whitfield",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "record with history",
			record: &core.ProfileRecord{
				Id:             core.ID(2),
				Name:           "Marcus Oyelaran",
				CurrentCompany: "Stripe",
				CurrentTitle:   "VP Engineering",
				Active:         true,
				Background:     "Payments infrastructure, 14 years across fintech.",
				History: []core.Employment{
					{Company: "PayPal", Title: "Director", Start: now.AddDate(-8, 0, 0), End: now.AddDate(-3, 0, 0)},
					{Company: "Adyen", Title: "Engineering Manager", Start: now.AddDate(-11, 0, 0), End: now.AddDate(-8, 0, 0)},
				},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode fields",
			record: &core.ProfileRecord{
				Id:             core.ID(3),
				Name:           "Søren Müller",
				CurrentCompany: "Zühlke",
				InsertedAt:     now,
				UpdatedAt:      now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalProfileRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalProfileRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.Name, decoded.Name)
			assert.Equal(t, tt.record.CurrentCompany, decoded.CurrentCompany)
			assert.Equal(t, tt.record.CurrentTitle, decoded.CurrentTitle)
			assert.Equal(t, tt.record.Active, decoded.Active)
			assert.Equal(t, tt.record.Background, decoded.Background)
			require.Len(t, decoded.History, len(tt.record.History))
			for i := range tt.record.History {
				assert.Equal(t, tt.record.History[i].Company, decoded.History[i].Company)
				assert.Equal(t, tt.record.History[i].Title, decoded.History[i].Title)
				assert.True(t, tt.record.History[i].Start.Equal(decoded.History[i].Start))
				assert.True(t, tt.record.History[i].End.Equal(decoded.History[i].End))
			}
			assert.True(t, tt.record.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.record.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestMarshalUnmarshalInterviewRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.InterviewRecord
	}{
		{
			name: "full scores",
			record: &core.InterviewRecord{
				Id:          core.ID(1),
				MeetingId:   core.ID(77),
				ExpertId:    core.ID(3),
				ExpertName:  "Dana Whitfield",
				Question:    "How do enterprises approach vendor consolidation?",
				Answer:      "Most start with the long tail of single-seat tools.",
				Credibility: fptr(8.5),
				Consensus:   fptr(7.0),
				Completion:  fptr(0.92),
				Timestamp:   now,
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
		{
			name: "nil scores survive",
			record: &core.InterviewRecord{
				Id:         core.ID(2),
				MeetingId:  core.ID(77),
				ExpertName: "Marcus Oyelaran",
				Question:   "What drives pricing pushback?",
				Answer:     "Renewal season.",
				Timestamp:  now,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalInterviewRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalInterviewRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.MeetingId, decoded.MeetingId)
			assert.Equal(t, tt.record.ExpertId, decoded.ExpertId)
			assert.Equal(t, tt.record.ExpertName, decoded.ExpertName)
			assert.Equal(t, tt.record.Question, decoded.Question)
			assert.Equal(t, tt.record.Answer, decoded.Answer)
			assert.Equal(t, tt.record.Credibility, decoded.Credibility)
			assert.Equal(t, tt.record.Consensus, decoded.Consensus)
			assert.Equal(t, tt.record.Completion, decoded.Completion)
			assert.True(t, tt.record.Timestamp.Equal(decoded.Timestamp))
		})
	}
}

func TestUnmarshalRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalProfileRecord(tt.data)
			assert.ErrorIs(t, err, ErrTruncatedData)

			_, err = UnmarshalInterviewRecord(tt.data)
			assert.ErrorIs(t, err, ErrTruncatedData)
		})
	}
}
