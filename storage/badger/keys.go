package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/candorlabs/expertscope/core"
)

// Key prefixes for different data types
const (
	profileRecordPrefix    = "prorec"
	profileIDSeq           = "prorecseq"
	interviewRecordPrefix  = "intrec"
	interviewDatePrefix    = "intrecd"
	interviewMeetingPrefix = "intrecm"
	interviewRecordIDSeq   = "intrecseq"
)

// makeProfileKey generates a key for a profile record by ID.
func makeProfileKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", profileRecordPrefix, id))
}

// makeInterviewKey generates a key for an interview record by ID.
func makeInterviewKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", interviewRecordPrefix, id))
}

// makeInterviewDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeInterviewDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := interviewDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialInterviewDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialInterviewDateKey(timestamp time.Time) []byte {
	prefix := interviewDatePrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeInterviewMeetingKey generates a composite key for the meeting index.
// Format: prefix:meetingID:recordID
func makeInterviewMeetingKey(meetingID, recordID core.ID) []byte {
	prefix := interviewMeetingPrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(meetingID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(recordID))
	return buf
}

// makePartialInterviewMeetingKey generates a partial key for meeting queries.
// Format: prefix:meetingID
func makePartialInterviewMeetingKey(meetingID core.ID) []byte {
	prefix := interviewMeetingPrefix + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(meetingID))
	return buf
}
