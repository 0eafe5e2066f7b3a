// Copyright 2025 Candor Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"errors"
	"fmt"

	"github.com/candorlabs/expertscope/core"
	"github.com/mus-format/mus-go"
)

// wrapUnmarshalErr tags a mus unmarshalling failure with the matching
// storage sentinel: a short buffer is truncated data, anything else is a
// serialization failure.
func wrapUnmarshalErr(err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	return fmt.Errorf("%w: %w", ErrSerializationFailed, err)
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, wrapUnmarshalErr(err)
	}
	return id, nil
}

// MarshalProfileRecord serializes a ProfileRecord to bytes.
func MarshalProfileRecord(record *core.ProfileRecord) []byte {
	buf := make([]byte, core.ProfileRecordMUS.Size(*record))
	core.ProfileRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalProfileRecord deserializes a ProfileRecord from bytes.
func UnmarshalProfileRecord(data []byte) (*core.ProfileRecord, error) {
	record, _, err := core.ProfileRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapUnmarshalErr(err)
	}
	return &record, nil
}

// MarshalInterviewRecord serializes an InterviewRecord to bytes.
func MarshalInterviewRecord(record *core.InterviewRecord) []byte {
	buf := make([]byte, core.InterviewRecordMUS.Size(*record))
	core.InterviewRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalInterviewRecord deserializes an InterviewRecord from bytes.
func UnmarshalInterviewRecord(data []byte) (*core.InterviewRecord, error) {
	record, _, err := core.InterviewRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, wrapUnmarshalErr(err)
	}
	return &record, nil
}
