package core

// Hand-maintained MUS serializers for the record types stored in badger.
// Field order is part of the on-disk format; append new fields at the end.

import (
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes IDs.
var IDMUS = idMUS{}

// EmploymentMUS serializes Employment entries.
var EmploymentMUS = employmentMUS{}

// ProfileRecordMUS serializes ProfileRecords.
var ProfileRecordMUS = profileRecordMUS{}

// InterviewRecordMUS serializes InterviewRecords.
var InterviewRecordMUS = interviewRecordMUS{}

type idMUS struct{}

func (s idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (s idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

// Timestamps are stored as UnixMicro, matching the precision the date index
// keys use.
func marshalTime(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (t time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalFloat64Ptr(v *float64, bs []byte) (n int) {
	if v == nil {
		return ord.Bool.Marshal(false, bs)
	}
	n = ord.Bool.Marshal(true, bs)
	n += varint.Uint64.Marshal(math.Float64bits(*v), bs[n:])
	return n
}

func unmarshalFloat64Ptr(bs []byte) (v *float64, n int, err error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	bits, n1, err := varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	f := math.Float64frombits(bits)
	return &f, n, nil
}

func sizeFloat64Ptr(v *float64) (size int) {
	if v == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + varint.Uint64.Size(math.Float64bits(*v))
}

type employmentMUS struct{}

func (s employmentMUS) Marshal(v Employment, bs []byte) (n int) {
	n = ord.String.Marshal(v.Company, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += marshalTime(v.Start, bs[n:])
	n += marshalTime(v.End, bs[n:])
	return n
}

func (s employmentMUS) Unmarshal(bs []byte) (v Employment, n int, err error) {
	var n1 int
	v.Company, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Start, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.End, n1, err = unmarshalTime(bs[n:])
	n += n1
	return v, n, err
}

func (s employmentMUS) Size(v Employment) (size int) {
	size = ord.String.Size(v.Company)
	size += ord.String.Size(v.Title)
	size += sizeTime(v.Start)
	size += sizeTime(v.End)
	return size
}

type profileRecordMUS struct{}

func (s profileRecordMUS) Marshal(v ProfileRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.CurrentCompany, bs[n:])
	n += ord.String.Marshal(v.CurrentTitle, bs[n:])
	n += varint.Int.Marshal(len(v.History), bs[n:])
	for _, e := range v.History {
		n += EmploymentMUS.Marshal(e, bs[n:])
	}
	n += ord.Bool.Marshal(v.Active, bs[n:])
	n += ord.String.Marshal(v.Background, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s profileRecordMUS) Unmarshal(bs []byte) (v ProfileRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CurrentCompany, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.CurrentTitle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	if count > 0 {
		v.History = make([]Employment, count)
		for i := 0; i < count; i++ {
			v.History[i], n1, err = EmploymentMUS.Unmarshal(bs[n:])
			n += n1
			if err != nil {
				return v, n, err
			}
		}
	}
	v.Active, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Background, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return v, n, err
}

func (s profileRecordMUS) Size(v ProfileRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.CurrentCompany)
	size += ord.String.Size(v.CurrentTitle)
	size += varint.Int.Size(len(v.History))
	for _, e := range v.History {
		size += EmploymentMUS.Size(e)
	}
	size += ord.Bool.Size(v.Active)
	size += ord.String.Size(v.Background)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

type interviewRecordMUS struct{}

func (s interviewRecordMUS) Marshal(v InterviewRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += IDMUS.Marshal(v.MeetingId, bs[n:])
	n += IDMUS.Marshal(v.ExpertId, bs[n:])
	n += ord.String.Marshal(v.ExpertName, bs[n:])
	n += ord.String.Marshal(v.Question, bs[n:])
	n += ord.String.Marshal(v.Answer, bs[n:])
	n += marshalFloat64Ptr(v.Credibility, bs[n:])
	n += marshalFloat64Ptr(v.Consensus, bs[n:])
	n += marshalFloat64Ptr(v.Completion, bs[n:])
	n += marshalTime(v.Timestamp, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (s interviewRecordMUS) Unmarshal(bs []byte) (v InterviewRecord, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.MeetingId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.ExpertId, n1, err = IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.ExpertName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Credibility, n1, err = unmarshalFloat64Ptr(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Consensus, n1, err = unmarshalFloat64Ptr(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Completion, n1, err = unmarshalFloat64Ptr(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.Timestamp, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.InsertedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	if err != nil {
		return v, n, err
	}
	v.UpdatedAt, n1, err = unmarshalTime(bs[n:])
	n += n1
	return v, n, err
}

func (s interviewRecordMUS) Size(v InterviewRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += IDMUS.Size(v.MeetingId)
	size += IDMUS.Size(v.ExpertId)
	size += ord.String.Size(v.ExpertName)
	size += ord.String.Size(v.Question)
	size += ord.String.Size(v.Answer)
	size += sizeFloat64Ptr(v.Credibility)
	size += sizeFloat64Ptr(v.Consensus)
	size += sizeFloat64Ptr(v.Completion)
	size += sizeTime(v.Timestamp)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}
