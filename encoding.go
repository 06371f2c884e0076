package bloom

import (
	"encoding/binary"
)

// Membership is the typed surface shared by every insert/query pair of a Filter.
type Membership interface {
	Insert(data []byte)
	InsertString(data string)
	InsertUint16(i uint16)
	InsertUint32(i uint32)
	InsertUint64(i uint64)

	Contains(data []byte) bool
	ContainsString(data string) bool
	ContainsUint16(i uint16) bool
	ContainsUint32(i uint32) bool
	ContainsUint64(i uint64) bool
}

func (f *Filter) InsertString(data string) {
	f.Insert([]byte(data))
}

func (f *Filter) InsertUint16(i uint16) {
	f.Insert(binary.BigEndian.AppendUint16(nil, i))
}

func (f *Filter) InsertUint32(i uint32) {
	f.Insert(binary.BigEndian.AppendUint32(nil, i))
}

func (f *Filter) InsertUint64(i uint64) {
	f.Insert(binary.BigEndian.AppendUint64(nil, i))
}

func (f *Filter) ContainsString(data string) bool {
	return f.Contains([]byte(data))
}

func (f *Filter) ContainsUint16(i uint16) bool {
	return f.Contains(binary.BigEndian.AppendUint16(nil, i))
}

func (f *Filter) ContainsUint32(i uint32) bool {
	return f.Contains(binary.BigEndian.AppendUint32(nil, i))
}

func (f *Filter) ContainsUint64(i uint64) bool {
	return f.Contains(binary.BigEndian.AppendUint64(nil, i))
}

var _ Membership = &Filter{}
