package mockio

import (
	"bytes"

	gomock "github.com/golang/mock/gomock"
)

//go:generate mockgen -destination writer_mock.go -package mockio io Writer
//go:generate mockgen -destination write_syncer_mock.go -package mockio go.uber.org/zap/zapcore WriteSyncer

// BoundedWriterMock lets `w` behave like a sink which accepts at most `capacity` bytes in total.
// Every write which does not fit anymore takes as many bytes as there is room left for and
// fails with `errFull`. All accepted bytes are collected in the returned buffer.
func BoundedWriterMock(w *MockWriter, capacity int, errFull error) *bytes.Buffer {
	accepted := &bytes.Buffer{}
	w.EXPECT().Write(gomock.Any()).AnyTimes().DoAndReturn(func(b []byte) (int, error) {
		l := capacity - accepted.Len()
		if len(b) < l {
			l = len(b)
		}
		accepted.Write(b[:l])
		if l < len(b) {
			return l, errFull
		}
		return l, nil
	})
	return accepted
}
