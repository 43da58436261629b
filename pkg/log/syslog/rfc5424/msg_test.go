package rfc5424

import (
	"bytes"
	"errors"
	"testing"
)

type hostPort struct {
	host string
	port int
}

func (hp hostPort) String() string {
	return hp.host + ":" + string(rune('0'+hp.port))
}

func TestMsg_writeMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  Msg
		want string
	}{
		{name: "text", msg: Text("grüße"), want: " \xef\xbb\xbfgrüße"},
		{name: "empty text", msg: Text(""), want: ""},
		{name: "bytes", msg: Bytes{0xff, 0xfe, 'a'}, want: "\xff\xfea"},
		{name: "empty bytes", msg: Bytes{}, want: ""},
		{name: "printf", msg: Printf("%s failed %d times", "login", 3), want: " login failed 3 times"},
		{name: "printf without args", msg: Printf("static"), want: " static"},
		{name: "empty printf", msg: Printf("%s", ""), want: ""},
		{name: "stringer", msg: Stringer(hostPort{host: "localhost", port: 5}), want: " localhost:5"},
		{name: "empty stringer", msg: Stringer(hostPort{}), want: " :0"},
		{name: "nil stringer", msg: Stringer(nil), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.msg.writeMsg(&buf); err != nil {
				t.Fatalf("writeMsg() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("writeMsg() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestMsg_writeMsg_truncated(t *testing.T) {
	tests := []struct {
		name     string
		msg      Msg
		capacity int
		want     string
	}{
		{name: "text in bom", msg: Text("hello"), capacity: 2, want: " \xef"},
		{name: "text in body", msg: Text("hello"), capacity: 6, want: " \xef\xbb\xbfhe"},
		{name: "bytes", msg: Bytes("hello"), capacity: 3, want: "hel"},
		{name: "printf space only", msg: Printf("%d", 12345), capacity: 1, want: " "},
		{name: "printf", msg: Printf("%d", 12345), capacity: 4, want: " 123"},
		{name: "stringer", msg: Stringer(hostPort{host: "localhost", port: 5}), capacity: 5, want: " loca"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewFixedBuffer(tt.capacity)
			if err := tt.msg.writeMsg(buf); !errors.Is(err, ErrSinkExhausted) {
				t.Fatalf("writeMsg() error = %v, want %v", err, ErrSinkExhausted)
			}
			if buf.String() != tt.want {
				t.Errorf("writeMsg() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
