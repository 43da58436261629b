package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.githedgehog.com/syslogfmt/pkg/config"
	"go.githedgehog.com/syslogfmt/pkg/log"
	"go.githedgehog.com/syslogfmt/pkg/log/syslog/rfc5424"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLineSize = 1024 * 1024

var ErrMessagesDiscarded = errors.New("messages were discarded")

type encoder struct {
	l       log.Interface
	cfg     *config.File
	framing log.Framing
	out     zapcore.WriteSyncer

	formatter *rfc5424.Formatter
	buf       encodeBuffer
	discarded int
}

// encodeBuffer is either a bytes.Buffer or a rfc5424.FixedBuffer
type encodeBuffer interface {
	io.Writer
	Bytes() []byte
	Reset()
}

func (e *encoder) init() {
	if e.formatter != nil {
		return
	}
	e.formatter = e.cfg.FormatterConfig().Formatter()
	e.out = log.NewFramedWriteSyncer(e.out, e.framing)
	if size := e.cfg.BufferSizeOrDefault(); size > 0 {
		e.buf = rfc5424.NewFixedBuffer(size)
	} else {
		e.buf = &bytes.Buffer{}
	}
}

// encodeArgs writes all args joined by spaces as one message
func (e *encoder) encodeArgs(args []string) error {
	e.init()
	if err := e.encode(e.l, strings.Join(args, " ")); err != nil {
		return err
	}
	return e.result()
}

// encodeLines writes every line of `r` as a message. Empty lines are skipped.
func (e *encoder) encodeLines(ctx context.Context, r io.Reader) error {
	e.init()
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for s.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" {
			continue
		}
		if err := e.encode(e.l.With(zap.Int("line", lineNo)), line); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading messages: %w", err)
	}
	return e.result()
}

func (e *encoder) encode(l log.Interface, text string) error {
	var msg rfc5424.Msg = rfc5424.Text(text)
	if e.cfg.IsRaw() {
		msg = rfc5424.Bytes(text)
	}

	e.buf.Reset()
	err := e.formatter.FormatWithData(
		e.buf,
		e.cfg.SeverityOrDefault(),
		config.ParseTimestamp(e.cfg.Timestamp),
		msg,
		e.cfg.MsgID,
		e.cfg.RFC5424StructuredData(),
	)
	switch {
	case err == nil:
	case errors.Is(err, rfc5424.ErrSinkExhausted) && e.cfg.TruncationOrDefault() == log.TruncationSend:
		l.Debug("message truncated", zap.Int("bufferSize", e.cfg.BufferSizeOrDefault()), zap.Int("messageLength", len(text)))
	case errors.Is(err, rfc5424.ErrSinkExhausted):
		l.Warn("message discarded", zap.Int("bufferSize", e.cfg.BufferSizeOrDefault()), zap.Int("messageLength", len(text)))
		e.discarded++
		return nil
	default:
		return fmt.Errorf("formatting message: %w", err)
	}

	if _, err := e.out.Write(e.buf.Bytes()); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	return nil
}

func (e *encoder) result() error {
	if e.discarded > 0 {
		return fmt.Errorf("%w: %d", ErrMessagesDiscarded, e.discarded)
	}
	return nil
}
