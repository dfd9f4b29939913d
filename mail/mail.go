// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

// Package mail delivers gradereport.Messages by SMTP, or into an outbox directory.
package mail

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UNO-SOFT/gradereport"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/gomail.v2"
)

var (
	_ = (gradereport.Mailer)((*SMTP)(nil))
	_ = (gradereport.Mailer)(Outbox{})
)

// SMTP sends through an SMTP server, one connection per message.
type SMTP struct {
	From   string
	Dialer *gomail.Dialer
}

// NewSMTP returns an SMTP Mailer sending as from.
// The user and password may be empty for servers without authentication.
func NewSMTP(host string, port int, user, password, from string) *SMTP {
	return &SMTP{From: from, Dialer: gomail.NewDialer(host, port, user, password)}
}

func (s *SMTP) Send(ctx context.Context, msg gradereport.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Dialer.DialAndSend(NewMessage(s.From, msg)); err != nil {
		return fmt.Errorf("send to %s: %w", msg.To, err)
	}
	return nil
}

// Outbox writes every message as a gzipped .eml file into Dir.
type Outbox struct {
	Dir, From string
}

func (o Outbox) Send(ctx context.Context, msg gradereport.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(o.Dir, 0750); err != nil {
		return err
	}
	fn := filepath.Join(o.Dir, uuid.NewString()+".eml.gz")
	return writeGzip(fn, func(w io.Writer) error {
		_, err := NewMessage(o.From, msg).WriteTo(w)
		return err
	})
}

// writeGzip writes fn through a gzip writer; fn is removed if anything fails.
func writeGzip(fn string, write func(io.Writer) error) error {
	fh, err := os.Create(fn)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(fh)
	zw.Name = strings.TrimSuffix(filepath.Base(fn), ".gz")
	zw.ModTime = time.Now()
	if err = write(zw); err == nil {
		err = zw.Close()
	}
	if closeErr := fh.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(fn)
		return fmt.Errorf("%s: %w", fn, err)
	}
	return nil
}

// NewMessage converts msg into a gomail message from from.
func NewMessage(from string, msg gradereport.Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", strings.TrimSpace(msg.ReplyTo))
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", "<"+uuid.NewString()+"@"+domain(from)+">")
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Name, settings...)
	}
	return m
}

func domain(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}
