// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import "context"

// ResponseKind tags the outcome of a prompt.
type ResponseKind uint8

const (
	Confirmed ResponseKind = iota
	Cancelled
	Invalid
)

func (k ResponseKind) String() string {
	switch k {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Response of a prompt: Text is set for Confirmed, Reason for Invalid.
type Response struct {
	Kind   ResponseKind
	Text   string
	Reason string
}

// UI is the interaction with the instructor.
type UI interface {
	PromptText(ctx context.Context, title, message string) (Response, error)
	PromptYesNo(ctx context.Context, title, message string) (bool, error)
	Alert(ctx context.Context, title, message string) error
}

// Attachment of a Message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is one outgoing email with an HTML body.
type Message struct {
	To, Subject, HTML, ReplyTo string
	Attachments                []Attachment
}

// Mailer sends one message synchronously.
type Mailer interface {
	Send(context.Context, Message) error
}

// Attacher renders an attachment for the report of rec.
type Attacher interface {
	Attachment(rec Record, subject string) (Attachment, error)
}
