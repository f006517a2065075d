package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lepidus/oaswitchboard/hub"
	"github.com/lepidus/oaswitchboard/mapping"
)

// Envelope owns a validated message. It exists only for submissions that
// carry every mandatory datum and cannot be changed after New returns.
type Envelope struct {
	submissionID int64
	profile      *mapping.Profile
	msg          Message
}

// New formats and validates the message for s. When validation reports
// anything it returns an *IncompleteDataError and no Envelope. A nil
// profile selects mapping.DefaultProfile; any other profile gets the
// mapping defaults and must pass mapping validation.
func New(s *hub.Submission, p *mapping.Profile) (*Envelope, error) {
	if s == nil {
		return nil, errors.New("message: nil submission")
	}
	if p == nil {
		p = mapping.DefaultProfile()
	} else {
		p = p.Clone()
		p.ApplyDefaults()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("message: %w", err)
		}
	}

	msg := Format(s, p)
	if diags := Validate(msg, p); len(diags) > 0 {
		return nil, &IncompleteDataError{SubmissionID: s.ID, Diagnostics: diags}
	}

	return &Envelope{
		submissionID: s.ID,
		profile:      p,
		msg:          msg,
	}, nil
}

// Content returns a copy of the full message.
func (e *Envelope) Content() Message {
	return e.msg.clone()
}

// Header returns a copy of the message header.
func (e *Envelope) Header() Header {
	return e.msg.clone().Header
}

// Authors returns a copy of data.authors.
func (e *Envelope) Authors() []Author {
	return cloneAuthors(e.msg.Data.Authors)
}

// Article returns a copy of data.article.
func (e *Envelope) Article() Article {
	return e.msg.Data.Article.clone()
}

// Journal returns a copy of data.journal.
func (e *Envelope) Journal() Journal {
	return e.msg.Data.Journal.clone()
}

// Recipient returns header.to.address, or "" when the profile carries no
// recipient.
func (e *Envelope) Recipient() string {
	if e.msg.Header.To == nil {
		return ""
	}
	return e.msg.Header.To.Address
}

// Profile returns a copy of the profile the message was built with.
func (e *Envelope) Profile() *mapping.Profile {
	return e.profile.Clone()
}

// SubmissionID returns the id of the submission the message describes.
func (e *Envelope) SubmissionID() int64 {
	return e.submissionID
}

// MarshalJSON encodes the message as the P1-PIO wire body.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.msg)
}
