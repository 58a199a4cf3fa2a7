package mailer

import (
	"bytes"
	"cycleparadise/src/types"
	"encoding/base64"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/wneessen/go-mail"
)

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a transport-independent email.
type Message struct {
	From        string
	FromName    string
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// StripHTML produces the plain-text fallback of an HTML body.
func StripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// Build encodes m as a MIME message: plain text with an HTML alternative,
// followed by any attachments.
func (m *Message) Build() (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.FromName, m.From); err != nil {
		return nil, err
	}
	if err := msg.To(m.To...); err != nil {
		return nil, err
	}
	if m.ReplyTo != "" {
		if err := msg.ReplyTo(m.ReplyTo); err != nil {
			return nil, err
		}
	}
	msg.Subject(m.Subject)
	text := m.Text
	if text == "" {
		text = StripHTML(m.HTML)
	}
	msg.SetBodyString(mail.TypeTextPlain, text)
	if m.HTML != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	}
	for _, a := range m.Attachments {
		err := msg.AttachReader(a.Name, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Raw returns the encoded MIME bytes of m.
func (m *Message) Raw() ([]byte, error) {
	msg, err := m.Build()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode serializes m for the email queue.
func (m *Message) Encode() (string, error) {
	attachments := make([]types.JSONB, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, types.JSONB{
			"name":         a.Name,
			"content-type": a.ContentType,
			"data":         base64.StdEncoding.EncodeToString(a.Data),
		})
	}
	body := types.JSONB{
		"from":        m.From,
		"from-name":   m.FromName,
		"to":          m.To,
		"reply-to":    m.ReplyTo,
		"subject":     m.Subject,
		"html":        m.HTML,
		"text":        m.Text,
		"attachments": attachments,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
