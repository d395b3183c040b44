package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"gopkg.in/gomail.v2"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("0100018f-ses-id")}, nil
}

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	delay time.Duration
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func testMessage() *Message {
	return &Message{
		To:      "agent@example.com",
		Subject: "Safari booking reminder for Amani Otieno",
		HTML:    "<p>Dear Savannah Trails,</p>",
		Tags:    []Tag{{Name: "job_id", Value: "2f1c7a9e-3b1d-4c55-9d0e-7c1a8b2e4f60"}},
	}
}

func TestSESSenderSend(t *testing.T) {
	client := &fakeSES{}
	sender := newSESSender(client, "reminders@example.com", "reminders")

	id, err := sender.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if id != "0100018f-ses-id" {
		t.Errorf("message id = %q", id)
	}

	in := client.input
	if aws.ToString(in.Source) != "reminders@example.com" {
		t.Errorf("Source = %q", aws.ToString(in.Source))
	}
	if len(in.Destination.ToAddresses) != 1 || in.Destination.ToAddresses[0] != "agent@example.com" {
		t.Errorf("ToAddresses = %v", in.Destination.ToAddresses)
	}
	if aws.ToString(in.Message.Subject.Data) != "Safari booking reminder for Amani Otieno" {
		t.Errorf("Subject = %q", aws.ToString(in.Message.Subject.Data))
	}
	if aws.ToString(in.Message.Body.Html.Data) != "<p>Dear Savannah Trails,</p>" {
		t.Errorf("Html = %q", aws.ToString(in.Message.Body.Html.Data))
	}
	if aws.ToString(in.ConfigurationSetName) != "reminders" {
		t.Errorf("ConfigurationSetName = %q", aws.ToString(in.ConfigurationSetName))
	}
	if len(in.Tags) != 1 || aws.ToString(in.Tags[0].Name) != "job_id" ||
		aws.ToString(in.Tags[0].Value) != "2f1c7a9e-3b1d-4c55-9d0e-7c1a8b2e4f60" {
		t.Errorf("Tags = %+v", in.Tags)
	}
}

func TestSESSenderSendError(t *testing.T) {
	sender := newSESSender(&fakeSES{err: errors.New("MessageRejected")}, "reminders@example.com", "")

	if _, err := sender.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSendRejectsInvalidMessage(t *testing.T) {
	senders := map[string]Sender{
		"ses":  newSESSender(&fakeSES{}, "reminders@example.com", ""),
		"smtp": newSMTPSender(&fakeDialer{}, "reminders@example.com"),
	}

	for name, sender := range senders {
		t.Run(name, func(t *testing.T) {
			_, err := sender.Send(context.Background(), &Message{Subject: "no recipient"})
			if !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("Send() error = %v, want %v", err, ErrInvalidMessage)
			}
		})
	}
}

func TestSanitizeTagValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "job_id", want: "job_id"},
		{in: "SAFARI_BOOKING", want: "SAFARI_BOOKING"},
		{in: "a.b@c", want: "a_b_c"},
		{in: "BK 1001/2", want: "BK_1001_2"},
		{in: strings.Repeat("x", 300), want: strings.Repeat("x", 256)},
	}

	for _, tt := range tests {
		if got := sanitizeTagValue(tt.in); got != tt.want {
			t.Errorf("sanitizeTagValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSMTPSenderSend(t *testing.T) {
	dialer := &fakeDialer{}
	sender := newSMTPSender(dialer, "Reminders <reminders@example.com>")

	id, err := sender.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if !strings.HasSuffix(id, "@example.com") {
		t.Errorf("message id = %q, want suffix @example.com", id)
	}

	if len(dialer.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(dialer.sent))
	}
	m := dialer.sent[0]
	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "agent@example.com" {
		t.Errorf("To = %v", got)
	}
	if got := m.GetHeader("Message-ID"); len(got) != 1 || got[0] != "<"+id+">" {
		t.Errorf("Message-ID = %v, want <%s>", got, id)
	}
	if got := m.GetHeader("X-Reminder-Job-Id"); len(got) != 1 || got[0] != "2f1c7a9e-3b1d-4c55-9d0e-7c1a8b2e4f60" {
		t.Errorf("X-Reminder-Job-Id = %v", got)
	}
}

func TestSMTPSenderSendError(t *testing.T) {
	sender := newSMTPSender(&fakeDialer{err: errors.New("550 mailbox unavailable")}, "reminders@example.com")

	if _, err := sender.Send(context.Background(), testMessage()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestSMTPSenderSendTimeout(t *testing.T) {
	sender := newSMTPSender(&fakeDialer{delay: 200 * time.Millisecond}, "reminders@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := sender.Send(ctx, testMessage())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestTagHeaderName(t *testing.T) {
	tests := map[string]string{
		"job_id":        "Job-Id",
		"reminder_type": "Reminder-Type",
		"booking":       "Booking",
	}

	for in, want := range tests {
		if got := tagHeaderName(in); got != want {
			t.Errorf("tagHeaderName(%q) = %q, want %q", in, got, want)
		}
	}
}
