package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/institute_manager/models"
)

type recordingDispatcher struct {
	sent   []string
	failOn map[string]bool
}

func (d *recordingDispatcher) Send(_ context.Context, msg Message) error {
	if d.failOn[msg.To] {
		return errors.New("mailbox unavailable")
	}
	d.sent = append(d.sent, msg.To)
	return nil
}

func TestSendBatchContinuesPastFailures(t *testing.T) {
	d := &recordingDispatcher{failOn: map[string]bool{"bad@x.com": true}}
	msgs := []Message{{To: "a@x.com"}, {To: "bad@x.com"}, {To: "c@x.com"}}

	report := SendBatch(context.Background(), d, msgs)

	if report.Total != 3 || report.Sent != 2 || report.Failed != 1 {
		t.Fatalf("report = %+v, want total 3 sent 2 failed 1", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].Recipient != "bad@x.com" {
		t.Errorf("failures = %+v", report.Failures)
	}
	if strings.Join(d.sent, ",") != "a@x.com,c@x.com" {
		t.Errorf("sent = %v", d.sent)
	}
}

func TestBrevoDispatcherSend(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("api-key") != "key-123" {
			t.Errorf("api-key header = %q", r.Header.Get("api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"messageId":"<1@brevo>"}`))
	}))
	defer srv.Close()

	d := NewBrevoDispatcher("key-123", "office@institute.in", "Institute")
	d.Endpoint = srv.URL

	err := d.Send(context.Background(), Message{
		To:          "student@x.com",
		Subject:     "Notes",
		Text:        "see attached",
		Attachments: []Attachment{{Filename: "notes.txt", Content: []byte("hello")}},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.To[0]["name"] != "student" {
		t.Errorf("recipient name = %q, want local part", got.To[0]["name"])
	}
	if len(got.Attachment) != 1 || got.Attachment[0].Content != "aGVsbG8=" {
		t.Errorf("attachment = %+v", got.Attachment)
	}
}

func TestBrevoDispatcherRejectsBadAddress(t *testing.T) {
	d := NewBrevoDispatcher("k", "office@institute.in", "Institute")
	d.Endpoint = "http://127.0.0.1:0"
	if err := d.Send(context.Background(), Message{To: "not-an-email"}); err == nil {
		t.Fatal("expected error for invalid recipient")
	}
}

func TestBrevoDispatcherAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"invalid_parameter"}`))
	}))
	defer srv.Close()

	d := NewBrevoDispatcher("k", "office@institute.in", "Institute")
	d.Endpoint = srv.URL
	if err := d.Send(context.Background(), Message{To: "a@x.com", HTML: "<p>x</p>"}); err == nil {
		t.Fatal("expected error on non-201 response")
	}
}

func TestResultMessage(t *testing.T) {
	msg, err := ResultMessage(models.ResultRow{
		Name:        "Asha <b>",
		Course:      "MSCIT",
		Email:       "asha@x.com",
		TotalMarks:  7.5,
		TestName:    "Quiz1",
		SubmittedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ResultMessage: %v", err)
	}
	if msg.Subject != "Your Test Result - Quiz1" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTML, "<b>Marks:</b> 7.5") {
		t.Errorf("marks missing from body: %s", msg.HTML)
	}
	if strings.Contains(msg.HTML, "Asha <b>") {
		t.Error("student name must be escaped")
	}
}
