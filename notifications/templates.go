package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/anjiri1684/institute_manager/models"
)

var resultTmpl = template.Must(template.New("result").Parse(`<h3>Test Result Summary</h3>
<p><b>Test:</b> {{.TestName}}</p>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Course:</b> {{.Course}}</p>
<p><b>Marks:</b> {{.Marks}}</p>
<p><b>Submitted:</b> {{.Submitted}}</p>
<p>Thank you for appearing in the test.</p>`))

var otpTmpl = template.Must(template.New("otp").Parse(`<h1>Verify your email</h1>
<p>Hello {{.Name}},</p>
<p>Your verification code is <b>{{.Code}}</b>. It expires in {{.Minutes}} minutes.</p>`))

func FormatMarks(m float64) string {
	return fmt.Sprintf("%g", m)
}

func ResultMessage(r models.ResultRow) (Message, error) {
	var buf bytes.Buffer
	err := resultTmpl.Execute(&buf, map[string]string{
		"TestName":  r.TestName,
		"Name":      r.Name,
		"Course":    r.Course,
		"Marks":     FormatMarks(r.TotalMarks),
		"Submitted": r.SubmittedAt.Local().Format("02 Jan 2006, 03:04 PM"),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      r.Email,
		ToName:  r.Name,
		Subject: fmt.Sprintf("Your Test Result - %s", r.TestName),
		HTML:    buf.String(),
	}, nil
}

func OTPMessage(toEmail, toName, code string, ttl time.Duration) (Message, error) {
	var buf bytes.Buffer
	err := otpTmpl.Execute(&buf, map[string]interface{}{
		"Name":    toName,
		"Code":    code,
		"Minutes": int(ttl.Minutes()),
	})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      toEmail,
		ToName:  toName,
		Subject: "Your institute signup verification code",
		HTML:    buf.String(),
		Text:    fmt.Sprintf("Your verification code is %s", code),
	}, nil
}
