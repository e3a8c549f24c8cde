package reports

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var slipTmpl = template.Must(template.New("slip").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: sans-serif; margin: 48px; }
h1 { border-bottom: 2px solid #333; padding-bottom: 8px; }
td { padding: 6px 16px 6px 0; }
</style></head><body>
<h1>Result Slip</h1>
<table>
<tr><td><b>Test</b></td><td>{{.TestName}}</td></tr>
<tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
<tr><td><b>Course</b></td><td>{{.Course}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
<tr><td><b>Marks</b></td><td>{{.Marks}}</td></tr>
<tr><td><b>Submitted</b></td><td>{{.Submitted}}</td></tr>
</table>
</body></html>`))

func SlipHTML(r models.ResultRow) (string, error) {
	var buf bytes.Buffer
	err := slipTmpl.Execute(&buf, map[string]string{
		"TestName":  r.TestName,
		"Name":      r.Name,
		"Course":    r.Course,
		"Email":     r.Email,
		"Marks":     notifications.FormatMarks(r.TotalMarks),
		"Submitted": r.SubmittedAt.Local().Format("02 Jan 2006, 03:04 PM"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPDF prints htmlContent with a headless Chrome instance.
func RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
