package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/anjiri1684/institute_manager/notifications"
	"github.com/anjiri1684/institute_manager/pkg/apperrors"
	"github.com/anjiri1684/institute_manager/testutil"
	"github.com/anjiri1684/institute_manager/utils"
)

func idKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func flexID(id uint) utils.FlexID {
	return utils.FlexID(id)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	sent   []notifications.Message
	reject map[string]bool
}

func (f *fakeDispatcher) Send(_ context.Context, msg notifications.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject[msg.To] {
		return errors.New("550 mailbox unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestHasAttemptedAroundSubmission(t *testing.T) {
	db := testutil.NewDB(t)
	id, err := CreateTest(db, quiz1())
	if err != nil {
		t.Fatal(err)
	}

	attempted, err := HasAttempted(db, id, "a@x.com")
	if err != nil || attempted {
		t.Fatalf("before submit: attempted=%v err=%v", attempted, err)
	}

	if _, err := SubmitTest(db, Submission{TestID: flexID(id), Name: "Asha", Course: "MSCIT", Email: "a@x.com", Answers: Answers{}}); err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}

	attempted, err = HasAttempted(db, id, "A@X.com ")
	if err != nil || !attempted {
		t.Fatalf("after submit: attempted=%v err=%v", attempted, err)
	}
}

func TestSubmitTestScenario(t *testing.T) {
	db := testutil.NewDB(t)
	id, err := CreateTest(db, quiz1())
	if err != nil {
		t.Fatal(err)
	}
	qs, _ := GetQuestions(db, id)

	res, err := SubmitTest(db, Submission{
		TestID:  flexID(id),
		Name:    "Asha",
		Course:  "MSCIT",
		Email:   "asha@x.com",
		Answers: Answers{idKey(qs[0].ID): "a", idKey(qs[1].ID): "B"},
	})
	if err != nil {
		t.Fatalf("SubmitTest: %v", err)
	}
	if res.TotalMarks != 5 {
		t.Errorf("total = %v, want 5", res.TotalMarks)
	}

	res, err = SubmitTest(db, Submission{TestID: flexID(id), Name: "Ravi", Course: "MSCIT", Email: "ravi@x.com", Answers: Answers{}})
	if err != nil {
		t.Fatalf("SubmitTest empty answers: %v", err)
	}
	if res.TotalMarks != 0 {
		t.Errorf("total = %v, want 0", res.TotalMarks)
	}
}

func TestSubmitTestRejectsSecondAttempt(t *testing.T) {
	db := testutil.NewDB(t)
	id, _ := CreateTest(db, quiz1())

	sub := Submission{TestID: flexID(id), Name: "Asha", Course: "MSCIT", Email: "asha@x.com", Answers: Answers{}}
	if _, err := SubmitTest(db, sub); err != nil {
		t.Fatal(err)
	}
	sub.Email = "ASHA@x.com"
	if _, err := SubmitTest(db, sub); !errors.Is(err, apperrors.ErrDuplicateAttempt) {
		t.Fatalf("err = %v, want ErrDuplicateAttempt", err)
	}
}

func TestSubmitTestUnknownTest(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := SubmitTest(db, Submission{TestID: 77, Name: "A", Course: "C", Email: "a@x.com", Answers: Answers{}})
	if !apperrors.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestSubmitTestMissingFields(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := SubmitTest(db, Submission{TestID: 1, Name: "A", Email: "a@x.com", Answers: Answers{}})
	if !apperrors.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestRecordResultConcurrentDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	id, _ := CreateTest(db, quiz1())

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
		others     []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := RecordResult(db, NewResult{TestID: id, Name: "Asha", Course: "MSCIT", Email: "asha@x.com", TotalMarks: 5})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperrors.ErrDuplicateAttempt):
				duplicates++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 1 || duplicates != workers-1 || len(others) != 0 {
		t.Fatalf("successes=%d duplicates=%d others=%v", successes, duplicates, others)
	}
}

func TestSubmitTestConcurrentDuplicates(t *testing.T) {
	db := testutil.NewDBConns(t, 4)
	id, err := CreateTest(db, quiz1())
	if err != nil {
		t.Fatal(err)
	}
	questions, _ := GetQuestions(db, id)

	const workers = 10
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
		others     []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := SubmitTest(db, Submission{
				TestID:  flexID(id),
				Name:    "Asha",
				Course:  "MSCIT",
				Email:   "Asha@X.com",
				Answers: Answers{idKey(questions[0].ID): "A"},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, apperrors.ErrDuplicateAttempt):
				duplicates++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 1 || duplicates != workers-1 || len(others) != 0 {
		t.Fatalf("successes=%d duplicates=%d others=%v", successes, duplicates, others)
	}
	var stored int64
	db.Model(&models.StudentResult{}).Where("test_id = ?", id).Count(&stored)
	if stored != 1 {
		t.Errorf("%d results stored, want 1", stored)
	}
}

func TestDeleteResultMissingIDSucceeds(t *testing.T) {
	db := testutil.NewDB(t)
	if err := DeleteResult(db, 12345); err != nil {
		t.Fatalf("DeleteResult: %v", err)
	}
}

func TestListResultsJoinedNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	id, _ := CreateTest(db, quiz1())

	first, err := RecordResult(db, NewResult{TestID: id, Name: "A", Course: "MSCIT", Email: "a@x.com", TotalMarks: 5})
	if err != nil {
		t.Fatal(err)
	}
	second, err := RecordResult(db, NewResult{TestID: id, Name: "B", Course: "MSCIT", Email: "b@x.com", TotalMarks: 3})
	if err != nil {
		t.Fatal(err)
	}
	db.Model(&models.StudentResult{}).Where("id = ?", first.ID).Update("submitted_at", time.Now().Add(-time.Hour))

	rows, err := ListResults(db)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].TestName != "Quiz1" {
		t.Errorf("test name = %q", rows[0].TestName)
	}

	if err := DeleteResult(db, first.ID); err != nil {
		t.Fatal(err)
	}
	rows, _ = ListResults(db)
	if len(rows) != 1 {
		t.Errorf("after delete got %d rows", len(rows))
	}
}

func TestSendAllResultsContinuesPastBadRecipient(t *testing.T) {
	db := testutil.NewDB(t)
	id, _ := CreateTest(db, quiz1())
	for _, email := range []string{"a@x.com", "bounce@x.com", "c@x.com", "d@x.com"} {
		if _, err := RecordResult(db, NewResult{TestID: id, Name: "S", Course: "MSCIT", Email: email, TotalMarks: 1}); err != nil {
			t.Fatal(err)
		}
	}

	d := &fakeDispatcher{reject: map[string]bool{"bounce@x.com": true}}
	report, err := SendAllResults(context.Background(), db, d)
	if err != nil {
		t.Fatalf("SendAllResults: %v", err)
	}
	if report.Total != 4 || report.Sent != 3 || report.Failed != 1 {
		t.Fatalf("report = %+v", report)
	}
	if len(d.sent) != 3 {
		t.Errorf("dispatcher received %d messages", len(d.sent))
	}
	if report.Failures[0].Recipient != "bounce@x.com" {
		t.Errorf("failure recipient = %q", report.Failures[0].Recipient)
	}
}

func TestSendAllResultsEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	report, err := SendAllResults(context.Background(), db, &fakeDispatcher{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Total != 0 {
		t.Errorf("total = %d", report.Total)
	}
}
