package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/google/uuid"
)

type fakeConn struct {
	got      chan interface{}
	fail     bool
	closed   chan struct{}
	deadline time.Time
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error {
	f.deadline = t
	return nil
}

func newFakeConn(fail bool) *fakeConn {
	return &fakeConn{got: make(chan interface{}, 4), fail: fail, closed: make(chan struct{}, 1)}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.deadline.IsZero() {
		return errors.New("write without deadline")
	}
	if f.fail {
		return errors.New("broken pipe")
	}
	f.got <- v
	return nil
}

func (f *fakeConn) Close() error {
	select {
	case f.closed <- struct{}{}:
	default:
	}
	return nil
}

func TestHubBroadcastsResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub()
	go h.Run(ctx)

	good := newFakeConn(false)
	bad := newFakeConn(true)
	h.Register(&Client{ID: uuid.New(), Conn: good})
	h.Register(&Client{ID: uuid.New(), Conn: bad})

	h.Publish(models.ResultRow{ID: 9, Name: "Asha", TotalMarks: 5})

	select {
	case v := <-good.got:
		ev, ok := v.(ResultEvent)
		if !ok || ev.Result.ID != 9 || ev.Type != "result.recorded" {
			t.Fatalf("event = %#v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}

	select {
	case <-bad.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("failing client was not closed")
	}
}

func TestHubUnregister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub()
	go h.Run(ctx)

	conn := newFakeConn(false)
	client := &Client{ID: uuid.New(), Conn: conn}
	h.Register(client)
	h.Unregister(client)

	// A second client proves the broadcast ran after the unregister.
	witness := newFakeConn(false)
	h.Register(&Client{ID: uuid.New(), Conn: witness})
	h.Publish(models.ResultRow{ID: 1})

	select {
	case <-witness.got:
	case <-time.After(2 * time.Second):
		t.Fatal("second client got nothing")
	}
	select {
	case v := <-conn.got:
		t.Fatalf("unregistered client received %v", v)
	default:
	}
}

func TestHubRegisterAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	live := newFakeConn(false)
	if !h.Register(&Client{ID: uuid.New(), Conn: live}) {
		t.Fatal("register on a running hub failed")
	}
	cancel()
	<-stopped

	select {
	case <-live.closed:
	default:
		t.Error("connected client not closed on shutdown")
	}

	returned := make(chan bool, 1)
	client := &Client{ID: uuid.New(), Conn: newFakeConn(false)}
	go func() {
		ok := h.Register(client)
		h.Unregister(client)
		returned <- ok
	}()
	select {
	case ok := <-returned:
		if ok {
			t.Error("register after shutdown reported success")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("register/unregister blocked on a stopped hub")
	}
}
