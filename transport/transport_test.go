package transport

import (
	"io"
	"io/ioutil"
	"testing"

	"golang.org/x/net/nettest"
)

func fatal(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// halfClose writes msg, shuts the write side of a, and checks b drains msg
// then sees EOF while b can still answer.
func halfClose(t *testing.T, a, b Conn) {
	t.Helper()
	_, err := io.WriteString(a, "Hello world")
	fatal(t, err)
	fatal(t, a.CloseWrite())

	got, err := ioutil.ReadAll(b)
	fatal(t, err)
	if string(got) != "Hello world" {
		t.Fatalf("unexpected data: %q", got)
	}

	_, err = io.WriteString(b, "bye")
	fatal(t, err)
	fatal(t, b.CloseWrite())
	got, err = ioutil.ReadAll(a)
	fatal(t, err)
	if string(got) != "bye" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestDialIO(t *testing.T) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()
	a := DialIO(aw, ar)
	b := DialIO(bw, br)
	defer a.Close()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		got, err := ioutil.ReadAll(b)
		if err != nil || string(got) != "ping" {
			t.Errorf("unexpected read: %q %v", got, err)
		}
	}()
	_, err := io.WriteString(a, "ping")
	fatal(t, err)
	fatal(t, a.CloseWrite())
	<-done
}

func TestListenDialUnix(t *testing.T) {
	l, err := nettest.NewLocalListener("unix")
	fatal(t, err)
	ln := ListenerFrom(l)
	defer ln.Close()

	accepted := make(chan Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			t.Error(err)
			close(accepted)
			return
		}
		accepted <- c
	}()

	a, err := DialUnix(l.Addr().String())
	fatal(t, err)
	defer a.Close()

	b, ok := <-accepted
	if !ok {
		t.FailNow()
	}
	defer b.Close()

	halfClose(t, a, b)
}
