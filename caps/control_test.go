package caps

import (
	"errors"
	"os"
	"reflect"
	"sync"
	"syscall"
	"testing"
)

// fakeKernel keeps one capability state and lets tests inject errnos.
type fakeKernel struct {
	mu       sync.Mutex
	data     [2]Data
	keepcaps int
	err      error
	headers  []Header
	calls    int
}

func (k *fakeKernel) Capget(hdr *Header, data *[2]Data) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.calls++
	k.headers = append(k.headers, *hdr)
	if k.err != nil {
		return k.err
	}
	*data = k.data
	return nil
}

func (k *fakeKernel) Capset(hdr *Header, data *[2]Data) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.calls++
	k.headers = append(k.headers, *hdr)
	if k.err != nil {
		return k.err
	}
	k.data = *data
	return nil
}

func (k *fakeKernel) Prctl(option int, arg2 uintptr) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.calls++
	if k.err != nil {
		return -1, k.err
	}
	switch option {
	case PR_SET_KEEPCAPS:
		k.keepcaps = int(arg2)
		return 0, nil
	case PR_GET_KEEPCAPS:
		return k.keepcaps, nil
	}
	return -1, syscall.EINVAL
}

func TestDropThenGet(t *testing.T) {
	k := &fakeKernel{}
	k.data[0] = Data{Effective: 0xffffffff, Permitted: 0xffffffff, Inheritable: 1}
	k.data[1] = Data{Effective: 0x1ff, Permitted: 0x1ff}
	c := New(k)

	if err := c.DropAllCapsExcept([]Cap{CAP_CHOWN}, []Cap{CAP_CHOWN}, nil); err != nil {
		t.Fatal(err)
	}
	eff, prm, inh, err := c.GetCaps()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(eff, []Cap{0}) || !reflect.DeepEqual(prm, []Cap{0}) || len(inh) != 0 {
		t.Fatalf("unexpected sets after drop: %v %v %v", eff, prm, inh)
	}

	for _, hdr := range k.headers {
		if hdr.Version != Version2 || hdr.Pid != 0 {
			t.Fatalf("unexpected header %#v", hdr)
		}
	}
}

func TestDropSplitsWords(t *testing.T) {
	k := &fakeKernel{}
	c := New(k)
	if err := c.DropAllCapsExcept([]Cap{1, 40}, []Cap{1, 40, 63}, []Cap{33}); err != nil {
		t.Fatal(err)
	}
	want := [2]Data{
		{Effective: 1 << 1, Permitted: 1 << 1},
		{Effective: 1 << 8, Permitted: 1<<8 | 1<<31, Inheritable: 1 << 1},
	}
	if k.data != want {
		t.Fatalf("unexpected kernel data %#v", k.data)
	}
}

func TestGetCapsJoinsWords(t *testing.T) {
	k := &fakeKernel{}
	k.data[0] = Data{Effective: 1 << CAP_NET_RAW, Permitted: 1<<CAP_NET_RAW | 1<<CAP_KILL}
	k.data[1] = Data{Permitted: 1 << 2, Inheritable: 1}
	eff, prm, inh, err := New(k).GetCaps()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(eff, []Cap{CAP_NET_RAW}) ||
		!reflect.DeepEqual(prm, []Cap{CAP_KILL, CAP_NET_RAW, 34}) ||
		!reflect.DeepEqual(inh, []Cap{32}) {
		t.Fatalf("unexpected sets: %v %v %v", eff, prm, inh)
	}
}

func TestKernelErrors(t *testing.T) {
	k := &fakeKernel{err: syscall.EPERM}
	c := New(k)

	check := func(t *testing.T, name string, err error) {
		t.Helper()
		var serr *os.SyscallError
		if !errors.As(err, &serr) || serr.Syscall != name {
			t.Fatalf("expected %s SyscallError, got %#v", name, err)
		}
		var errno syscall.Errno
		if !errors.As(err, &errno) || errno != syscall.EPERM {
			t.Fatalf("expected EPERM, got %v", err)
		}
	}

	t.Run("capget", func(t *testing.T) {
		_, _, _, err := c.GetCaps()
		check(t, "capget", err)
	})
	t.Run("capset", func(t *testing.T) {
		check(t, "capset", c.DropAllCapsExcept(nil, nil, nil))
	})
	t.Run("prctl", func(t *testing.T) {
		check(t, "prctl", c.SetKeepCaps(true))
		_, err := c.KeepCaps()
		check(t, "prctl", err)
	})
}

func TestDropInvalidCap(t *testing.T) {
	k := &fakeKernel{}
	err := New(k).DropAllCapsExcept(nil, []Cap{MaxCap + 1}, nil)
	if !errors.Is(err, ErrInvalidCap) {
		t.Fatalf("expected ErrInvalidCap, got %v", err)
	}
	if k.calls != 0 {
		t.Fatal("kernel called with invalid capability")
	}
}

func TestKeepCaps(t *testing.T) {
	c := New(&fakeKernel{})
	for _, enable := range []bool{true, false, true} {
		if err := c.SetKeepCaps(enable); err != nil {
			t.Fatal(err)
		}
		got, err := c.KeepCaps()
		if err != nil {
			t.Fatal(err)
		}
		if got != enable {
			t.Fatalf("keepcaps = %v, want %v", got, enable)
		}
	}
}
