package i2cbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorder_FilteredDelivery(t *testing.T) {
	lb := NewLoopbackBus()
	lb.Connect(0x50, &echoPeripheral{response: []byte{0xEE}})
	lb.Connect(0x29, &echoPeripheral{})

	rec := NewRecorder(lb)
	defer rec.Close()

	all, cancelAll := rec.Subscribe(nil, 8)
	defer cancelAll()
	only50, cancel50 := rec.Subscribe(ByAddr(0x50), 8)
	defer cancel50()

	require.NoError(t, rec.Transact(Tx{Addr: 0x29, Cmd: 0x01, W: []byte{0x02}}))
	tx := MustTx(0x50, 0x03, nil, 1)
	require.NoError(t, rec.Transact(tx))

	r := <-all
	require.Equal(t, uint8(0x29), r.Addr)
	require.Equal(t, byte(0x01), r.Cmd)
	require.Equal(t, []byte{0x02}, r.W)
	require.Nil(t, r.R)
	require.NoError(t, r.Err)

	r = <-all
	require.Equal(t, uint8(0x50), r.Addr)
	require.Equal(t, []byte{0xEE}, r.R)

	r = <-only50
	require.Equal(t, uint8(0x50), r.Addr, "filtered subscriber only sees its address")
	select {
	case extra, ok := <-only50:
		require.False(t, ok, "unexpected record %+v", extra)
	default:
	}
}

func TestRecorder_RecordsFailures(t *testing.T) {
	lb := NewLoopbackBus()
	rec := NewRecorder(lb)
	defer rec.Close()

	ch, cancel := rec.Subscribe(nil, 1)
	defer cancel()

	require.Error(t, rec.Transact(Tx{Addr: 0x42, Cmd: 0x00}))
	r := <-ch
	require.ErrorIs(t, r.Err, ErrIO)
}

func TestRecorder_CopiesBuffers(t *testing.T) {
	lb := NewLoopbackBus()
	lb.Connect(0x50, &echoPeripheral{response: []byte{0x0A}})
	rec := NewRecorder(lb)
	defer rec.Close()

	ch, cancel := rec.Subscribe(nil, 1)
	defer cancel()

	w := []byte{0x01}
	tx := Tx{Addr: 0x50, Cmd: 0x00, W: w, R: make([]byte, 1)}
	require.NoError(t, rec.Transact(tx))

	// mutate the caller-owned buffers after the fact
	w[0] = 0xFF
	tx.R[0] = 0xFF

	r := <-ch
	require.Equal(t, []byte{0x01}, r.W)
	require.Equal(t, []byte{0x0A}, r.R)
}

func TestRecorder_DropsWhenSubscriberFull(t *testing.T) {
	lb := NewLoopbackBus()
	lb.Connect(0x50, &echoPeripheral{})
	rec := NewRecorder(lb)
	defer rec.Close()

	ch, cancel := rec.Subscribe(nil, 1)
	defer cancel()

	// second record is dropped, the bus is never blocked
	require.NoError(t, rec.Transact(Tx{Addr: 0x50, Cmd: 0x01}))
	require.NoError(t, rec.Transact(Tx{Addr: 0x50, Cmd: 0x02}))

	r := <-ch
	require.Equal(t, byte(0x01), r.Cmd)
	select {
	case r := <-ch:
		t.Fatalf("expected drop, got %+v", r)
	default:
	}
}

func TestRecorder_CloseClosesSubscribers(t *testing.T) {
	lb := NewLoopbackBus()
	rec := NewRecorder(lb)

	ch, cancel := rec.Subscribe(nil, 0)
	require.NoError(t, rec.Close())
	_, ok := <-ch
	require.False(t, ok, "subscriber channel must be closed")
	cancel() // no-op after close
	require.ErrorIs(t, rec.Transact(Tx{Addr: 0x50, Cmd: 0x00}), ErrClosed)
}
