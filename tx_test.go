package i2cbus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTx_Validate_String(t *testing.T) {
	cases := []struct {
		name    string
		tx      Tx
		wantStr string
		wantErr error
	}{
		{
			name:    "write only with payload",
			tx:      Tx{Addr: 0x50, Cmd: 0x10, W: []byte{0xAA, 0xBB}},
			wantStr: "50 W[10 AA BB]",
			wantErr: nil,
		},
		{
			name:    "write then read",
			tx:      MustTx(0x50, 0x00, nil, 4),
			wantStr: "50 W[00] R[4]",
			wantErr: nil,
		},
		{
			name:    "bare command",
			tx:      Tx{Addr: 0x29, Cmd: 0xFE},
			wantStr: "29 W[FE]",
			wantErr: nil,
		},
		{
			name:    "address out of 7-bit range",
			tx:      Tx{Addr: 0x80, Cmd: 0x00},
			wantErr: ErrInvalidAddr,
		},
		{
			name:    "oversized write",
			tx:      Tx{Addr: 0x50, Cmd: 0x00, W: make([]byte, 256)},
			wantErr: ErrInvalidLen,
		},
		{
			name:    "oversized read",
			tx:      Tx{Addr: 0x50, Cmd: 0x00, R: make([]byte, 256)},
			wantErr: ErrInvalidLen,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.tx.Validate(), tc.wantErr)
			if tc.wantErr == nil {
				require.Equal(t, tc.wantStr, tc.tx.String())
			}
		})
	}
}

func TestMustTx_PanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() { MustTx(0x80, 0x00, nil, 0) })
	require.Panics(t, func() { MustTx(0x50, 0x00, nil, 256) })
	require.Panics(t, func() { MustTx(0x50, 0x00, nil, -1) })
}

func TestFilters(t *testing.T) {
	wr := Tx{Addr: 0x50, Cmd: 0x10, W: []byte{1, 2}}
	rd := MustTx(0x29, 0x00, nil, 4)

	require.True(t, ByAddr(0x50)(wr))
	require.False(t, ByAddr(0x50)(rd))
	require.True(t, ByAddrs(0x29, 0x50)(rd))
	require.True(t, ByAddrRange(0x20, 0x2F)(rd))
	require.False(t, ByAddrRange(0x20, 0x2F)(wr))
	// swapped bounds are tolerated
	require.True(t, ByAddrRange(0x2F, 0x20)(rd))
	require.True(t, ByCmd(0x10)(wr))
	require.True(t, ByCmds(0x00, 0x10)(rd))
	require.True(t, WriteOnly()(wr))
	require.False(t, WriteOnly()(rd))
	require.True(t, WithRead()(rd))
	require.True(t, WriteLenAtMost(2)(wr))
	require.False(t, WriteLenAtMost(1)(wr))
	require.True(t, ReadLenExactly(4)(rd))

	require.True(t, And(ByAddr(0x50), WriteOnly())(wr))
	require.False(t, And(ByAddr(0x50), WithRead())(wr))
	require.True(t, Or(ByAddr(0x29), ByAddr(0x50))(rd))
	require.False(t, Not(ByAddr(0x29))(rd))

	// nil composition falls back to the non-nil side
	require.True(t, And(nil, ByAddr(0x50))(wr))
	require.True(t, Or(ByAddr(0x50), nil)(wr))
	require.True(t, Not(nil)(wr))
}
