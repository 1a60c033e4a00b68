package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestCloneBytes_Independent(t *testing.T) {
	src := []byte("pw1")
	dst := CloneBytes(src)
	require.Equal(t, src, dst)

	WipeByteArray(src)
	require.Equal(t, []byte("pw1"), dst)
}

func TestCloneBytes_Nil(t *testing.T) {
	require.Nil(t, CloneBytes(nil))
	require.NotNil(t, CloneBytes([]byte{}))
}
