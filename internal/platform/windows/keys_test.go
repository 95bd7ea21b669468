package windows

import (
	"bytes"
	"testing"
)

func TestVirtualKeyCodes(t *testing.T) {
	tests := []struct {
		keys []string
		want []byte
	}{
		{[]string{"enter"}, []byte{vkReturn}},
		{[]string{"ctrl", "f"}, []byte{vkControl, 'F'}},
		{[]string{"ctrl", "shift", "1"}, []byte{vkControl, vkShift, '1'}},
		{[]string{"ctrl", "backspace"}, []byte{vkControl, vkBack}},
	}
	for _, tt := range tests {
		got, err := virtualKeyCodes(tt.keys)
		if err != nil {
			t.Errorf("virtualKeyCodes(%v): %v", tt.keys, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("virtualKeyCodes(%v) = %v, want %v", tt.keys, got, tt.want)
		}
	}
}

func TestVirtualKeyCodes_Unsupported(t *testing.T) {
	for _, keys := range [][]string{{"pagedown"}, {"ctrl", "é"}, {"ctrl"}} {
		if _, err := virtualKeyCodes(keys); err == nil {
			t.Errorf("virtualKeyCodes(%v) should fail", keys)
		}
	}
}
