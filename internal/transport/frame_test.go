package transport

import "testing"

func TestEncodeDecodeFrameRoundTrip(t *testing.T) {
	raw := EncodeFrame(C2SRequestOpenPack, []byte("payload"))
	frame, err := DecodeFrame(raw)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if frame.Type != C2SRequestOpenPack {
		t.Fatalf("expected type %#x, got %#x", C2SRequestOpenPack, frame.Type)
	}
	if string(frame.Payload) != "payload" {
		t.Fatalf("expected payload %q, got %q", "payload", frame.Payload)
	}
}

func TestDecodeEmptyFrameFails(t *testing.T) {
	if _, err := DecodeFrame(nil); err == nil {
		t.Fatal("expected error decoding an empty frame")
	}
}

func TestIsDeferredPartitionsOnHighBit(t *testing.T) {
	// A time-critical frame type never reaches this package over the real
	// socket, but the partition itself is just a bit test: any byte with
	// the high bit clear must read as not-deferred.
	const timeCriticalMove FrameType = 0x01

	cases := []struct {
		t    FrameType
		want bool
	}{
		{timeCriticalMove, false},
		{C2SRequestInventory, true},
		{C2SRequestOpenPack, true},
		{S2CResponseInventory, true},
		{S2CResponseOpenPack, true},
		{S2CInitializeWorld, true},
	}
	for _, c := range cases {
		if got := c.t.IsDeferred(); got != c.want {
			t.Errorf("IsDeferred(%#x) = %v, want %v", byte(c.t), got, c.want)
		}
	}
}
