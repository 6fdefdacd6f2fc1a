package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeCommandHeader(t *testing.T) {
	tests := []struct {
		name          string
		code          uint16
		payload       []byte
		wantSizeClass byte
	}{
		{
			name:          "empty payload is small",
			code:          CmdStatus,
			payload:       nil,
			wantSizeClass: SizeClassSmall,
		},
		{
			name:          "two byte payload is small",
			code:          CmdStatus,
			payload:       []byte("{}"),
			wantSizeClass: SizeClassSmall,
		},
		{
			name:          "three byte payload is large",
			code:          CmdToggle,
			payload:       []byte("{,}"),
			wantSizeClass: SizeClassLarge,
		},
		{
			name:          "typical command payload",
			code:          CmdTemperature,
			payload:       []byte(`{"temp":21}`),
			wantSizeClass: SizeClassLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := EncodeCommand(tt.code, tt.payload)

			if len(frame) != HeaderSize+len(tt.payload) {
				t.Errorf("frame size = %d, want %d", len(frame), HeaderSize+len(tt.payload))
			}

			if got := binary.LittleEndian.Uint16(frame[0:2]); got != tt.code {
				t.Errorf("command code = 0x%04x, want 0x%04x", got, tt.code)
			}

			if !bytes.Equal(frame[2:6], Magic[:]) {
				t.Errorf("magic = % x, want % x", frame[2:6], Magic[:])
			}

			if frame[8] != tt.wantSizeClass {
				t.Errorf("size class = 0x%02x, want 0x%02x", frame[8], tt.wantSizeClass)
			}

			if frame[9] != VersionMarker {
				t.Errorf("version marker = 0x%02x, want 0x%02x", frame[9], VersionMarker)
			}

			if got := binary.LittleEndian.Uint16(frame[10:12]); got != uint16(len(tt.payload)) {
				t.Errorf("payload length = %d, want %d", got, len(tt.payload))
			}

			if !bytes.Equal(frame[HeaderSize:], tt.payload) {
				t.Errorf("payload = %q, want %q", frame[HeaderSize:], tt.payload)
			}
		})
	}
}

func TestEncodeCommandChecksumMatchesDecodeFormula(t *testing.T) {
	// Outbound and inner response buffers share the checksum formula and
	// field layout, so the checksum a frame carries must validate when its
	// own bytes are recomputed the way DecodeResponse does it.
	frame := EncodeCommand(CmdAirflow, []byte(`{"ac_mode":4}`))

	declared := binary.LittleEndian.Uint16(frame[6:8])
	if computed := Checksum(frame[8:]); computed != declared {
		t.Errorf("recomputed checksum 0x%04x does not match declared 0x%04x", computed, declared)
	}
}

func TestChecksumAdditivity(t *testing.T) {
	// Appending a byte b must shift the checksum by exactly b mod 65536.
	base := []byte(`{"ac_pwr":1}`)
	for _, b := range []byte{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		want := Checksum(base) + uint16(b)
		if got := Checksum(append(append([]byte{}, base...), b)); got != want {
			t.Errorf("Checksum(base+0x%02x) = 0x%04x, want 0x%04x", b, got, want)
		}
	}
}

func TestChecksumSeed(t *testing.T) {
	if got := Checksum(nil); got != ChecksumSeed {
		t.Errorf("Checksum(nil) = 0x%04x, want seed 0x%04x", got, ChecksumSeed)
	}
}

// stubTransport implements Transport for decode tests.
type stubTransport struct {
	statusErr    error
	inner        []byte
	decryptErr   error
	decryptCalls int
}

func (s *stubTransport) CheckStatus(raw []byte) error { return s.statusErr }

func (s *stubTransport) Decrypt(data []byte) ([]byte, error) {
	s.decryptCalls++
	if s.decryptErr != nil {
		return nil, s.decryptErr
	}
	return s.inner, nil
}

// buildInner assembles a valid decrypted response body around payload.
func buildInner(payload []byte) []byte {
	inner := make([]byte, innerPayloadOffset+len(payload))
	binary.LittleEndian.PutUint16(inner[innerLengthOffset:innerLengthOffset+2], uint16(len(payload)))
	copy(inner[innerPayloadOffset:], payload)
	binary.LittleEndian.PutUint16(inner[innerChecksumOffset:innerChecksumOffset+2], Checksum(inner[innerSumStart:]))
	return inner
}

func TestDecodeResponse(t *testing.T) {
	raw := make([]byte, respMinSize)
	payload := []byte(`{"ac_pwr":1}`)

	t.Run("valid response returns payload", func(t *testing.T) {
		tr := &stubTransport{inner: buildInner(payload)}
		got, err := DecodeResponse(raw, tr)
		if err != nil {
			t.Fatalf("DecodeResponse() error = %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("payload = %q, want %q", got, payload)
		}
	})

	t.Run("declared length trims trailing bytes", func(t *testing.T) {
		inner := buildInner(payload)
		// Extra padding past the declared length must not leak into the payload.
		inner = append(inner, 0x00, 0x00, 0x00)
		binary.LittleEndian.PutUint16(inner[innerChecksumOffset:innerChecksumOffset+2], Checksum(inner[innerSumStart:]))

		got, err := DecodeResponse(raw, &stubTransport{inner: inner})
		if err != nil {
			t.Fatalf("DecodeResponse() error = %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Errorf("payload = %q, want %q", got, payload)
		}
	})

	t.Run("short response rejected", func(t *testing.T) {
		tr := &stubTransport{inner: buildInner(payload)}
		if _, err := DecodeResponse(make([]byte, respMinSize-1), tr); err == nil {
			t.Fatal("expected error for short response")
		}
		if tr.decryptCalls != 0 {
			t.Errorf("decrypt calls = %d, want 0", tr.decryptCalls)
		}
	})

	t.Run("device status error checked before decryption", func(t *testing.T) {
		statusErr := errors.New("the device is offline")
		tr := &stubTransport{statusErr: statusErr, inner: buildInner(payload)}

		_, err := DecodeResponse(raw, tr)
		if !errors.Is(err, statusErr) {
			t.Fatalf("DecodeResponse() error = %v, want %v", err, statusErr)
		}
		if tr.decryptCalls != 0 {
			t.Errorf("decrypt calls = %d, want 0", tr.decryptCalls)
		}
	})

	t.Run("checksum mismatch returns ChecksumError and no payload", func(t *testing.T) {
		inner := buildInner(payload)
		inner[innerPayloadOffset] ^= 0xFF // corrupt one payload byte

		got, err := DecodeResponse(raw, &stubTransport{inner: inner})
		var ce *ChecksumError
		if !errors.As(err, &ce) {
			t.Fatalf("DecodeResponse() error = %v, want *ChecksumError", err)
		}
		if got != nil {
			t.Errorf("payload = %v, want nil", got)
		}
	})

	t.Run("declared length beyond body rejected", func(t *testing.T) {
		inner := buildInner(payload)
		binary.LittleEndian.PutUint16(inner[innerLengthOffset:innerLengthOffset+2], uint16(len(payload)+64))
		binary.LittleEndian.PutUint16(inner[innerChecksumOffset:innerChecksumOffset+2], Checksum(inner[innerSumStart:]))

		if _, err := DecodeResponse(raw, &stubTransport{inner: inner}); err == nil {
			t.Fatal("expected error for out-of-range length")
		}
	})

	t.Run("decrypt failure propagated", func(t *testing.T) {
		decErr := errors.New("session not established")
		_, err := DecodeResponse(raw, &stubTransport{decryptErr: decErr})
		if !errors.Is(err, decErr) {
			t.Fatalf("DecodeResponse() error = %v, want wrapped %v", err, decErr)
		}
	})
}
