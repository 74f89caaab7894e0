// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stream

import (
	"encoding/binary"
	"errors"

	"github.com/gogpu/xydoodle/sink"
)

// Wire format of one binary message: doodle index (uint16), pass (uint16),
// then three bytes (x, y, z) per sample. Integers are little-endian.
const headerSize = 4

// ErrMessage is returned by Decode for a malformed message.
var ErrMessage = errors.New("stream: malformed message")

// Frame is one decoded redraw pass.
type Frame struct {
	Doodle  int
	Pass    int
	Samples []sink.Sample
}

func appendHeader(b []byte, doodle, pass int) []byte {
	b = binary.LittleEndian.AppendUint16(b, uint16(doodle))
	return binary.LittleEndian.AppendUint16(b, uint16(pass))
}

// Decode parses a message sent by a Hub.
func Decode(msg []byte) (Frame, error) {
	if len(msg) < headerSize || (len(msg)-headerSize)%3 != 0 {
		return Frame{}, ErrMessage
	}
	f := Frame{
		Doodle: int(binary.LittleEndian.Uint16(msg[0:])),
		Pass:   int(binary.LittleEndian.Uint16(msg[2:])),
	}
	body := msg[headerSize:]
	f.Samples = make([]sink.Sample, 0, len(body)/3)
	for i := 0; i < len(body); i += 3 {
		f.Samples = append(f.Samples, sink.Sample{X: body[i], Y: body[i+1], Z: body[i+2]})
	}
	return f, nil
}
