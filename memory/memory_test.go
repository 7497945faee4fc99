package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwidger/go6502/memory"
)

func TestReadWrite(t *testing.T) {
	m := memory.NewFlat()
	assert.Equal(t, uint8(0x00), m.Read(0x1234))

	m.Write(0x1234, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0x1234))

	// Every address is legal, including the very top and bottom of the
	// space.
	m.Write(0x0000, 0x01)
	m.Write(0xFFFF, 0xFE)
	assert.Equal(t, uint8(0x01), m.Read(0x0000))
	assert.Equal(t, uint8(0xFE), m.Read(0xFFFF))
}

func TestWordIsIndependentOfByteOrder(t *testing.T) {
	// memory itself has no notion of words; this just confirms two
	// adjacent bytes are addressable independently, which is all the
	// cpu package's little-endian helpers need.
	m := memory.NewFlat()
	m.Write(0x2000, 0x34)
	m.Write(0x2001, 0x12)
	assert.Equal(t, uint8(0x34), m.Read(0x2000))
	assert.Equal(t, uint8(0x12), m.Read(0x2001))
}

func TestPowerOnZeroFills(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x4242, 0xAA)
	m.PowerOn()
	assert.Equal(t, uint8(0x00), m.Read(0x4242))
}
