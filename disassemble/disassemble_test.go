package disassemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nwidger/go6502/memory"
)

func TestStepImmediate(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x0600, 0xA9)
	m.Write(0x0601, 0x42)
	out, n := Step(0x0600, m)
	assert.Equal(t, 2, n)
	assert.True(t, strings.Contains(out, "LDA #$42"))
}

func TestStepAbsoluteIndexed(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x0600, 0xDE)
	m.Write(0x0601, 0x00)
	m.Write(0x0602, 0x20)
	out, n := Step(0x0600, m)
	assert.Equal(t, 3, n)
	assert.True(t, strings.Contains(out, "DEC $2000,X"))
}

func TestStepImplied(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x0600, 0xEA)
	out, n := Step(0x0600, m)
	assert.Equal(t, 1, n)
	assert.True(t, strings.Contains(out, "NOP"))
}

func TestStepRelative(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x0600, 0xF0)
	m.Write(0x0601, 0x02)
	out, n := Step(0x0600, m)
	assert.Equal(t, 2, n)
	assert.True(t, strings.Contains(out, "BEQ $02 (0604)"))
}

func TestStepUnknownOpcode(t *testing.T) {
	m := memory.NewFlat()
	m.Write(0x0600, 0x02)
	out, n := Step(0x0600, m)
	assert.Equal(t, 1, n)
	assert.True(t, strings.Contains(out, "???"))
}
