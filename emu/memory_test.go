package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/isa"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("reads zero from an address never written", func() {
		Expect(mem.Load(0x1000, isa.ModeWord)).To(Equal(uint32(0)))
	})

	It("round-trips a word store and load", func() {
		mem.Store(0x100, 0xDEADBEEF, isa.ModeWord)
		Expect(mem.Load(0x100, isa.ModeWord)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("sign-extends a byte load", func() {
		mem.Store(0x0, 0xFF, isa.ModeByte)
		Expect(mem.Load(0x0, isa.ModeByte)).To(Equal(uint32(0xFFFFFFFF)))
		Expect(mem.Load(0x0, isa.ModeByteUnsigned)).To(Equal(uint32(0xFF)))
	})

	It("sign-extends a halfword load", func() {
		mem.Store(0x4, 0x8000, isa.ModeHalfWord)
		Expect(mem.Load(0x4, isa.ModeHalfWord)).To(Equal(uint32(0xFFFF8000)))
		Expect(mem.Load(0x4, isa.ModeHalfWordUnsigned)).To(Equal(uint32(0x8000)))
	})

	It("stores only the low bytes for narrower modes", func() {
		mem.Store(0x8, 0xAABBCCDD, isa.ModeWord)
		mem.Store(0x8, 0x11, isa.ModeByte)
		Expect(mem.Load(0x8, isa.ModeWord)).To(Equal(uint32(0xAABBCC11)))
	})
})
