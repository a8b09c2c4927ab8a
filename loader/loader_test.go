package loader_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zjxcpu/rv32tomasulo/isa"
	"github.com/zjxcpu/rv32tomasulo/loader"
)

var _ = Describe("Load", func() {
	It("writes sequential bytes starting at address 0 when no directive appears", func() {
		mem, err := loader.Load(strings.NewReader("13 05 A0 02"))
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.Load(0, isa.ModeWord)).To(Equal(uint32(0x02A00513)))
	})

	It("honors an @ directive to move the write cursor", func() {
		mem, err := loader.Load(strings.NewReader("@00001000 13 05 A0 02"))
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.Load(0x1000, isa.ModeWord)).To(Equal(uint32(0x02A00513)))
		Expect(mem.ReadByte(0)).To(Equal(byte(0)))
	})

	It("is case-insensitive for both directives and bytes", func() {
		mem, err := loader.Load(strings.NewReader("@0000aB00 1A aF"))
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.ReadByte(0xAB00)).To(Equal(byte(0x1A)))
		Expect(mem.ReadByte(0xAB01)).To(Equal(byte(0xAF)))
	})

	It("supports multiple address directives in one stream", func() {
		mem, err := loader.Load(strings.NewReader("@00000000 01 @00000010 02"))
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.ReadByte(0x00)).To(Equal(byte(0x01)))
		Expect(mem.ReadByte(0x10)).To(Equal(byte(0x02)))
	})

	It("rejects a malformed address directive", func() {
		_, err := loader.Load(strings.NewReader("@ZZZZ"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects a malformed byte token", func() {
		_, err := loader.Load(strings.NewReader("ZZ"))
		Expect(err).To(HaveOccurred())
	})

	It("leaves unwritten memory at zero", func() {
		mem, err := loader.Load(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.ReadByte(0x12345)).To(Equal(byte(0)))
	})
})

var _ = Describe("LoadInto", func() {
	It("loads two fragments into the same memory", func() {
		mem, err := loader.Load(strings.NewReader("@00000000 AA"))
		Expect(err).NotTo(HaveOccurred())

		err = loader.LoadInto(strings.NewReader("@00000010 BB"), mem)
		Expect(err).NotTo(HaveOccurred())

		Expect(mem.ReadByte(0x00)).To(Equal(byte(0xAA)))
		Expect(mem.ReadByte(0x10)).To(Equal(byte(0xBB)))
	})
})
