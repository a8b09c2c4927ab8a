package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zjxcpu/rv32tomasulo/isa"
	"github.com/zjxcpu/rv32tomasulo/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("should have the spec-mandated memory port latency", func() {
			config := table.Config()
			Expect(config.MemoryPortLatency).To(Equal(uint64(3)))
		})

		It("should have a default predictor table size", func() {
			config := table.Config()
			Expect(config.PredictorTableSize).To(Equal(uint64(1024)))
		})
	})

	Describe("Instruction Type Detection", func() {
		It("should detect memory operations", func() {
			Expect(table.IsMemoryOp(isa.OpLW)).To(BeTrue())
			Expect(table.IsMemoryOp(isa.OpSW)).To(BeTrue())
			Expect(table.IsMemoryOp(isa.OpADD)).To(BeFalse())
		})

		It("should detect load operations", func() {
			Expect(table.IsLoadOp(isa.OpLBU)).To(BeTrue())
			Expect(table.IsLoadOp(isa.OpSB)).To(BeFalse())
		})

		It("should detect store operations", func() {
			Expect(table.IsStoreOp(isa.OpSH)).To(BeTrue())
			Expect(table.IsStoreOp(isa.OpLH)).To(BeFalse())
		})

		It("should detect branch operations", func() {
			Expect(table.IsBranchOp(isa.OpBEQ)).To(BeTrue())
			Expect(table.IsBranchOp(isa.OpJAL)).To(BeFalse())
			Expect(table.IsBranchOp(isa.OpADD)).To(BeFalse())
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := &latency.TimingConfig{
				MemoryPortLatency:  6,
				PredictorTableSize: 512,
			}
			customTable := latency.NewTableWithConfig(config)

			Expect(customTable.MemoryPortLatency()).To(Equal(uint64(6)))
			Expect(customTable.PredictorTableSize()).To(Equal(uint64(512)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero memory port latency", func() {
			config := latency.DefaultTimingConfig()
			config.MemoryPortLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero predictor table size", func() {
			config := latency.DefaultTimingConfig()
			config.PredictorTableSize = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject a non-power-of-2 predictor table size", func() {
			config := latency.DefaultTimingConfig()
			config.PredictorTableSize = 1000
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.MemoryPortLatency = 100

			Expect(original.MemoryPortLatency).To(Equal(uint64(3)))
			Expect(clone.MemoryPortLatency).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.MemoryPortLatency = 5

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.MemoryPortLatency).To(Equal(uint64(5)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
