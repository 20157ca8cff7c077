package system

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
)

// AvailableMemory returns the bytes the OS reports as available for new allocations.
// It is a variable so tests can substitute it.
var AvailableMemory = func() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// MemoryCheck is the result of comparing a planned allocation with available memory.
type MemoryCheck struct {
	Required  uint64
	Available uint64
}

func (c MemoryCheck) Fits() bool {
	return c.Required <= c.Available
}

func (c MemoryCheck) String() string {
	return fmt.Sprintf("%s needed, %s available", humanize.IBytes(c.Required), humanize.IBytes(c.Available))
}

// CheckAllocation reports whether required bytes fit in available memory.
func CheckAllocation(required uint64) (MemoryCheck, error) {
	avail, err := AvailableMemory()
	if err != nil {
		return MemoryCheck{Required: required}, fmt.Errorf("read memory stats: %w", err)
	}
	return MemoryCheck{Required: required, Available: avail}, nil
}

// Bytes formats n for humans.
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}
