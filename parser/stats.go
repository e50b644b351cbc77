package parser

import (
	"sync"

	"github.com/Velocidex/ordereddict"
)

var (
	STATS = Stats{}
)

// Counts the structures decoded by this process.
type Stats struct {
	mu sync.Mutex

	Reads          int
	PartitionEntry int
	FatBootSector  int
	DirectoryEntry int
	NtfsBootSector int
	MftRecord      int
	MftAttribute   int
	ImagesOpened   int
}

func (self *Stats) Dict() *ordereddict.Dict {
	self.mu.Lock()
	defer self.mu.Unlock()

	return ordereddict.NewDict().
		Set("Reads", self.Reads).
		Set("PartitionEntry", self.PartitionEntry).
		Set("FatBootSector", self.FatBootSector).
		Set("DirectoryEntry", self.DirectoryEntry).
		Set("NtfsBootSector", self.NtfsBootSector).
		Set("MftRecord", self.MftRecord).
		Set("MftAttribute", self.MftAttribute).
		Set("ImagesOpened", self.ImagesOpened)
}

func (self *Stats) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.Reads = 0
	self.PartitionEntry = 0
	self.FatBootSector = 0
	self.DirectoryEntry = 0
	self.NtfsBootSector = 0
	self.MftRecord = 0
	self.MftAttribute = 0
	self.ImagesOpened = 0
}

func (self *Stats) Inc_Reads() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.Reads++
}

func (self *Stats) Inc_PartitionEntry() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.PartitionEntry++
}

func (self *Stats) Inc_FatBootSector() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.FatBootSector++
}

func (self *Stats) Inc_DirectoryEntry() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.DirectoryEntry++
}

func (self *Stats) Inc_NtfsBootSector() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.NtfsBootSector++
}

func (self *Stats) Inc_MftRecord() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.MftRecord++
}

func (self *Stats) Inc_MftAttribute() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.MftAttribute++
}

func (self *Stats) Inc_ImagesOpened() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.ImagesOpened++
}
