package parser

// This file defines the model for a whole disk: every report the
// inspector can produce, each with the error that prevented it.

type DiskReport struct {
	Image       string
	Compression string
	Size        int64

	Partitions      *PartitionTable `json:",omitempty"`
	PartitionsError string          `json:",omitempty"`

	Fat      *FatReport `json:",omitempty"`
	FatError string     `json:",omitempty"`

	Ntfs      *NtfsReport `json:",omitempty"`
	NtfsError string      `json:",omitempty"`
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
