package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"www.velocidex.com/golang/go-diskscan/parser"
)

func debugReport(report parser.Debugger) {
	if parser.IsDebug() {
		parser.DebugPrint("%s\n", parser.DebugString(report, "  "))
	}
}

func writePartitions(out io.Writer, inspector *parser.Inspector, as_json bool) error {
	table, err := inspector.Partitions()
	if err != nil {
		return err
	}
	debugReport(table)

	if as_json {
		return writeJSON(out, table)
	}

	renderPartitions(out, table)
	return nil
}

func renderPartitions(out io.Writer, partitions *parser.PartitionTable) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{
		"Slot",
		"Status",
		"Code",
		"Type",
		"Start Sector",
		"Size KiB",
	})
	table.SetCaption(true, fmt.Sprintf("%d active, %d blank partitions",
		partitions.ActiveCount(), partitions.BlankCount))

	for _, entry := range partitions.Entries {
		table.Append([]string{
			fmt.Sprintf("%d", entry.Slot),
			fmt.Sprintf("0x%02x", entry.Status),
			fmt.Sprintf("0x%02x", entry.Type.Value),
			entry.Type.Name,
			number(entry.StartSectorLBA),
			number(entry.SizeKiB()),
		})
	}
	table.Render()

	if !partitions.HasValidSignature {
		fmt.Fprintln(out, "The MBR signature is missing")
	}
}

func writeFat(out io.Writer, inspector *parser.Inspector, as_json bool) error {
	report, err := inspector.Fat()
	if errors.Is(err, parser.NoMatchingPartitionError) {
		fmt.Fprintf(out, "no %s partition found\n", parser.PARTITION_FAT16.Name())
		return nil
	}
	if err != nil {
		return err
	}
	debugReport(report)

	if as_json {
		return writeJSON(out, report)
	}

	renderFat(out, report)
	return nil
}

func renderFat(out io.Writer, report *parser.FatReport) {
	layout := report.Layout

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetCaption(true, fmt.Sprintf("FAT-16 volume at sector %v",
		number(layout.VolumeStartSector)))
	table.AppendBulk([][]string{
		{"Bytes per sector", number(layout.Boot.BytesPerSector)},
		{"Sectors per cluster", number(layout.Boot.SectorsPerCluster)},
		{"Reserved sectors", number(layout.Boot.ReservedSectorCount)},
		{"FAT copies", number(layout.Boot.FatCopyCount)},
		{"Sectors per FAT", number(layout.Boot.SectorsPerFat)},
		{"Max root entries", number(layout.Boot.MaxRootDirEntries)},
		{"FAT area sectors", number(layout.FatAreaSizeSectors)},
		{"Root directory sectors", number(layout.RootDirSizeSectors)},
		{"Data area sector", number(layout.DataAreaStartSector)},
		{"Cluster #2 sector", number(layout.Cluster2Sector)},
	})
	table.Render()

	if !report.DeletedFileFound {
		fmt.Fprintln(out, "No deleted file found in the root directory")
		return
	}

	deleted := report.DeletedFile
	first_data := "no allocated cluster"
	first_sector := "-"
	if deleted.HasAllocatedCluster {
		first_data = fmt.Sprintf("%q", deleted.FirstDataBytes)
		first_sector = number(deleted.FirstDataSector)
	}
	if deleted.FirstDataError != "" {
		first_data = "unreadable: " + deleted.FirstDataError
	}

	table = tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetCaption(true, "First deleted file in the root directory")
	table.AppendBulk([][]string{
		{"Name", deleted.Name},
		{"Entry offset", fmt.Sprintf("%#x", deleted.EntryOffset)},
		{"Attribute", fmt.Sprintf("0x%02x", deleted.Attribute)},
		{"Size", fmt.Sprintf("%v bytes (%.2f KiB)",
			number(deleted.FileSizeBytes), deleted.FileSizeKiB())},
		{"First cluster", number(deleted.FirstClusterLow)},
		{"Long name entry", fmt.Sprintf("%v", deleted.HasLongNameEntry)},
		{"First data sector", first_sector},
		{"First data", first_data},
	})
	table.Render()
}

func writeNtfs(out io.Writer, inspector *parser.Inspector, as_json bool) error {
	report, err := inspector.Ntfs()
	if errors.Is(err, parser.NoMatchingPartitionError) {
		fmt.Fprintf(out, "no %s partition found\n", parser.PARTITION_NTFS.Name())
		return nil
	}
	if err != nil {
		return err
	}
	debugReport(report)

	if as_json {
		return writeJSON(out, report)
	}

	renderNtfs(out, report)
	return nil
}

func renderNtfs(out io.Writer, report *parser.NtfsReport) {
	boot := report.Boot

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetCaption(true, fmt.Sprintf("NTFS volume at sector %v",
		number(boot.VolumeStartSector)))
	table.AppendBulk([][]string{
		{"OEM id", fmt.Sprintf("%q", boot.OemId)},
		{"Bytes per sector", number(boot.BytesPerSector)},
		{"Sectors per cluster", number(boot.SectorsPerCluster)},
		{"$MFT cluster", number(boot.MftLogicalClusterNumber)},
		{"$MFT sector", number(report.MftSectorAddress)},
		{"Record magic", fmt.Sprintf("%q", report.Record.Magic)},
		{"First attribute offset", fmt.Sprintf("%#x",
			report.Record.FirstAttributeOffset)},
	})
	table.Render()

	table = tablewriter.NewWriter(out)
	table.SetHeader([]string{
		"#",
		"Offset",
		"Type",
		"Name",
		"Length",
		"Non Resident",
		"Id",
	})
	table.SetCaption(true, "$MFT record attributes")
	for idx, attr := range report.Attributes {
		if attr.IsEnd() {
			table.Append([]string{
				fmt.Sprintf("%d", idx+1),
				fmt.Sprintf("%#x", attr.RecordOffset),
				fmt.Sprintf("%#x", attr.Type.Value),
				"END", "", "", "",
			})
			continue
		}

		table.Append([]string{
			fmt.Sprintf("%d", idx+1),
			fmt.Sprintf("%#x", attr.RecordOffset),
			fmt.Sprintf("%#x", attr.Type.Value),
			attr.Type.Name,
			number(attr.Length),
			fmt.Sprintf("%v", attr.NonResident),
			fmt.Sprintf("%d", attr.AttributeId),
		})
	}
	table.Render()
}
