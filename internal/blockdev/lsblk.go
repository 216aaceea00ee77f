package blockdev

import (
	"context"
	"fmt"
	"strings"

	"github.com/muurk/diskmgr/internal/table"
)

// InventoryTitle is the title of tables built by Inventory.
const InventoryTitle = "Block devices"

// Columns the selection workflows filter on. They are requested even when
// the configured column set leaves them out.
const (
	ColumnName       = "NAME"
	ColumnType       = "TYPE"
	ColumnMountpoint = "MOUNTPOINT"
)

// rightJustified are the numeric lsblk columns.
var rightJustified = []string{"SIZE", "RM", "RO", "MAJ:MIN"}

// treeGlyphs are the prefixes lsblk draws in front of child devices, in
// both its UTF-8 and ASCII renderings.
var treeGlyphs = []string{"├─", "└─", "│", "|-", "`-", "|"}

// ListDevices runs lsblk for the given columns, optionally restricted to
// devices, and returns its text table.
func ListDevices(ctx context.Context, r Runner, columns []string, devices ...string) (string, error) {
	args := append([]string{"-o", strings.Join(columns, ",")}, devices...)
	res, err := r.Run(ctx, "lsblk", args...)
	if err != nil {
		return "", fmt.Errorf("failed to list block devices: %w", err)
	}
	return res.Stdout, nil
}

// Inventory lists block devices as a table store.
func Inventory(ctx context.Context, r Runner, columns []string, devices ...string) (*table.Store, error) {
	text, err := ListDevices(ctx, r, withRequired(columns), devices...)
	if err != nil {
		return nil, err
	}
	store, err := table.New(
		table.FromText(text),
		table.WithTitle(InventoryTitle),
		table.WithRightJustified(rightJustified...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lsblk output: %w", err)
	}
	return store, nil
}

// Disks keeps only whole disks.
func Disks(s *table.Store) *table.Store {
	s.FilterStartsWith(ColumnType, "disk")
	return s
}

// MountedDevices lists disk and every device below it (partitions, LVM and
// crypt volumes, or the bare disk itself) that has a mount point.
func MountedDevices(ctx context.Context, r Runner, columns []string, disk string) (*table.Store, error) {
	s, err := Inventory(ctx, r, columns, DevicePath(disk))
	if err != nil {
		return nil, err
	}
	s.FilterNonEmpty(ColumnMountpoint)
	return s, nil
}

// DevicePath turns an lsblk NAME cell into a device path, dropping the tree
// drawing in front of partitions: "└─sdb1" becomes "/dev/sdb1".
func DevicePath(name string) string {
	name = trimTree(name)
	if name == "" || strings.HasPrefix(name, "/") {
		return name
	}
	return "/dev/" + name
}

// NodePath is DevicePath for a whole lsblk record. Device-mapper volumes
// (lvm, crypt) are named under /dev/mapper.
func NodePath(rec table.Record) string {
	name := trimTree(rec.Value(ColumnName))
	switch strings.ToLower(rec.Value(ColumnType)) {
	case "lvm", "crypt", "dm":
		if name != "" && !strings.HasPrefix(name, "/") {
			return "/dev/mapper/" + name
		}
	}
	return DevicePath(name)
}

func trimTree(name string) string {
	name = strings.TrimSpace(name)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, g := range treeGlyphs {
			if strings.HasPrefix(name, g) {
				name = strings.TrimSpace(strings.TrimPrefix(name, g))
				trimmed = true
			}
		}
	}
	return name
}

func withRequired(columns []string) []string {
	out := make([]string, 0, len(columns)+3)
	seen := make(map[string]bool)
	for _, c := range columns {
		c = strings.ToUpper(c)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	if !seen[ColumnName] {
		out = append([]string{ColumnName}, out...)
	}
	for _, c := range []string{ColumnType, ColumnMountpoint} {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}
