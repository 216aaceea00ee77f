// Package blockdev wraps the block device tools diskmgr drives: lsblk for
// the inventory, umount, and badblocks for surface scans.
//
// Every command goes through a Runner so workflows can be tested without
// touching real devices. ExecRunner captures output, applies a timeout and
// turns failures into *CommandError or *TimeoutError values:
//
//	runner := blockdev.NewExecRunner(blockdev.DefaultExecConfig(), logging.GetLogger())
//	store, err := blockdev.Inventory(ctx, runner, cfg.Lsblk.Columns)
//	if err != nil {
//	    return err
//	}
//	blockdev.Disks(store)
//
// lsblk output is parsed by the table package, so the NAME column of
// partitions keeps lsblk's tree drawing ("└─sdb1"); DevicePath strips it.
package blockdev
