//go:build !windows

package handler

import "golang.org/x/sys/unix"

// storageUsage reports usage of the filesystem holding path, or nil when
// it cannot be read.
func storageUsage(path string) *StorageUsage {
	var fs unix.Statfs_t
	if err := unix.Statfs(path, &fs); err != nil {
		return nil
	}

	u := &StorageUsage{
		Path:       path,
		TotalBytes: int64(fs.Blocks) * int64(fs.Bsize),
		FreeBytes:  int64(fs.Bavail) * int64(fs.Bsize),
	}
	if u.TotalBytes > 0 {
		u.UsedPct = float64(u.TotalBytes-u.FreeBytes) / float64(u.TotalBytes) * 100
	}
	return u
}
