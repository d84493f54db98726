//go:build windows

package handler

import (
	"os"

	"golang.org/x/sys/windows"
)

func storageUsage(path string) *StorageUsage {
	stat, err := os.Stat(path)
	if err != nil || !stat.IsDir() {
		return nil
	}

	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil
	}

	var freeBytes, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(ptr, &freeBytes, &totalBytes, &totalFreeBytes); err != nil {
		return nil
	}

	u := &StorageUsage{
		Path:       path,
		TotalBytes: int64(totalBytes),
		FreeBytes:  int64(freeBytes),
	}
	if u.TotalBytes > 0 {
		u.UsedPct = float64(u.TotalBytes-u.FreeBytes) / float64(u.TotalBytes) * 100
	}
	return u
}
