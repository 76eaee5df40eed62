package core

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// mirrorExcluded names are never copied into a mirror and never pruned from
// one. Version-control metadata stays out of deployed trees.
var mirrorExcluded = map[string]bool{
	".git": true,
}

// MirrorTree makes dst an exact copy of src: files and directories are
// copied over, and destination entries with no counterpart in src are
// removed. Excluded names are ignored on both sides.
func MirrorTree(src, dst string) error {
	keep := make(map[string]bool)

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel != "." && mirrorExcluded[filepath.Base(path)] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		keep[rel] = true
		dstPath := filepath.Join(dst, rel)
		// A destination entry of the wrong kind (file where the source has a
		// directory, or the reverse) is stale state from an older tree; drop
		// it so the copy can proceed.
		if info, err := os.Stat(dstPath); err == nil && info.IsDir() != d.IsDir() {
			if err := os.RemoveAll(dstPath); err != nil {
				return err
			}
		}
		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}
		return copyFile(path, dstPath)
	})
	if err != nil {
		return err
	}

	return pruneTree(dst, keep)
}

// pruneTree removes entries under dst whose relative path is not in keep.
func pruneTree(dst string, keep map[string]bool) error {
	return filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if mirrorExcluded[filepath.Base(path)] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if keep[rel] {
			return nil
		}
		if err := os.RemoveAll(path); err != nil {
			return err
		}
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	})
}

// copyFile copies a single file from src to dst, preserving its mode.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// pathExists returns true if the path exists.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
