package fs

import "path/filepath"

// ChildPaths is the on-disk layout for one chain or relayer: everything the
// child owns lives under a single directory of the data root.
type ChildPaths struct {
	// Dir is the child's state directory
	Dir string
	// HomeDir is the binary's own home/config/data tree inside Dir
	HomeDir string
	// LockFile records liveness (pid + start time)
	LockFile string
	// LogFile receives the child's combined output
	LogFile string
}

// PathsFor resolves the layout for a named child under the data root
func PathsFor(dataDir, name string) ChildPaths {
	dir := filepath.Join(dataDir, name)
	return ChildPaths{
		Dir:      dir,
		HomeDir:  filepath.Join(dir, "home"),
		LockFile: filepath.Join(dir, name+".pid"),
		LogFile:  filepath.Join(dir, name+".log"),
	}
}
