// Command tfs mounts a TFS diskfile at a given mountpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"

	"github.com/tinyfs/tfs/fsys"
	"github.com/tinyfs/tfs/fuseglue"
	"github.com/tinyfs/tfs/sizepresets"
)

func main() {
	debug := flag.Bool("debug", false, "print FUSE debugging messages.")
	sizePreset := flag.String("size", "default", "named disk size to format with if DISKFILE does not exist.")
	ttl := flag.Duration("ttl", time.Second, "attribute/entry cache TTL.")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s MOUNTPOINT\n", os.Args[0])
		os.Exit(2)
	}
	mountpoint := flag.Arg(0)

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}
	diskfilePath := filepath.Join(cwd, "DISKFILE")

	preset, err := sizepresets.Get(*sizePreset)
	if err != nil {
		log.Fatalf("size preset: %v", err)
	}

	mount, err := fsys.MountPath(diskfilePath, preset.TotalBlocks)
	if err != nil {
		log.Fatalf("mount %s: %v", diskfilePath, err)
	}
	defer mount.Destroy()

	root := fuseglue.NewRoot(mount)
	opts := &fs.Options{
		AttrTimeout:  ttl,
		EntryTimeout: ttl,
	}
	opts.Debug = *debug

	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		log.Fatalf("mount fail: %v", err)
	}

	log.Printf("mounted %s on %s", diskfilePath, mountpoint)
	server.Wait()
}
