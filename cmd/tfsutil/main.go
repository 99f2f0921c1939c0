// Command tfsutil administers a TFS diskfile without mounting it:
// formatting, consistency checking, and inspecting individual paths.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tinyfs/tfs/fsys"
	"github.com/tinyfs/tfs/sizepresets"
)

func main() {
	app := cli.App{
		Usage: "Administer TFS diskfiles",
		Commands: []*cli.Command{
			{
				Name:      "mkfs",
				Usage:     "Format a fresh diskfile",
				ArgsUsage: "DISKFILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "size", Value: "default", Usage: "named size preset"},
				},
				Action: mkfsCommand,
			},
			{
				Name:      "fsck",
				Usage:     "Check a diskfile's structural invariants",
				ArgsUsage: "DISKFILE",
				Action:    fsckCommand,
			},
			{
				Name:      "stat",
				Usage:     "Print the stat record for a path inside a diskfile",
				ArgsUsage: "DISKFILE PATH",
				Action:    statCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func mkfsCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: mkfs DISKFILE")
	}
	preset, err := sizepresets.Get(c.String("size"))
	if err != nil {
		return err
	}
	return fsys.Mkfs(c.Args().Get(0), preset.TotalBlocks)
}

func fsckCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: fsck DISKFILE")
	}
	mount, err := openExisting(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer mount.Destroy()

	if err := mount.Check(); err != nil {
		fmt.Println(err)
		return fmt.Errorf("consistency check failed")
	}
	fmt.Println("ok")
	return nil
}

func statCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: stat DISKFILE PATH")
	}
	mount, err := openExisting(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer mount.Destroy()

	st, err := mount.Getattr(c.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Printf("ino=%d mode=%#o nlink=%d uid=%d gid=%d size=%d\n",
		st.Ino, st.Mode, st.Nlink, st.UID, st.GID, st.Size)
	return nil
}

// openExisting mounts a diskfile that must already be formatted; the
// size passed to MountPath is ignored once the file exists.
func openExisting(path string) (*fsys.Mount, error) {
	return fsys.MountPath(path, 0)
}
