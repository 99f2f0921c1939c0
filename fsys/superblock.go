package fsys

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tinyfs/tfs/block"
)

// encodeBlock packs a fixed-size value into a single zero-padded
// block-sized buffer, the same approach the teacher's unixv1 driver
// uses for its superblock and inode table (bytes.Buffer +
// encoding/binary, then pad to block size).
func encodeBlock(v any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return nil, err
	}
	out := make([]byte, block.Size)
	copy(out, buf.Bytes())
	return out, nil
}

func decodeBlock(raw []byte, v any) error {
	return binary.Read(bytes.NewReader(raw), binary.LittleEndian, v)
}

// readSuperblock loads and validates the superblock from block 0.
func readSuperblock(dev *block.Device) (*RawSuperblock, error) {
	raw, err := dev.ReadBlock(SuperblockNum)
	if err != nil {
		return nil, err
	}
	var sb RawSuperblock
	if err := decodeBlock(raw, &sb); err != nil {
		return nil, err
	}
	if sb.Magic != Magic {
		return nil, fmt.Errorf("bad superblock magic 0x%x, expected 0x%x", sb.Magic, Magic)
	}
	return &sb, nil
}

func writeSuperblock(dev *block.Device, sb *RawSuperblock) error {
	buf, err := encodeBlock(sb)
	if err != nil {
		return err
	}
	return dev.WriteBlock(SuperblockNum, buf)
}
