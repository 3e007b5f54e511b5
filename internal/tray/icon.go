package tray

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// getIcon 16x16 32位 ICO：橙色圆形背景上的白色铃铛
func getIcon() []byte {
	pixels := make([]byte, 0, iconSize*iconSize*4)
	// ICO 的像素从最后一行开始
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			pixels = append(pixels, pixel(x, y)...)
		}
	}
	// AND 掩码全 0，每行按 4 字节对齐
	mask := make([]byte, iconSize*4)

	const bmpHeaderSize = 40
	imageSize := bmpHeaderSize + len(pixels) + len(mask)

	var buf bytes.Buffer
	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	// ICONDIR
	le([]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.Write([]byte{iconSize, iconSize, 0, 0})
	le([]uint16{1, 32})
	le([]uint32{uint32(imageSize), 6 + 16})
	// BITMAPINFOHEADER，高度包含掩码
	le([]uint32{bmpHeaderSize, iconSize, iconSize * 2})
	le([]uint16{1, 32})
	le([]uint32{0, 0, 0, 0, 0, 0})

	buf.Write(pixels)
	buf.Write(mask)
	return buf.Bytes()
}

// pixel 返回 BGRA
func pixel(x, y int) []byte {
	cx, cy := float64(x)-7.5, float64(y)-7.5
	if cx*cx+cy*cy >= 56 {
		return []byte{0, 0, 0, 0}
	}
	if bell(x, y) {
		return []byte{0xFF, 0xFF, 0xFF, 0xFF}
	}
	// #E8710A
	return []byte{0x0A, 0x71, 0xE8, 0xFF}
}

// bell 顶部的钮、逐渐变宽的铃身、底部的铃舌
func bell(x, y int) bool {
	switch {
	case y == 3:
		return x >= 7 && x <= 8
	case y >= 4 && y <= 10:
		half := 2 + (y-4)/2
		return x >= 8-half && x <= 7+half
	case y == 11:
		return x >= 3 && x <= 12
	case y == 12:
		return x >= 7 && x <= 8
	}
	return false
}
