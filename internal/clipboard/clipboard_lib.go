//go:build (cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin)) || windows

package clipboard

import "golang.design/x/clipboard"

func backendInit() error { return clipboard.Init() }

func writePNG(data []byte) error {
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

func readPNG() ([]byte, error) {
	return clipboard.Read(clipboard.FmtImage), nil
}
