// Package system hardens the virtual console while the screen is
// locked: graphics mode suppresses the hardware cursor and any stray
// text output underneath the lock surface.
package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h.
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EnterGraphics switches the active VT to KD_GRAPHICS and hides the
// cursor. Best-effort on the cursor escape; the mode switch error is
// returned so the caller can decide whether to keep going.
func EnterGraphics(l logger) error {
	if err := setConsoleMode(kdGraphics); err != nil {
		return err
	}
	if err := writeVT("\x1b[?25l"); err != nil && l != nil {
		l.Errorf("console", "hide cursor failed: %v", err)
	}
	if l != nil {
		l.Infof("console", "KD_GRAPHICS set")
	}
	return nil
}

// LeaveGraphics restores text mode and the cursor on unlock.
func LeaveGraphics(l logger) error {
	if err := writeVT("\x1b[?25h"); err != nil && l != nil {
		l.Errorf("console", "show cursor failed: %v", err)
	}
	if err := setConsoleMode(kdText); err != nil {
		if l != nil {
			l.Errorf("console", "KD_TEXT failed: %v", err)
		}
		return err
	}
	if l != nil {
		l.Infof("console", "KD_TEXT restored")
	}
	return nil
}

// setConsoleMode tries the active VT first, then tty0.
func setConsoleMode(mode int) error {
	var lastErr error
	for _, path := range []string{"/dev/tty", "/dev/tty0"} {
		fd, err := unix.Open(path, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", path, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE on %s: %w", path, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, path := range []string{"/dev/tty", "/dev/tty0"} {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %v", lastErr)
}
