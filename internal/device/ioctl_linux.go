//go:build linux

package device

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// ioctl request-number construction, following include/asm-generic/ioctl.h.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	iocRead = 2
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return (dir << iocDirShift) | (typ << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

// evBitsIOC returns the request number for EVIOCGBIT(ev, len): "give me the
// bitmask of supported codes for event type ev".
func evBitsIOC(ev, length uintptr) uintptr {
	return ioc(iocRead, 'E', 0x20+ev, length)
}

// evNameIOC is EVIOCGNAME(len): "give me this device's human-readable name".
func evNameIOC(length uintptr) uintptr {
	return ioc(iocRead, 'E', 0x06, length)
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// deviceName queries EVIOCGNAME, trimming the kernel's NUL terminator.
func deviceName(fd int) string {
	buf := make([]byte, 256)
	if err := ioctl(fd, evNameIOC(uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return ""
	}
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

// supportedKeyBits reads the EV_KEY capability bitmask: one bit per key
// code, up to evKeyMax.
func supportedKeyBits(fd int) []byte {
	const evKey = 0x01
	buf := make([]byte, (evKeyMax+7)/8)
	if err := ioctl(fd, evBitsIOC(evKey, uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return nil
	}
	return buf
}

func bitSet(bits []byte, code int) bool {
	idx := code / 8
	if idx < 0 || idx >= len(bits) {
		return false
	}
	return bits[idx]&(1<<uint(code%8)) != 0
}
