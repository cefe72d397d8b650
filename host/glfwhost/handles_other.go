//go:build !windows && !linux && !freebsd && !netbsd && !openbsd

package glfwhost

// NativeHandles always returns ErrUnsupportedPlatform on this platform.
// On macOS wgpu needs the NSView of the content view, which GLFW does not
// expose.
func (w *Window) NativeHandles() (display, window uintptr, err error) {
	return 0, 0, ErrUnsupportedPlatform
}
