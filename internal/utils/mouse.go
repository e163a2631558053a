package utils

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// DesktopPointer queries the X11 root window for the global pointer. It is
// the pointer source for wallpaper-style windows that sit below other windows
// and never receive pointer events of their own.
type DesktopPointer struct {
	mu     sync.Mutex
	conn   *xgb.Conn
	root   xproto.Window
	width  int
	height int
}

// NewDesktopPointer opens a connection to the X server named by $DISPLAY.
func NewDesktopPointer() (*DesktopPointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &DesktopPointer{
		conn:   conn,
		root:   screen.Root,
		width:  int(screen.WidthInPixels),
		height: int(screen.HeightInPixels),
	}, nil
}

// ScreenSize returns the size of the default screen in pixels.
func (d *DesktopPointer) ScreenSize() (int, int) {
	return d.width, d.height
}

// Position returns the pointer position relative to the root window.
func (d *DesktopPointer) Position() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return 0, 0, fmt.Errorf("desktop pointer closed")
	}

	reply, err := xproto.QueryPointer(d.conn, d.root).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

func (d *DesktopPointer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn != nil {
		d.conn.Close()
		d.conn = nil
	}
}
