package grab

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/decker502/ghosthorror/internal/system"
)

// ErrGrabRefused 服务器拒绝独占（通常是已有其他客户端独占）
var ErrGrabRefused = errors.New("keyboard grab refused")

// X11Keyboard 基于 XGB 的键盘独占
//
// Grab 时建立连接，Release 后关闭连接；两者都可以重复调用。
type X11Keyboard struct {
	mu      sync.Mutex
	conn    *xgb.Conn
	root    xproto.Window
	grabbed bool
	log     *log.Logger
}

// NewX11Keyboard 创建键盘独占器（尚未连接）
func NewX11Keyboard() *X11Keyboard {
	return &X11Keyboard{log: system.Tagged("Grab")}
}

// Grab 独占键盘
func (k *X11Keyboard) Grab() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.grabbed {
		return nil
	}

	if k.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return fmt.Errorf("failed to connect to X server: %w", err)
		}
		k.conn = conn
		k.root = xproto.Setup(conn).DefaultScreen(conn).Root
	}

	reply, err := xproto.GrabKeyboard(k.conn, true, k.root,
		xproto.TimeCurrentTime, xproto.GrabModeAsync, xproto.GrabModeAsync).Reply()
	if err != nil {
		k.closeLocked()
		return fmt.Errorf("grab keyboard: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		k.closeLocked()
		return fmt.Errorf("%w: status %d", ErrGrabRefused, reply.Status)
	}

	k.grabbed = true
	k.log.Debug("keyboard grabbed")
	return nil
}

// Release 释放键盘并关闭连接
func (k *X11Keyboard) Release() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.conn == nil {
		return nil
	}

	var err error
	if k.grabbed {
		err = xproto.UngrabKeyboardChecked(k.conn, xproto.TimeCurrentTime).Check()
		k.grabbed = false
		k.log.Debug("keyboard released")
	}
	k.closeLocked()
	return err
}

// Grabbed 是否正在独占
func (k *X11Keyboard) Grabbed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.grabbed
}

func (k *X11Keyboard) closeLocked() {
	if k.conn != nil {
		k.conn.Close()
		k.conn = nil
	}
}
