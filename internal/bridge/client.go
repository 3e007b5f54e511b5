package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Forward 把激活请求交给正在运行的实例
func Forward(ctx context.Context, addrFile string, env Envelope) error {
	addr, err := readAddr(addrFile)
	if err != nil {
		return fmt.Errorf("read bridge address: %w", err)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, "ws://"+addr+activatePath, nil)
	if err != nil {
		return fmt.Errorf("dial bridge %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteJSON(env); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}

	var reply Reply
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	if !reply.OK {
		return errors.New(reply.Error)
	}
	return nil
}
