package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const activatePath = "/activate"

// Server 在回环地址上接收其他进程转发来的激活请求
type Server struct {
	dispatcher Dispatcher
	listener   net.Listener
	httpServer *http.Server
	addrFile   string
	upgrader   websocket.Upgrader
	log        zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	closed bool
}

// Listen 监听随机端口，并把地址写入 addrFile 供其他进程读取
func Listen(addrFile string, d Dispatcher, log zerolog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(addrFile, []byte(listener.Addr().String()), 0600); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("write bridge address: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		dispatcher: d,
		listener:   listener,
		addrFile:   addrFile,
		log:        log.With().Str("component", "bridge").Logger(),
		ctx:        ctx,
		cancel:     cancel,
		conns:      make(map[*websocket.Conn]struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(activatePath, s.handleActivate)
	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Addr 监听地址
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve 阻塞直到 Close
func (s *Server) Serve() error {
	err := s.httpServer.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Close 停止服务，等待处理中的连接，删除地址文件
func (s *Server) Close() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)

	// Shutdown 不管已升级的连接
	s.mu.Lock()
	s.closed = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	_ = os.Remove(s.addrFile)
	return err
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	if !s.track(conn) {
		_ = conn.Close()
		return
	}
	defer s.untrack(conn)

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("read envelope")
			}
			return
		}

		reply := Reply{OK: true}
		if err := s.dispatcher.Dispatch(s.ctx, env.CLSID, env.Activation); err != nil {
			reply = Reply{Error: err.Error()}
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

func (s *Server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
	s.wg.Done()
}
