package http

import (
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
)

type Handler interface {
	ServeHTTP(req *Request) *Response
}

type HandlerFunc func(req *Request) *Response

func (f HandlerFunc) ServeHTTP(req *Request) *Response {
	return f(req)
}

// Server answers one request per connection, each connection on its own
// goroutine.
type Server struct {
	Addr         string
	Handler      Handler
	Parser       Parser
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Logger       zerolog.Logger
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	s.Logger.Info().Str("addr", ln.Addr().String()).Msg("listening for connections")
	return s.Serve(ln)
}

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Serve accepts connections until ln is closed, then returns nil. Other
// accept failures, such as running out of file descriptors, are logged and
// retried with a growing delay.
func (s *Server) Serve(ln net.Listener) error {
	var delay time.Duration

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay = min(2*delay, maxAcceptDelay)
			}
			s.Logger.Error().Err(err).Dur("retry_in", delay).Msg("could not accept connection")
			time.Sleep(delay)
			continue
		}

		delay = 0
		go s.ServeConn(conn)
	}
}

// ServeConn reads a single request from conn, writes the handler's response
// and closes conn.
func (s *Server) ServeConn(conn net.Conn) {
	defer conn.Close()

	log := s.Logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

	if s.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
	}

	ex, err := s.Parser.Accept(conn)
	if err != nil {
		s.reject(conn, log, err)
		return
	}

	req := ex.Request
	log = log.With().Str("method", req.Line.Method).Str("target", req.Line.Target).Logger()

	resp := s.handle(req)
	if resp == nil {
		log.Error().Msg("handler returned no response")
		resp = NewResponse(StatusInternalServerError, nil)
	}

	if s.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}

	if err := ex.Respond(resp); err != nil {
		log.Error().Err(err).Int("status", resp.Line.Code).Msg("could not write response")
		return
	}

	log.Info().Int("status", resp.Line.Code).Int("bytes", len(resp.Body)).Msg("request served")
}

func (s *Server) handle(req *Request) *Response {
	if s.Handler == nil {
		return NewResponse(StatusNotFound, nil)
	}
	return s.Handler.ServeHTTP(req)
}

// reject decides what a failed read deserves: malformed input gets a 400,
// a broken stream is just closed.
func (s *Server) reject(conn net.Conn, log zerolog.Logger, err error) {
	var ioErr IOError
	if errors.As(err, &ioErr) {
		log.Debug().Err(err).Msg("could not read request")
		return
	}

	log.Warn().Err(err).Msg("rejecting malformed request")

	if s.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}

	if err := WriteResponse(conn, NewResponse(StatusBadRequest, nil)); err != nil {
		log.Debug().Err(err).Msg("could not write rejection")
	}
}
