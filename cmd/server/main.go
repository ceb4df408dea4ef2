package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	http "github.com/kurtlawrence/kl-http"
)

func handler(req *http.Request) *http.Response {
	if len(req.Body) == 0 {
		return http.NewResponse(http.StatusOK, []byte("hello me"))
	}

	resp := http.NewResponse(http.StatusOK, req.Body)
	if ct, ok := req.Headers.Get("content-type"); ok {
		resp.Headers.Add("content-type", ct)
	}
	return resp
}

func main() {
	addr := flag.String("addr", ":8080", "address to listen on")
	maxHeaders := flag.Int("max-headers", http.DefaultMaxHeaders, "maximum number of header fields per request")
	maxHead := flag.Int("max-head-bytes", 8<<10, "maximum size of the request line and header fields in bytes")
	maxBody := flag.Int64("max-body", 1<<20, "maximum request body size in bytes")
	readTimeout := flag.Duration("read-timeout", 5*time.Second, "time allowed to read a request")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	srv := http.Server{
		Addr:         *addr,
		Handler:      http.HandlerFunc(handler),
		Parser:       http.Parser{MaxHeaders: *maxHeaders, MaxHeadBytes: *maxHead, MaxBodyBytes: *maxBody},
		ReadTimeout:  *readTimeout,
		WriteTimeout: *readTimeout,
		Logger:       logger,
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("problem starting server")
	}
}
