package opc

import (
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"ledmix/pkg/pixel"
)

func TestWriteSendsSetPixelColors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 10)
		if _, err := io.ReadFull(conn, buf); err == nil {
			got <- buf
		}
	}()

	c := New(ln.Addr().String(), 2, zaptest.NewLogger(t))
	require.NoError(t, c.Startup())
	t.Cleanup(func() { c.Shutdown() })

	require.NoError(t, c.Write([]pixel.Pixel{pixel.New(1, 0, 0), pixel.New(0, 0.5, 1)}))
	assert.Equal(t, []byte{2, 0, 0, 6, 255, 0, 0, 0, 128, 255}, <-got)
}

func TestWriteBeforeStartup(t *testing.T) {
	c := New("127.0.0.1:1", 0, zaptest.NewLogger(t))
	assert.Error(t, c.Write([]pixel.Pixel{pixel.White()}))
	assert.NoError(t, c.Shutdown())
}
