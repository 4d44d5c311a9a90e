// Package opc sends frames to an Open Pixel Control server such as a
// Fadecandy daemon.
package opc

import (
	"net"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ledmix/pkg/bitmap"
	"ledmix/pkg/pixel"
	"ledmix/pkg/proto"
)

const (
	cmdSetPixelColors = 0
	maxPayload        = 0xFFFF
)

type Option func(c *Client)

func WithEncoder(enc *bitmap.Encoder) Option {
	return func(c *Client) {
		c.enc = enc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func New(addr string, channel uint8, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		addr:    addr,
		channel: channel,
		logger:  logger,
		enc:     bitmap.NewEncoder(bitmap.RGB, 1),
		timeout: time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ proto.Transport = (*Client)(nil)

type Client struct {
	addr    string
	channel uint8
	logger  *zap.Logger
	enc     *bitmap.Encoder
	timeout time.Duration
	conn    net.Conn
	buf     []byte
}

func (c *Client) Startup() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return errors.Wrapf(err, "connect opc server %s", c.addr)
	}
	c.conn = conn
	c.logger.With(zap.String("addr", c.addr), zap.Uint8("channel", c.channel)).Info("opc connected")
	return nil
}

func (c *Client) Shutdown() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Write sends one set-pixel-colors message. Over-bright channels are clipped
// by the encoder.
func (c *Client) Write(frame []pixel.Pixel) error {
	if c.conn == nil {
		return errors.New("opc client not started")
	}

	size := c.enc.Len(frame)
	if size > maxPayload {
		return errors.Errorf("opc frame too large: %d bytes", size)
	}

	c.buf = append(c.buf[:0], c.channel, cmdSetPixelColors, byte(size>>8), byte(size))
	c.buf = c.enc.AppendTo(c.buf, frame)

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(c.buf); err != nil {
		return errors.Wrapf(err, "opc write to %s", c.addr)
	}
	return nil
}
