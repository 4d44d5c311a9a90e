package proto

import (
	"strings"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var (
	ErrPortNotFound = errors.New("serial port not found")
	ErrPortClosed   = errors.New("serial port not open")
)

type Options = serial.Mode

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Serial is a USB serial port picked by a substring of its name, so
// "ttyACM" or "usbmodem" match whatever index the OS assigned.
type Serial struct {
	name string
	port serial.Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) Open(opts *Options) error {
	ports, err := s.Ports()
	if err != nil {
		return errors.Wrap(err, "list serial ports")
	}

	var matched string
	for _, name := range ports {
		if strings.Contains(name, s.name) {
			matched = name
			break
		}
	}
	if matched == "" {
		return errors.Wrapf(ErrPortNotFound, "no port matching %q", s.name)
	}

	port, err := serial.Open(matched, opts)
	if err != nil {
		return errors.Wrapf(err, "open %s", matched)
	}

	s.port = port
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, ErrPortClosed
	}
	return s.port.Write(p)
}
