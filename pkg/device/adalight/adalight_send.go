package adalight

import (
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (a *Adalight) sendBytes(bs []byte) error {
	start := time.Now()
	sent, err := a.port.Write(bs)
	if err != nil {
		return errors.Wrap(err, "adalight write")
	}
	if sent != len(bs) {
		return errors.Errorf("adalight short write: %d of %d bytes", sent, len(bs))
	}

	if ce := a.logger.Check(zap.DebugLevel, "transfer"); ce != nil {
		ce.Write(
			zap.String("sent", bytesize.New(float64(sent)).String()),
			zap.String("cost", time.Since(start).String()),
		)
	}
	return nil
}
