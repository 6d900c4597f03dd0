package signal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNoReader is returned by Press when no daemon holds the pipe open.
var ErrNoReader = errors.New("no reader on fifo")

// Press writes the code for ev to the named pipe at path.
func Press(path string, ev Event) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat fifo: %w", err)
	}
	if info.Mode()&os.ModeNamedPipe == 0 {
		return fmt.Errorf("%s is not a named pipe", path)
	}

	code := ev.Code()
	if code == 0 {
		return fmt.Errorf("press %s: %w", ev, ErrUnknownCode)
	}

	// O_NONBLOCK makes open fail with ENXIO instead of waiting for a reader.
	file, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		if errors.Is(err, unix.ENXIO) {
			return fmt.Errorf("%s: %w", path, ErrNoReader)
		}
		return fmt.Errorf("open fifo: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{code}); err != nil {
		return fmt.Errorf("write fifo: %w", err)
	}
	return nil
}
